package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-zeta/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without editing zeta.yaml.
type envConfig struct {
	ConfigPath string // ZETA_CONFIG: config file name or path
	Repository string // ZETA_REPOSITORY: GitHub owner/repo hosting the images
	Remote     string // ZETA_REMOTE: git remote queried for the default branch
	Branch     string // ZETA_BRANCH: branch used in image URLs
	Style      string // ZETA_STYLE: preview CSS style name or path
	PreviewDir string // ZETA_PREVIEW_DIR: preview output directory
	AssetsPath string // ZETA_ASSETS_PATH: custom styles and templates
}

// knownEnvVars lists valid ZETA_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"ZETA_CONFIG":      true,
	"ZETA_REPOSITORY":  true,
	"ZETA_REMOTE":      true,
	"ZETA_BRANCH":      true,
	"ZETA_STYLE":       true,
	"ZETA_PREVIEW_DIR": true,
	"ZETA_ASSETS_PATH": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("ZETA_CONFIG"),
		Repository: os.Getenv("ZETA_REPOSITORY"),
		Remote:     os.Getenv("ZETA_REMOTE"),
		Branch:     os.Getenv("ZETA_BRANCH"),
		Style:      os.Getenv("ZETA_STYLE"),
		PreviewDir: os.Getenv("ZETA_PREVIEW_DIR"),
		AssetsPath: os.Getenv("ZETA_ASSETS_PATH"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized ZETA_* variables.
// Helps catch typos like ZETA_REPO instead of ZETA_REPOSITORY.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "ZETA_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with the variables that are set.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Repository != "" {
		cfg.Repository = env.Repository
	}
	if env.Remote != "" {
		cfg.Remote = env.Remote
	}
	if env.Branch != "" {
		cfg.Branch = env.Branch
	}
	if env.Style != "" {
		cfg.Preview.Style = env.Style
	}
	if env.PreviewDir != "" {
		cfg.Preview.OutputDir = env.PreviewDir
	}
	if env.AssetsPath != "" {
		cfg.Assets.BasePath = env.AssetsPath
	}
}
