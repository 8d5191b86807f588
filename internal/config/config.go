package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-zeta/internal/fileutil"
	"github.com/alnah/go-zeta/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrEmptyConfigName  = errors.New("config name cannot be empty")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrInvalidRepo      = errors.New("invalid repository")
	ErrInvalidDir       = errors.New("invalid directory")
	ErrInvalidPrefix    = errors.New("invalid footnote prefix")
	ErrDuplicateOutputs = errors.New("output directories must differ")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "zeta"

// FileName is the file written by "zeta init".
const FileName = DefaultName + ".yaml"

// Field length limits.
const (
	MaxRepositoryLength = 140 // "owner/repo" (GitHub: 39 + 1 + 100)
	MaxRemoteLength     = 100
	MaxBranchLength     = 255 // git ref limit
	MaxDirLength        = 255
	MaxPrefixLength     = 50
	MaxStyleLength      = 100
	MaxPathLength       = 4096
)

// Defaults written by "zeta init" and used for missing fields.
const (
	DefaultRemote         = "origin"
	DefaultSourceDir      = "zeta"
	DefaultZennDir        = "articles"
	DefaultQiitaDir       = "public"
	DefaultImagesDir      = "images"
	DefaultFootnotePrefix = "zeta"
	DefaultPreviewStyle   = "default"
	DefaultPreviewDir     = ".zeta/preview"
)

var (
	repositoryPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?/[A-Za-z0-9._-]+$`)
	prefixPattern     = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// Config holds the settings of one project.
type Config struct {
	Repository     string        `yaml:"repository"`     // GitHub "owner/repo" hosting the images
	Remote         string        `yaml:"remote"`         // git remote queried for the default branch
	Branch         string        `yaml:"branch"`         // overrides the remote's default branch
	SourceDir      string        `yaml:"sourceDir"`      // source articles
	ZennDir        string        `yaml:"zennDir"`        // Zenn output, fixed by zenn-cli
	QiitaDir       string        `yaml:"qiitaDir"`       // Qiita output, fixed by qiita-cli
	ImagesDir      string        `yaml:"imagesDir"`      // images referenced as /images/...
	FootnotePrefix string        `yaml:"footnotePrefix"` // namespace of generated Qiita footnotes
	Preview        PreviewConfig `yaml:"preview"`
	Assets         AssetsConfig  `yaml:"assets"`
}

// PreviewConfig defines HTML preview options.
type PreviewConfig struct {
	Style     string `yaml:"style"`     // Name of style in internal/assets/styles/ or a CSS path
	OutputDir string `yaml:"outputDir"` // Where preview files are written
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DefaultConfig returns the configuration of a freshly initialised project.
func DefaultConfig() *Config {
	return &Config{
		Remote:         DefaultRemote,
		SourceDir:      DefaultSourceDir,
		ZennDir:        DefaultZennDir,
		QiitaDir:       DefaultQiitaDir,
		ImagesDir:      DefaultImagesDir,
		FootnotePrefix: DefaultFootnotePrefix,
		Preview: PreviewConfig{
			Style:     DefaultPreviewStyle,
			OutputDir: DefaultPreviewDir,
		},
	}
}

// ImagePrefix is the path prefix that marks an image as local, e.g. "/images".
func (c *Config) ImagePrefix() string {
	return "/" + filepath.ToSlash(filepath.Clean(c.ImagesDir))
}

// Validate checks field formats and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("repository", c.Repository, MaxRepositoryLength); err != nil {
		return err
	}
	if c.Repository != "" && !repositoryPattern.MatchString(c.Repository) {
		return fmt.Errorf("%w: %q (want owner/repo)", ErrInvalidRepo, c.Repository)
	}
	if err := validateFieldLength("remote", c.Remote, MaxRemoteLength); err != nil {
		return err
	}
	if err := validateFieldLength("branch", c.Branch, MaxBranchLength); err != nil {
		return err
	}

	dirs := []struct {
		field string
		value string
	}{
		{"sourceDir", c.SourceDir},
		{"zennDir", c.ZennDir},
		{"qiitaDir", c.QiitaDir},
		{"imagesDir", c.ImagesDir},
		{"preview.outputDir", c.Preview.OutputDir},
	}
	for _, d := range dirs {
		if err := validateDir(d.field, d.value); err != nil {
			return err
		}
	}
	if filepath.Clean(c.ZennDir) == filepath.Clean(c.QiitaDir) ||
		filepath.Clean(c.SourceDir) == filepath.Clean(c.ZennDir) ||
		filepath.Clean(c.SourceDir) == filepath.Clean(c.QiitaDir) {
		return fmt.Errorf("%w: sourceDir=%q zennDir=%q qiitaDir=%q",
			ErrDuplicateOutputs, c.SourceDir, c.ZennDir, c.QiitaDir)
	}

	if err := validateFieldLength("footnotePrefix", c.FootnotePrefix, MaxPrefixLength); err != nil {
		return err
	}
	if !prefixPattern.MatchString(c.FootnotePrefix) {
		return fmt.Errorf("%w: %q (letters, digits, '.', '_' and '-' only)", ErrInvalidPrefix, c.FootnotePrefix)
	}

	if err := validateFieldLength("preview.style", c.Preview.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateDir requires a non-empty relative path that stays inside the project.
func validateDir(fieldName, value string) error {
	if err := validateFieldLength(fieldName, value, MaxDirLength); err != nil {
		return err
	}
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidDir, fieldName)
	}
	if filepath.IsAbs(value) {
		return fmt.Errorf("%w: %s must be relative to the project, got %q", ErrInvalidDir, fieldName, value)
	}
	clean := filepath.Clean(value)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s must stay inside the project, got %q", ErrInvalidDir, fieldName, value)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal encodes the configuration as written by "zeta init".
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/zeta/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "zeta", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
