package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-zeta/internal/assets"
	"github.com/alnah/go-zeta/internal/config"
	"github.com/alnah/go-zeta/internal/fileutil"
	"github.com/alnah/go-zeta/internal/hints"
)

// npmStep is one command of the zenn-cli and qiita-cli setup.
type npmStep struct {
	message string
	name    string
	args    []string
}

// npmSteps installs both CLIs locally and lets them create their layout
// (articles/, books/, public/, qiita.config.json).
var npmSteps = []npmStep{
	{"Installing Zenn CLI", "npm", []string{"install", "--save-dev", "zenn-cli"}},
	{"Installing Qiita CLI", "npm", []string{"install", "--save-dev", "@qiita/qiita-cli"}},
	{"Initializing Zenn", "npx", []string{"zenn", "init"}},
	{"Initializing Qiita", "npx", []string{"qiita", "init"}},
}

func runInitCmd(args []string, env *Environment) int {
	f, rest, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		return flagExit(env, err, printInitUsage)
	}
	env.configureLogger(f.common)

	if err := requireArgs(rest, 0, ""); err != nil {
		return fail(env, err)
	}
	if err := runInit(f, env); err != nil {
		return fail(env, err)
	}
	return ExitSuccess
}

func runInit(f *initFlags, env *Environment) error {
	dir, err := env.projectDir()
	if err != nil {
		return err
	}

	configPath := f.common.config
	if configPath == "" {
		configPath = filepath.Join(dir, config.FileName)
	}
	if fileutil.FileExists(configPath) {
		return fmt.Errorf("%w: %s exists", ErrProjectExists, configPath)
	}

	cfg := config.DefaultConfig()
	applyEnvConfig(loadEnvConfig(), cfg)
	if f.repository != "" {
		cfg.Repository = f.repository
	}
	if cfg.Repository == "" && env.Stdin != nil {
		cfg.Repository, err = promptRepository(env.Stdin, env.Stdout)
		if err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrInvalidRepo) {
			return fmt.Errorf("%w%s", err, hints.ForRepository())
		}
		return err
	}
	if cfg.Repository == "" {
		env.Logger.Warn("no repository set: Qiita articles will keep local image paths")
	}

	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return err
	}
	content, err := assets.RenderTemplate(loader, assets.ConfigTemplateName, cfg)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w%s", configPath, err, hints.ForOutputDirectory())
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", configPath)
	}

	for _, d := range []string{cfg.SourceDir, cfg.ImagesDir} {
		path := filepath.Join(dir, d)
		if err := os.MkdirAll(path, 0o750); err != nil {
			return fmt.Errorf("creating %s: %w%s", path, err, hints.ForOutputDirectory())
		}
		env.Logger.WithField("dir", d).Debug("created directory")
	}

	if f.noNpm {
		env.Logger.Debug("skipping npm setup")
	} else if err := setupNpm(env, dir); err != nil {
		return err
	}

	if !f.common.quiet {
		fmt.Fprintln(env.Stdout, "Done! Create an article with: zeta new <slug>")
	}
	return nil
}

// promptRepository asks for the GitHub repository. An empty answer is allowed.
func promptRepository(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "GitHub repository hosting the images (owner/repo, empty to skip): ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading repository: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// setupNpm creates package.json when missing, then runs npmSteps.
func setupNpm(env *Environment, dir string) error {
	steps := npmSteps
	if !fileutil.FileExists(filepath.Join(dir, "package.json")) {
		steps = append([]npmStep{{"Initializing npm", "npm", []string{"init", "-y"}}}, steps...)
	}

	for _, s := range steps {
		env.Logger.Info(s.message + "...")
		out, err := env.run(dir, s.name, s.args...)
		if err != nil {
			return fmt.Errorf("%w: %v%s", ErrNpm, err, hints.ForNpx())
		}
		if msg := strings.TrimSpace(string(out)); msg != "" {
			env.Logger.Debug(msg)
		}
	}
	return nil
}
