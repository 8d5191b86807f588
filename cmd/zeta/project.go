package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-zeta"
	"github.com/alnah/go-zeta/internal/articles"
	"github.com/alnah/go-zeta/internal/config"
	"github.com/alnah/go-zeta/internal/fileutil"
	"github.com/alnah/go-zeta/internal/gitremote"
	"github.com/alnah/go-zeta/internal/hints"
)

// project is an initialised zeta project: its root, settings and articles.
type project struct {
	dir    string
	config *config.Config
	store  *articles.Store
}

// openProject loads the project settings. The config comes from --config,
// then ZETA_CONFIG, then zeta.yaml or zeta.yml in the project root, then
// the user config directory. ZETA_* variables override the file.
func openProject(env *Environment, common commonFlags) (*project, error) {
	dir, err := env.projectDir()
	if err != nil {
		return nil, err
	}

	envCfg := loadEnvConfig()
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		name = findProjectConfig(dir)
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(searchedConfigPaths(dir)))
		}
		return nil, err
	}

	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &project{
		dir:    dir,
		config: cfg,
		store: articles.NewStore(articles.Dirs{
			Root:   dir,
			Source: cfg.SourceDir,
			Zenn:   cfg.ZennDir,
			Qiita:  cfg.QiitaDir,
		}),
	}, nil
}

// findProjectConfig returns the config file in dir, or the default config
// name to search the standard locations.
func findProjectConfig(dir string) string {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, config.DefaultName+ext)
		if fileutil.FileExists(path) {
			return path
		}
	}
	return config.DefaultName
}

// searchedConfigPaths lists where a config is looked for, for hints.
func searchedConfigPaths(dir string) []string {
	paths := []string{filepath.Join(dir, config.FileName)}
	if userDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(userDir, config.DefaultName, config.FileName))
	}
	return paths
}

// imageResolver maps local images to raw GitHub URLs, or returns nil when
// no repository is configured.
func (p *project) imageResolver(env *Environment) (*gitremote.Resolver, error) {
	if p.config.Repository == "" {
		return nil, nil
	}
	opts := []gitremote.Option{
		gitremote.WithDir(p.dir),
		gitremote.WithLogger(env.Logger),
	}
	if p.config.Branch != "" {
		opts = append(opts, gitremote.WithBranch(p.config.Branch))
	}
	if env.Run != nil {
		opts = append(opts, gitremote.WithRunner(env.Run))
	}
	return gitremote.NewResolver(env.baseContext(), p.config.Repository, p.config.Remote, opts...)
}

// builder creates a Builder configured from the project settings.
// A nil resolver keeps local image paths in Qiita output.
func (p *project) builder(env *Environment, resolver *gitremote.Resolver) *zeta.Builder {
	opts := []zeta.Option{
		zeta.WithLogger(env.Logger),
		zeta.WithFootnotePrefix(p.config.FootnotePrefix),
		zeta.WithImagePrefix(p.config.ImagePrefix()),
	}
	if resolver != nil {
		opts = append(opts, zeta.WithImageResolver(resolver))
	}
	return zeta.NewBuilder(opts...)
}

// readSource reads a source article, listing the existing ones when it is missing.
func (p *project) readSource(slug string) (string, error) {
	source, err := p.store.ReadSource(slug)
	if errors.Is(err, articles.ErrArticleNotFound) {
		available, _ := p.store.List()
		return "", fmt.Errorf("%w%s", err, hints.ForArticleNotFound(available))
	}
	return source, err
}

// warnShortSlug warns when Zenn would reject slug.
func warnShortSlug(env *Environment, slug string) {
	if len(slug) < articles.ZennMinSlugLength {
		env.Logger.WithField("slug", slug).
			Warnf("Zenn requires slugs of at least %d characters", articles.ZennMinSlugLength)
	}
}

// rel returns path relative to the project root for display.
func (p *project) rel(path string) string {
	if r, err := filepath.Rel(p.dir, path); err == nil {
		return r
	}
	return path
}

// flagExit maps a flag parsing error to an exit code. pflag prints the
// usage itself only for --help.
func flagExit(env *Environment, err error, usage func(io.Writer)) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
	usage(env.Stderr)
	return ExitUsage
}

// fail prints err and returns its exit code.
func fail(env *Environment, err error) int {
	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	return exitCodeFor(err)
}

// requireArgs checks the number of positional arguments.
func requireArgs(args []string, n int, names string) error {
	if len(args) < n {
		return fmt.Errorf("%w: %s", ErrMissingArgument, names)
	}
	if len(args) > n {
		return fmt.Errorf("%w: %s", ErrExtraArgument, strings.Join(args[n:], " "))
	}
	return nil
}
