package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-zeta"
	"github.com/alnah/go-zeta/internal/assets"
	"github.com/alnah/go-zeta/internal/ast"
	"github.com/alnah/go-zeta/internal/fileutil"
	"github.com/alnah/go-zeta/internal/hints"
	"github.com/alnah/go-zeta/internal/preview"
)

func runPreviewCmd(args []string, env *Environment) int {
	f, rest, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return flagExit(env, err, printPreviewUsage)
	}
	env.configureLogger(f.common)

	if err := requireArgs(rest, 1, "slug"); err != nil {
		return fail(env, err)
	}
	platform, err := ast.ParsePlatform(f.platform)
	if err != nil {
		return fail(env, err)
	}

	p, err := openProject(env, f.common)
	if err != nil {
		return fail(env, err)
	}

	slug := rest[0]
	path, err := renderPreview(env, p, f, slug, platform)
	if err != nil {
		var buildErr *zeta.BuildError
		if errors.As(err, &buildErr) {
			printBuildFailure(env, p, buildResult{Slug: slug, Err: err})
			return exitCodeFor(err)
		}
		return fail(env, err)
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", path)
	}
	return ExitSuccess
}

// renderPreview compiles slug without resolving images, so the page shows
// the local files, and writes the HTML page. It returns the written path.
func renderPreview(env *Environment, p *project, f *previewFlags, slug string, platform ast.Platform) (string, error) {
	source, err := p.readSource(slug)
	if err != nil {
		return "", err
	}
	published, err := p.store.ReadPublished(slug)
	if err != nil {
		return "", err
	}

	built, err := p.builder(env, nil).Build(zeta.Input{Source: source, Published: published})
	if err != nil {
		return "", err
	}
	if !built.Has(platform) {
		return "", fmt.Errorf("%w: %s only compiles for %v", ErrNotTargeted, slug, built.Targets)
	}

	css, err := loadPreviewStyle(p, f.style)
	if err != nil {
		return "", err
	}

	html, err := preview.NewRenderer().Render(env.baseContext(), built.Output(platform), preview.Options{
		Platform:    platform,
		CSS:         css,
		ProjectDir:  p.dir,
		ImagePrefix: p.config.ImagePrefix(),
	})
	if err != nil {
		return "", err
	}

	out := f.output
	if out == "" {
		out = filepath.Join(p.dir, p.config.Preview.OutputDir, slug+"."+platform.String()+".html")
	}
	if err := fileutil.WriteFileAtomic(out, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w%s", out, err, hints.ForOutputDirectory())
	}
	return out, nil
}

// loadPreviewStyle returns the CSS for the preview page. The --style flag
// wins over preview.style; a value containing a path separator is read as
// a file relative to the project root.
func loadPreviewStyle(p *project, flagStyle string) (string, error) {
	name := flagStyle
	if name == "" {
		name = p.config.Preview.Style
	}
	if name == "" {
		return "", nil
	}

	if fileutil.IsFilePath(name) {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.dir, path)
		}
		data, err := os.ReadFile(path) // #nosec G304 -- style path is user-provided
		if err != nil {
			return "", fmt.Errorf("%w: %v", assets.ErrAssetRead, err)
		}
		return string(data), nil
	}

	loader, err := assets.NewAssetResolver(p.config.Assets.BasePath)
	if err != nil {
		return "", err
	}
	css, err := loader.LoadStyle(name)
	if errors.Is(err, assets.ErrStyleNotFound) {
		return "", fmt.Errorf("%w%s", err, hints.ForStyleNotFound(loader.Styles()))
	}
	return css, err
}
