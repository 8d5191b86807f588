package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/alnah/go-zeta"
	"github.com/alnah/go-zeta/internal/articles"
	"github.com/alnah/go-zeta/internal/ast"
	"github.com/alnah/go-zeta/internal/fileutil"
	"github.com/alnah/go-zeta/internal/hints"
)

// builtOutput is one compiled file.
type builtOutput struct {
	Platform ast.Platform
	Path     string
	Size     int
}

// buildResult holds the outcome of building one article.
type buildResult struct {
	Slug     string
	Outputs  []builtOutput
	Err      error
	Duration time.Duration
}

// buildSummary holds the count of built and failed articles.
type buildSummary struct {
	Built  int
	Failed int
}

func runBuildCmd(args []string, env *Environment) int {
	f, slugs, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return flagExit(env, err, printBuildUsage)
	}
	env.configureLogger(f.common)

	p, err := openProject(env, f.common)
	if err != nil {
		return fail(env, err)
	}

	slugs, err = resolveBuildSlugs(p, f, slugs)
	if err != nil {
		return fail(env, err)
	}

	resolver, err := p.imageResolver(env)
	if err != nil {
		return fail(env, err)
	}
	b := p.builder(env, resolver)

	results := buildBatch(env.baseContext(), resolveWorkers(f.jobs), slugs, func(slug string) buildResult {
		return buildArticle(env, p, b, slug)
	})
	return printBuildResults(results, f.common, env, p)
}

// resolveBuildSlugs returns the slugs named on the command line, or every
// source article with --all.
func resolveBuildSlugs(p *project, f *buildFlags, slugs []string) ([]string, error) {
	if !f.all {
		if len(slugs) == 0 {
			return nil, fmt.Errorf("%w: slug (or --all)", ErrMissingArgument)
		}
		return slugs, nil
	}

	if len(slugs) > 0 {
		return nil, fmt.Errorf("%w: --all takes no slugs", ErrExtraArgument)
	}
	all, err := p.store.List()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: no source articles in %s%s",
			articles.ErrArticleNotFound, p.config.SourceDir, hints.ForArticleNotFound(nil))
	}
	return all, nil
}

// buildArticle compiles one source article and writes its outputs. Nothing
// is written when the source has diagnostics.
func buildArticle(env *Environment, p *project, b *zeta.Builder, slug string) buildResult {
	start := env.Now()
	result := buildResult{Slug: slug}

	source, err := p.readSource(slug)
	if err != nil {
		result.Err = err
		return result
	}

	published, err := p.store.ReadPublished(slug)
	if err != nil {
		result.Err = err
		return result
	}

	built, err := b.Build(zeta.Input{Source: source, Published: published})
	if err != nil {
		result.Err = err
		return result
	}

	for _, platform := range ast.Platforms {
		if !built.Has(platform) {
			if stale := p.store.OutputPath(platform, slug); fileutil.FileExists(stale) {
				env.Logger.WithField("path", p.rel(stale)).
					Warnf("article no longer compiles for %s; remove the stale output by hand", platform)
			}
			continue
		}

		content := built.Output(platform)
		path, err := p.store.WriteOutput(platform, slug, content)
		if err != nil {
			result.Err = fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
			return result
		}
		result.Outputs = append(result.Outputs, builtOutput{Platform: platform, Path: path, Size: len(content)})
	}

	if built.Has(zeta.Zenn) {
		warnShortSlug(env, slug)
	}

	result.Duration = env.Now().Sub(start)
	return result
}

// countBuildResults tallies built and failed articles.
func countBuildResults(results []buildResult) buildSummary {
	var summary buildSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Built++
		}
	}
	return summary
}

// printBuildResults reports every result and returns the exit code.
// Diagnostics are printed as path:row:column: message.
func printBuildResults(results []buildResult, common commonFlags, env *Environment, p *project) int {
	summary := countBuildResults(results)

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			printBuildFailure(env, p, r)
			continue
		}

		if common.quiet {
			continue
		}
		for _, out := range r.Outputs {
			if common.verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n",
					p.rel(p.store.SourcePath(r.Slug)), p.rel(out.Path),
					humanize.Bytes(uint64(out.Size)), r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Built %s (%s)\n", p.rel(out.Path), humanize.Bytes(uint64(out.Size)))
			}
		}
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d built, %d failed\n", summary.Built, summary.Failed)
	}

	return exitCodeFor(errors.Join(errs...))
}

func printBuildFailure(env *Environment, p *project, r buildResult) {
	var buildErr *zeta.BuildError
	if !errors.As(r.Err, &buildErr) {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Slug, r.Err)
		return
	}

	path := p.rel(p.store.SourcePath(r.Slug))
	for _, d := range buildErr.Diagnostics {
		fmt.Fprintf(env.Stderr, "%s:%v\n", path, d)
	}
	fmt.Fprintf(env.Stderr, "FAILED %s: %s\n", r.Slug, english.Plural(len(buildErr.Diagnostics), "problem", ""))
}
