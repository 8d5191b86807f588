package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-zeta/internal/articles"
	"github.com/alnah/go-zeta/internal/hints"
)

func runRenameCmd(args []string, env *Environment) int {
	f, rest, err := parseRenameFlags(args, env.Stderr)
	if err != nil {
		return flagExit(env, err, printRenameUsage)
	}
	env.configureLogger(*f)

	if err := requireArgs(rest, 2, "old and new slug"); err != nil {
		return fail(env, err)
	}

	p, err := openProject(env, *f)
	if err != nil {
		return fail(env, err)
	}

	from, to := rest[0], rest[1]
	if err := p.store.Rename(from, to); err != nil {
		if errors.Is(err, articles.ErrArticleNotFound) {
			available, _ := p.store.List()
			err = fmt.Errorf("%w%s", err, hints.ForArticleNotFound(available))
		}
		return fail(env, err)
	}

	warnShortSlug(env, to)
	if !f.quiet {
		fmt.Fprintf(env.Stdout, "Renamed %s to %s\n", from, to)
	}
	return ExitSuccess
}

func runRemoveCmd(args []string, env *Environment) int {
	f, rest, err := parseRemoveFlags(args, env.Stderr)
	if err != nil {
		return flagExit(env, err, printRemoveUsage)
	}
	env.configureLogger(f.common)

	if err := requireArgs(rest, 1, "slug"); err != nil {
		return fail(env, err)
	}

	p, err := openProject(env, f.common)
	if err != nil {
		return fail(env, err)
	}

	removed, err := p.store.Remove(rest[0], f.keepSource)
	if err != nil {
		return fail(env, err)
	}
	if !f.common.quiet {
		for _, path := range removed {
			fmt.Fprintf(env.Stdout, "Removed %s\n", p.rel(path))
		}
	}
	return ExitSuccess
}
