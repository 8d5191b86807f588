package main

import (
	"fmt"

	"github.com/k0kubun/pp"
)

func runInspectCmd(args []string, env *Environment) int {
	f, rest, err := parseInspectFlags(args, env.Stderr)
	if err != nil {
		return flagExit(env, err, printInspectUsage)
	}
	env.configureLogger(f.common)

	if err := requireArgs(rest, 1, "slug"); err != nil {
		return fail(env, err)
	}

	p, err := openProject(env, f.common)
	if err != nil {
		return fail(env, err)
	}

	source, err := p.readSource(rest[0])
	if err != nil {
		return fail(env, err)
	}

	// pp keeps its color switch in a package variable; inspect is the only user.
	pp.ColoringEnabled = f.color

	b := p.builder(env, nil)
	var dump any
	if f.tokens {
		dump, err = b.Tokenize(source)
	} else {
		dump, err = b.Parse(source)
	}
	if err != nil {
		printBuildFailure(env, p, buildResult{Slug: rest[0], Err: err})
		return exitCodeFor(err)
	}

	if _, err := pp.Fprintln(env.Stdout, dump); err != nil {
		return fail(env, fmt.Errorf("writing dump: %w", err))
	}
	return ExitSuccess
}
