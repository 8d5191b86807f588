package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if slices.Contains(os.Args[1:], "--verbose") || slices.Contains(os.Args[1:], "-v") {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	env := DefaultEnv()
	env.Ctx = ctx
	code := runMain(os.Args, env)
	stop()
	os.Exit(code)
}

// commands maps each command name to its handler.
var commands = map[string]func(args []string, env *Environment) int{
	"init":       runInitCmd,
	"new":        runNewCmd,
	"build":      runBuildCmd,
	"rename":     runRenameCmd,
	"remove":     runRemoveCmd,
	"preview":    runPreviewCmd,
	"inspect":    runInspectCmd,
	"doctor":     runDoctorCmd,
	"completion": runCompletionCmd,
}

// runMain dispatches args (including the program name) and returns the exit code.
func runMain(args []string, env *Environment) int {
	warnUnknownEnvVars(env.Stderr)

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "version", "--version":
		printVersion(env.Stdout)
		return ExitSuccess
	case "help", "--help", "-h":
		return runHelp(rest, env)
	}

	run, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
	return run(rest, env)
}

// notifyContext returns a context canceled on interrupt or SIGTERM. Commands
// pass it to git, npm and npx so an interrupt kills their process group.
// Windows never delivers SIGTERM; registering it there is a no-op.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "zeta %s\n", Version)
}
