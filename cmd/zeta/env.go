package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-zeta/internal/gitremote"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, the project directory and external commands.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Dir    string           // project root; empty = working directory
	Logger *logrus.Logger   // warnings from the compiler and git lookups
	Run    gitremote.Runner // runs git, npm and npx
	Ctx    context.Context  // canceled on SIGINT/SIGTERM; nil = context.Background()
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		Logger: newLogger(os.Stderr),
		Run:    gitremote.ExecRunner,
	}
}

// newLogger creates the console logger: plain text without timestamps.
func newLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

// configureLogger applies --quiet and --verbose to the environment logger.
func (e *Environment) configureLogger(common commonFlags) {
	if e.Logger == nil {
		e.Logger = newLogger(e.Stderr)
	}
	switch {
	case common.verbose:
		e.Logger.SetLevel(logrus.DebugLevel)
	case common.quiet:
		e.Logger.SetLevel(logrus.ErrorLevel)
	default:
		e.Logger.SetLevel(logrus.InfoLevel)
	}
}

// baseContext returns the command context, canceled on interrupt.
func (e *Environment) baseContext() context.Context {
	if e.Ctx != nil {
		return e.Ctx
	}
	return context.Background()
}

// projectDir returns the absolute project root.
func (e *Environment) projectDir() (string, error) {
	if e.Dir != "" {
		return filepath.Abs(e.Dir)
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return dir, nil
}

// run executes an external command in dir, bound to the command context.
func (e *Environment) run(dir, name string, args ...string) ([]byte, error) {
	run := e.Run
	if run == nil {
		run = gitremote.ExecRunner
	}
	return run(e.baseContext(), dir, name, args...)
}
