package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake command runner and project fixtures
// ---------------------------------------------------------------------------

// errCommandNotFound simulates a missing executable.
var errCommandNotFound = errors.New("executable file not found in $PATH")

// fakeRunner records commands and answers them from canned outputs.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []string
	outputs map[string]string
	errs    map[string]error
}

func (f *fakeRunner) run(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)
	if err, ok := f.errs[cmd]; ok {
		return nil, err
	}
	return []byte(f.outputs[cmd]), nil
}

func (f *fakeRunner) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// testEnv is an Environment bound to a project directory with captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	hook   *test.Hook
	runner *fakeRunner
}

func newTestEnv(t *testing.T, dir string) *testEnv {
	t.Helper()

	logger, hook := test.NewNullLogger()
	runner := &fakeRunner{
		outputs: map[string]string{
			"git --version": "git version 2.47.0\n",
			"npx --version": "10.9.0\n",
		},
	}
	var stdout, stderr bytes.Buffer
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return fixed },
			Stdout: &stdout,
			Stderr: &stderr,
			Stdin:  strings.NewReader(""),
			Dir:    dir,
			Logger: logger,
			Run:    runner.run,
		},
		stdout: &stdout,
		stderr: &stderr,
		hook:   hook,
		runner: runner,
	}
}

// run invokes runMain with "zeta" prepended.
func (e *testEnv) run(args ...string) int {
	return runMain(append([]string{"zeta"}, args...), e.Environment)
}

// warnings returns the logged warning messages.
func (e *testEnv) warnings() []string {
	var msgs []string
	for _, entry := range e.hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			msgs = append(msgs, entry.Message)
		}
	}
	return msgs
}

// newProject creates a project directory with zeta.yaml holding cfg.
func newProject(t *testing.T, cfg string) string {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "zeta.yaml"), cfg)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertContains(t *testing.T, label, got string, wants ...string) {
	t.Helper()

	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("%s should contain %q, got:\n%s", label, want, got)
		}
	}
}

const article = "---\ntitle: Hello\nemoji: \"👋\"\ntype: tech\ntopics: [go]\npublished: false\n---\n"
