package main

// Notes:
// - runInit: config rendering, directory creation, the npm steps issued to
//   the runner, the repository prompt, and refusal to overwrite a project.
//   npm and npx never run for real: the fake runner records them.

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-zeta/internal/config"
	"github.com/alnah/go-zeta/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestInit - Project initialisation
// ---------------------------------------------------------------------------

func TestInit(t *testing.T) {
	t.Parallel()

	t.Run("writes config and directories without npm", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		env := newTestEnv(t, dir)

		if code := env.run("init", "--repository", "alnah/blog", "--no-npm"); code != ExitSuccess {
			t.Fatalf("exit = %d, want 0\nstderr: %s", code, env.stderr.String())
		}

		cfg, err := config.LoadConfig(filepath.Join(dir, config.FileName))
		if err != nil {
			t.Fatalf("generated config does not load: %v", err)
		}
		want := config.DefaultConfig()
		want.Repository = "alnah/blog"
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}

		for _, d := range []string{config.DefaultSourceDir, config.DefaultImagesDir} {
			if !fileutil.DirExists(filepath.Join(dir, d)) {
				t.Errorf("directory %s not created", d)
			}
		}
		if calls := env.runner.commands(); len(calls) != 0 {
			t.Errorf("--no-npm ran %v", calls)
		}
		assertContains(t, "stdout", env.stdout.String(), "Created", "zeta new <slug>")
	})

	t.Run("runs npm steps", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, t.TempDir())

		if code := env.run("init", "-r", "alnah/blog"); code != ExitSuccess {
			t.Fatalf("exit = %d, want 0\nstderr: %s", code, env.stderr.String())
		}

		want := []string{
			"npm init -y",
			"npm install --save-dev zenn-cli",
			"npm install --save-dev @qiita/qiita-cli",
			"npx zenn init",
			"npx qiita init",
		}
		if diff := cmp.Diff(want, env.runner.commands()); diff != "" {
			t.Errorf("commands mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("keeps existing package.json", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), "{}\n")
		env := newTestEnv(t, dir)

		if code := env.run("init", "-r", "alnah/blog"); code != ExitSuccess {
			t.Fatalf("exit = %d, want 0\nstderr: %s", code, env.stderr.String())
		}
		if calls := env.runner.commands(); len(calls) == 0 || calls[0] == "npm init -y" {
			t.Errorf("commands = %v, want no npm init", calls)
		}
	})

	t.Run("prompts for repository", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		env := newTestEnv(t, dir)
		env.Stdin = strings.NewReader("alnah/zenn-content\n")

		if code := env.run("init", "--no-npm"); code != ExitSuccess {
			t.Fatalf("exit = %d, want 0\nstderr: %s", code, env.stderr.String())
		}
		assertContains(t, "stdout", env.stdout.String(), "owner/repo")
		assertContains(t, "config", readFile(t, filepath.Join(dir, config.FileName)), `repository: "alnah/zenn-content"`)
	})

	t.Run("empty answer warns", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, t.TempDir())

		if code := env.run("init", "--no-npm"); code != ExitSuccess {
			t.Fatalf("exit = %d, want 0\nstderr: %s", code, env.stderr.String())
		}
		if len(env.warnings()) == 0 {
			t.Error("expected a warning about the missing repository")
		}
	})

	t.Run("invalid repository", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		env := newTestEnv(t, dir)

		if code := env.run("init", "-r", "not-a-repo", "--no-npm"); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		assertContains(t, "stderr", env.stderr.String(), "invalid repository", "hint:")
		if fileutil.FileExists(filepath.Join(dir, config.FileName)) {
			t.Error("config written despite invalid repository")
		}
	})

	t.Run("refuses existing project", func(t *testing.T) {
		t.Parallel()

		dir := newProject(t, "repository: a/b\n")
		env := newTestEnv(t, dir)

		if code := env.run("init", "--no-npm"); code != ExitIO {
			t.Errorf("exit = %d, want %d", code, ExitIO)
		}
		assertContains(t, "config", readFile(t, filepath.Join(dir, config.FileName)), "repository: a/b")
	})

	t.Run("npm failure", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, t.TempDir())
		env.runner.errs = map[string]error{"npm init -y": errCommandNotFound}

		code := env.run("init", "-r", "alnah/blog")
		if code != ExitGeneral {
			t.Errorf("exit = %d, want %d", code, ExitGeneral)
		}
		assertContains(t, "stderr", env.stderr.String(), "npm setup failed", "hint:")
		if calls := env.runner.commands(); len(calls) != 1 {
			t.Errorf("commands = %v, want to stop after the failure", calls)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPromptRepository - Reading the repository answer
// ---------------------------------------------------------------------------

func TestPromptRepository(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims newline", "alnah/blog\n", "alnah/blog"},
		{"trims spaces", "  alnah/blog  \r\n", "alnah/blog"},
		{"no newline at EOF", "alnah/blog", "alnah/blog"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out strings.Builder
			got, err := promptRepository(strings.NewReader(tt.input), &out)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("promptRepository() = %q, want %q", got, tt.want)
			}
		})
	}
}
