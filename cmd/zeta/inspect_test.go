package main

// Notes:
// - inspect flips pp's package-level color switch, so these tests do not run
//   in parallel with each other.

import (
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestInspect - Dumping tokens and element trees
// ---------------------------------------------------------------------------

func TestInspect(t *testing.T) {
	dir := newProject(t, "repository: alnah/blog\n")
	writeFile(t, filepath.Join(dir, "zeta", "inspected-article.md"), article+"text^[a note]\n")

	t.Run("element tree", func(t *testing.T) {
		env := newTestEnv(t, dir)

		if code := env.run("inspect", "inspected-article"); code != ExitSuccess {
			t.Fatalf("exit = %d, want 0\nstderr: %s", code, env.stderr.String())
		}
		assertContains(t, "stdout", env.stdout.String(), "Frontmatter", `"Hello"`, "a note")
		if strings.Contains(env.stdout.String(), "\x1b[") {
			t.Error("output colored without --color")
		}
	})

	t.Run("tokens", func(t *testing.T) {
		env := newTestEnv(t, dir)

		if code := env.run("inspect", "--tokens", "inspected-article"); code != ExitSuccess {
			t.Fatalf("exit = %d, want 0\nstderr: %s", code, env.stderr.String())
		}
		assertContains(t, "stdout", env.stdout.String(), "Elements", "a note")
	})

	t.Run("syntax error", func(t *testing.T) {
		broken := newProject(t, "repository: alnah/blog\n")
		writeFile(t, filepath.Join(broken, "zeta", "broken-article.md"), article+"![a](b\n")
		env := newTestEnv(t, broken)

		if code := env.run("inspect", "broken-article"); code != ExitSyntax {
			t.Errorf("exit = %d, want %d", code, ExitSyntax)
		}
		assertContains(t, "stderr", env.stderr.String(), "zeta/broken-article.md:8:5:")
	})

	t.Run("missing slug", func(t *testing.T) {
		env := newTestEnv(t, dir)

		if code := env.run("inspect"); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})
}
