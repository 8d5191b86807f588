package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-zeta/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestPreview - Rendering compiled articles as HTML
// ---------------------------------------------------------------------------

func TestPreview(t *testing.T) {
	t.Parallel()

	const source = article + ":::message alert\nCareful\n:::\n![logo](/images/logo.png)\n"

	t.Run("writes to the preview directory", func(t *testing.T) {
		t.Parallel()

		dir := newProject(t, "repository: alnah/blog\n")
		writeFile(t, filepath.Join(dir, "zeta", "preview-article.md"), source)
		env := newTestEnv(t, dir)

		if code := env.run("preview", "preview-article"); code != ExitSuccess {
			t.Fatalf("exit = %d, want 0\nstderr: %s", code, env.stderr.String())
		}

		out := filepath.Join(dir, ".zeta", "preview", "preview-article.zenn.html")
		html := readFile(t, out)
		assertContains(t, "html", html,
			"<title>Hello</title>",
			`<div class="zeta-box zeta-alert">`,
			"<p>Careful</p>",
			"<style>",
		)
		assertContains(t, "stdout", env.stdout.String(), "Created "+out)
		if calls := env.runner.commands(); len(calls) != 0 {
			t.Errorf("preview should not query git, ran %v", calls)
		}
	})

	t.Run("qiita to an explicit file", func(t *testing.T) {
		t.Parallel()

		dir := newProject(t, "repository: alnah/blog\n")
		writeFile(t, filepath.Join(dir, "zeta", "preview-article.md"), source)
		env := newTestEnv(t, dir)
		out := filepath.Join(t.TempDir(), "out.html")

		if code := env.run("preview", "-p", "qiita", "-o", out, "preview-article"); code != ExitSuccess {
			t.Fatalf("exit = %d, want 0\nstderr: %s", code, env.stderr.String())
		}
		assertContains(t, "html", readFile(t, out), "qiita preview", `<div class="zeta-box zeta-alert">`)
	})

	t.Run("custom stylesheet path", func(t *testing.T) {
		t.Parallel()

		dir := newProject(t, "repository: alnah/blog\n")
		writeFile(t, filepath.Join(dir, "zeta", "preview-article.md"), source)
		writeFile(t, filepath.Join(dir, "css", "mine.css"), "body{color:teal}")
		env := newTestEnv(t, dir)

		if code := env.run("preview", "--style", "css/mine.css", "preview-article"); code != ExitSuccess {
			t.Fatalf("exit = %d, want 0\nstderr: %s", code, env.stderr.String())
		}
		html := readFile(t, filepath.Join(dir, ".zeta", "preview", "preview-article.zenn.html"))
		assertContains(t, "html", html, "body{color:teal}")
	})
}

// ---------------------------------------------------------------------------
// TestPreview_Errors - Failures before anything is written
// ---------------------------------------------------------------------------

func TestPreview_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "platform not targeted",
			source:   "---\ntitle: x\nonly: zenn\n---\nbody\n",
			args:     []string{"--platform", "qiita"},
			wantCode: ExitUsage,
			wantErr:  "does not compile for",
		},
		{
			name:     "unknown platform",
			source:   article + "body\n",
			args:     []string{"--platform", "medium"},
			wantCode: ExitUsage,
		},
		{
			name:     "unknown style",
			source:   article + "body\n",
			args:     []string{"--style", "nope"},
			wantCode: ExitUsage,
			wantErr:  "available: ",
		},
		{
			name:     "missing stylesheet file",
			source:   article + "body\n",
			args:     []string{"--style", "css/none.css"},
			wantCode: ExitIO,
		},
		{
			name:     "syntax error",
			source:   article + "![a](b\n",
			wantCode: ExitSyntax,
			wantErr:  "zeta/target-article.md:8:5:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newProject(t, "repository: alnah/blog\n")
			writeFile(t, filepath.Join(dir, "zeta", "target-article.md"), tt.source)
			env := newTestEnv(t, dir)

			args := append([]string{"preview"}, tt.args...)
			if code := env.run(append(args, "target-article")...); code != tt.wantCode {
				t.Errorf("exit = %d, want %d\nstderr: %s", code, tt.wantCode, env.stderr.String())
			}
			if tt.wantErr != "" && !strings.Contains(env.stderr.String(), tt.wantErr) {
				t.Errorf("stderr should contain %q, got:\n%s", tt.wantErr, env.stderr.String())
			}
			if fileutil.DirExists(filepath.Join(dir, ".zeta")) {
				t.Error("preview directory created despite the error")
			}
		})
	}
}
