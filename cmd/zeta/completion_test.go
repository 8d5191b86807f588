package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGenerateCompletion - Scripts per shell
// ---------------------------------------------------------------------------

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell Shell
		want  []string
	}{
		{
			shell: ShellBash,
			want: []string{
				"_zeta_completions()",
				"complete -F _zeta_completions zeta",
				`--platform) COMPREPLY=($(compgen -W "zenn qiita"`,
				"zeta/*.md",
			},
		},
		{
			shell: ShellZsh,
			want: []string{
				"#compdef zeta",
				"_zeta_slugs()",
				"'build:Compile source articles for Zenn and Qiita'",
			},
		},
		{
			shell: ShellFish,
			want: []string{
				"function __fish_zeta_needs_command",
				"complete -c zeta -n '__fish_zeta_using_command preview' -l platform -s p -x -a 'zenn qiita'",
				"complete -c zeta -n '__fish_zeta_using_command build' -a '(__fish_zeta_slugs)'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertContains(t, "script", buf.String(), tt.want...)
			for _, name := range []string{"init", "new", "build", "rename", "remove", "preview", "inspect", "doctor"} {
				if !strings.Contains(buf.String(), name) {
					t.Errorf("script missing command %q", name)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()

	err := GenerateCompletion(&bytes.Buffer{}, Shell("powershell"))
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("error = %v, want ErrUnsupportedShell", err)
	}
}

func TestGetCommands(t *testing.T) {
	t.Parallel()

	cmds := getCommands()
	if len(cmds) != 11 {
		t.Fatalf("got %d commands, want 11", len(cmds))
	}
	for i := 1; i < len(cmds); i++ {
		if cmds[i-1].Name >= cmds[i].Name {
			t.Errorf("commands not sorted: %q before %q", cmds[i-1].Name, cmds[i].Name)
		}
	}

	byName := make(map[string]commandDef, len(cmds))
	for _, c := range cmds {
		byName[c.Name] = c
	}
	if !byName["build"].TakesSlugs || byName["new"].TakesSlugs {
		t.Error("slug completion should be on build and off new")
	}

	var platform *flagDef
	for i, f := range byName["preview"].Flags {
		if f.Long == "platform" {
			platform = &byName["preview"].Flags[i]
		}
	}
	if platform == nil || platform.Type != flagEnum || platform.Short != "p" {
		t.Errorf("preview --platform = %+v, want enum with -p", platform)
	}
	for _, f := range byName["build"].Flags {
		if f.Long == "help" {
			t.Error("help flag should not be completed")
		}
	}
}

// ---------------------------------------------------------------------------
// TestCompletionCommand - CLI entry point
// ---------------------------------------------------------------------------

func TestCompletionCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"usage", nil, ExitSuccess, "Usage: zeta completion <shell>", ""},
		{"bash", []string{"bash"}, ExitSuccess, "complete -F _zeta_completions zeta", ""},
		{"unsupported", []string{"tcsh"}, ExitUsage, "", "unsupported shell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, t.TempDir())
			if code := env.run(append([]string{"completion"}, tt.args...)...); code != tt.wantCode {
				t.Errorf("exit = %d, want %d", code, tt.wantCode)
			}
			assertContains(t, "stdout", env.stdout.String(), tt.wantStdout)
			assertContains(t, "stderr", env.stderr.String(), tt.wantStderr)
		})
	}
}
