package assets

import (
	"errors"
	"strings"
	"testing"
	"text/template"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestLoadStyle - Embedded preview styles
// ---------------------------------------------------------------------------

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		style       string
		wantContain string
		wantErr     error
	}{
		{
			name:        "default style",
			style:       DefaultStyleName,
			wantContain: "--text:",
		},
		{
			name:        "github style",
			style:       "github",
			wantContain: "max-width: 980px",
		},
		{
			name:    "unknown style",
			style:   "nonexistent",
			wantErr: ErrStyleNotFound,
		},
		{
			name:    "path traversal",
			style:   "../templates/article",
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "extension included",
			style:   "github.css",
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.style, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) should contain %q", tt.style, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_Styles(t *testing.T) {
	t.Parallel()

	got := NewEmbeddedLoader().Styles()
	if diff := cmp.Diff([]string{"default", "github"}, got); diff != "" {
		t.Errorf("Styles() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestLoadTemplate - Embedded article and settings templates
// ---------------------------------------------------------------------------

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	for _, name := range []string{ArticleTemplateName, ConfigTemplateName} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			content, err := LoadTemplate(name)
			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", name, err)
			}
			if _, err := template.New(name).Parse(content); err != nil {
				t.Errorf("template %q does not parse: %v", name, err)
			}
		})
	}

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		_, err := LoadTemplate("cover")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate(cover) error = %v, want ErrTemplateNotFound", err)
		}
	})
}

func TestArticleTemplate(t *testing.T) {
	t.Parallel()

	content, err := LoadTemplate(ArticleTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() unexpected error: %v", err)
	}
	tmpl := template.Must(template.New("article").Option("missingkey=error").Parse(content))

	data := struct {
		Title  string
		Emoji  string
		Type   string
		Topics []string
	}{`Say "hi"`, "📝", "tech", []string{"go", "cli"}}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}

	want := "---\n" +
		"title: \"Say \\\"hi\\\"\"\n" +
		"emoji: \"📝\"\n" +
		"type: tech\n" +
		"topics: [\"go\", \"cli\"]\n" +
		"published: false\n" +
		"---\n"
	if !strings.HasPrefix(buf.String(), want) {
		t.Errorf("article header mismatch (-want +got):\n%s", cmp.Diff(want, buf.String()[:min(len(want), buf.Len())]))
	}
}

// ---------------------------------------------------------------------------
// TestRenderTemplate - Executing embedded and custom templates
// ---------------------------------------------------------------------------

func TestRenderTemplate(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "templates/greeting.tmpl", "Hello {{ .Name }}")
	writeAsset(t, base, "templates/broken.tmpl", "Hello {{ .Name ")
	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("renders", func(t *testing.T) {
		t.Parallel()

		got, err := RenderTemplate(r, "greeting", map[string]string{"Name": "zeta"})
		if err != nil {
			t.Fatalf("RenderTemplate() error = %v", err)
		}
		if got != "Hello zeta" {
			t.Errorf("RenderTemplate() = %q, want %q", got, "Hello zeta")
		}
	})

	tests := []struct {
		name    string
		tmpl    string
		data    any
		wantErr error
	}{
		{"missing field", "greeting", map[string]string{}, ErrTemplateRender},
		{"parse error", "broken", map[string]string{"Name": "x"}, ErrTemplateRender},
		{"unknown template", "farewell", nil, ErrTemplateNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := RenderTemplate(r, tt.tmpl, tt.data); !errors.Is(err, tt.wantErr) {
				t.Errorf("RenderTemplate(%q) error = %v, want %v", tt.tmpl, err, tt.wantErr)
			}
		})
	}
}
