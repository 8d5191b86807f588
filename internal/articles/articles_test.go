package articles_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-zeta/internal/articles"
	"github.com/alnah/go-zeta/internal/ast"
)

func newStore(t *testing.T) (*articles.Store, string) {
	t.Helper()

	root := t.TempDir()
	return articles.NewStore(articles.Dirs{
		Root:   root,
		Source: "zeta",
		Zenn:   "articles",
		Qiita:  "public",
	}), root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidateSlug - File name rules
// ---------------------------------------------------------------------------

func TestValidateSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slug    string
		wantErr bool
	}{
		{"hello-world", false},
		{"my_article_01", false},
		{"a", false},
		{"", true},
		{"Hello", true},
		{"../etc", true},
		{"a/b", true},
		{"with space", true},
		{"x.md", true},
		{strings.Repeat("a", articles.MaxSlugLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			t.Parallel()

			err := articles.ValidateSlug(tt.slug)
			if tt.wantErr != errors.Is(err, articles.ErrInvalidSlug) {
				t.Errorf("ValidateSlug(%q) = %v, wantErr %v", tt.slug, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStore - Source and output lifecycle
// ---------------------------------------------------------------------------

func TestStore_Paths(t *testing.T) {
	t.Parallel()

	s, root := newStore(t)
	if got, want := s.SourcePath("a"), filepath.Join(root, "zeta", "a.md"); got != want {
		t.Errorf("SourcePath() = %q, want %q", got, want)
	}
	if got, want := s.OutputPath(ast.Zenn, "a"), filepath.Join(root, "articles", "a.md"); got != want {
		t.Errorf("OutputPath(zenn) = %q, want %q", got, want)
	}
	if got, want := s.OutputPath(ast.Qiita, "a"), filepath.Join(root, "public", "a.md"); got != want {
		t.Errorf("OutputPath(qiita) = %q, want %q", got, want)
	}
}

func TestStore_CreateAndRead(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)

	if _, err := s.ReadSource("hello"); !errors.Is(err, articles.ErrArticleNotFound) {
		t.Errorf("ReadSource() before create error = %v, want ErrArticleNotFound", err)
	}

	path, err := s.CreateSource("hello", "content")
	if err != nil {
		t.Fatalf("CreateSource() error = %v", err)
	}
	if path != s.SourcePath("hello") {
		t.Errorf("CreateSource() path = %q, want %q", path, s.SourcePath("hello"))
	}

	got, err := s.ReadSource("hello")
	if err != nil {
		t.Fatalf("ReadSource() error = %v", err)
	}
	if got != "content" {
		t.Errorf("ReadSource() = %q, want %q", got, "content")
	}

	if _, err := s.CreateSource("hello", "other"); !errors.Is(err, articles.ErrArticleExists) {
		t.Errorf("second CreateSource() error = %v, want ErrArticleExists", err)
	}
	if _, err := s.CreateSource("Bad Slug", "x"); !errors.Is(err, articles.ErrInvalidSlug) {
		t.Errorf("CreateSource(bad) error = %v, want ErrInvalidSlug", err)
	}
}

func TestStore_List(t *testing.T) {
	t.Parallel()

	s, root := newStore(t)

	got, err := s.List()
	if err != nil || got != nil {
		t.Fatalf("List() on missing dir = %v, %v, want nil, nil", got, err)
	}

	writeFile(t, filepath.Join(root, "zeta", "b.md"), "")
	writeFile(t, filepath.Join(root, "zeta", "a.md"), "")
	writeFile(t, filepath.Join(root, "zeta", "notes.txt"), "")
	writeFile(t, filepath.Join(root, "zeta", "Upper.md"), "")
	if err := os.MkdirAll(filepath.Join(root, "zeta", "dir.md"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got, err = s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_WriteAndRemove(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)

	if _, err := s.CreateSource("post", "src"); err != nil {
		t.Fatalf("setup: %v", err)
	}
	for _, p := range ast.Platforms {
		if _, err := s.WriteOutput(p, "post", p.String()); err != nil {
			t.Fatalf("WriteOutput(%v) error = %v", p, err)
		}
	}

	removed, err := s.RemoveOutput(ast.Qiita, "post")
	if err != nil || !removed {
		t.Fatalf("RemoveOutput() = %v, %v, want true, nil", removed, err)
	}
	removed, err = s.RemoveOutput(ast.Qiita, "post")
	if err != nil || removed {
		t.Errorf("RemoveOutput() again = %v, %v, want false, nil", removed, err)
	}

	paths, err := s.Remove("post", true)
	if err != nil {
		t.Fatalf("Remove(keepSource) error = %v", err)
	}
	if diff := cmp.Diff([]string{s.OutputPath(ast.Zenn, "post")}, paths); diff != "" {
		t.Errorf("Remove(keepSource) mismatch (-want +got):\n%s", diff)
	}

	paths, err = s.Remove("post", false)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if diff := cmp.Diff([]string{s.SourcePath("post")}, paths); diff != "" {
		t.Errorf("Remove() mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Remove("post", false); !errors.Is(err, articles.ErrArticleNotFound) {
		t.Errorf("Remove() of missing article error = %v, want ErrArticleNotFound", err)
	}
}

func TestStore_Rename(t *testing.T) {
	t.Parallel()

	t.Run("moves source and outputs", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		if _, err := s.CreateSource("old", "src"); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if _, err := s.WriteOutput(ast.Zenn, "old", "zenn"); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := s.Rename("old", "new"); err != nil {
			t.Fatalf("Rename() error = %v", err)
		}

		if got, err := s.ReadSource("new"); err != nil || got != "src" {
			t.Errorf("ReadSource(new) = %q, %v", got, err)
		}
		if _, err := os.Stat(s.OutputPath(ast.Zenn, "new")); err != nil {
			t.Errorf("zenn output not moved: %v", err)
		}
		if _, err := os.Stat(s.OutputPath(ast.Qiita, "new")); !os.IsNotExist(err) {
			t.Errorf("qiita output should not exist, stat error = %v", err)
		}
		if _, err := os.Stat(s.SourcePath("old")); !os.IsNotExist(err) {
			t.Errorf("old source still exists, stat error = %v", err)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		for _, slug := range []string{"a", "b"} {
			if _, err := s.CreateSource(slug, slug); err != nil {
				t.Fatalf("setup: %v", err)
			}
		}

		if err := s.Rename("a", "b"); !errors.Is(err, articles.ErrArticleExists) {
			t.Errorf("Rename() error = %v, want ErrArticleExists", err)
		}
		if got, _ := s.ReadSource("a"); got != "a" {
			t.Error("source a was modified")
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		if err := s.Rename("a", "b"); !errors.Is(err, articles.ErrArticleNotFound) {
			t.Errorf("Rename() error = %v, want ErrArticleNotFound", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestReadPublished - Qiita metadata read-back
// ---------------------------------------------------------------------------

func TestReadPublished(t *testing.T) {
	t.Parallel()

	t.Run("no previous build", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		fm, err := s.ReadPublished("post")
		if err != nil || fm != nil {
			t.Errorf("ReadPublished() = %+v, %v, want nil, nil", fm, err)
		}
	})

	t.Run("published article", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		writeFile(t, s.OutputPath(ast.Qiita, "post"), "---\n"+
			"title: Old\n"+
			"tags: [go]\n"+
			"private: true\n"+
			"updated_at: '2024-05-01T10:00:00+09:00'\n"+
			"id: abc123\n"+
			"organization_url_name: null\n"+
			"slide: false\n"+
			"ignorePublish: false\n"+
			"---\nbody\n")

		fm, err := s.ReadPublished("post")
		if err != nil {
			t.Fatalf("ReadPublished() error = %v", err)
		}
		if fm.ID == nil || *fm.ID != "abc123" {
			t.Errorf("ID = %v, want abc123", fm.ID)
		}
		if fm.OrganizationURLName != nil {
			t.Errorf("OrganizationURLName = %v, want nil", *fm.OrganizationURLName)
		}
		if !fm.Private || fm.UpdatedAt != "2024-05-01T10:00:00+09:00" {
			t.Errorf("ReadPublished() = %+v", fm)
		}
	})

	t.Run("file without frontmatter", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		writeFile(t, s.OutputPath(ast.Qiita, "post"), "just text\n")

		if _, err := s.ReadPublished("post"); !errors.Is(err, articles.ErrPublishedMetadata) {
			t.Errorf("error = %v, want ErrPublishedMetadata", err)
		}
	})
}
