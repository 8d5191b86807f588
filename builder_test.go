package zeta_test

// Notes:
// - Stage behavior is covered in the internal packages; these tests exercise
//   the pipeline wiring, error aggregation and the public result surface.

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/alnah/go-zeta"
)

const header = "---\ntitle: Hello\nemoji: \"👋\"\ntype: tech\ntopics: [go]\npublished: false\n---\n"

func newBuilder(opts ...zeta.Option) *zeta.Builder {
	logger, _ := test.NewNullLogger()
	return zeta.NewBuilder(append([]zeta.Option{zeta.WithLogger(logger)}, opts...)...)
}

func buildError(t *testing.T, err error) *zeta.BuildError {
	t.Helper()

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, zeta.ErrSyntax) {
		t.Errorf("errors.Is(err, ErrSyntax) = false, got: %v", err)
	}
	var buildErr *zeta.BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("error type = %T, want *zeta.BuildError", err)
	}
	return buildErr
}

// ---------------------------------------------------------------------------
// TestBuild - Compiles documents for their targets
// ---------------------------------------------------------------------------

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		source      string
		wantTargets []zeta.Platform
		wantZenn    string // suffix
		wantQiita   string // suffix
	}{
		{
			name:        "message on both platforms",
			source:      header + ":::message alert\nHello\n:::\n",
			wantTargets: []zeta.Platform{zeta.Zenn, zeta.Qiita},
			wantZenn:    "---\n:::message alert\nHello\n:::\n",
			wantQiita:   "---\n:::note alert\nHello\n:::\n",
		},
		{
			name:        "CRLF line endings",
			source:      strings.ReplaceAll(header+":::message alert\r\nHello\r\n:::\r\n", "\n", "\r\n"),
			wantTargets: []zeta.Platform{zeta.Zenn, zeta.Qiita},
			wantZenn:    "---\n:::message alert\nHello\n:::\n",
			wantQiita:   "---\n:::note alert\nHello\n:::\n",
		},
		{
			name:        "macro selects per platform",
			source:      header + "<macro>\nzenn: A\nqiita: B\n</macro>\n",
			wantTargets: []zeta.Platform{zeta.Zenn, zeta.Qiita},
			wantZenn:    "---\nA\n",
			wantQiita:   "---\nB\n",
		},
		{
			name:        "restricted to qiita",
			source:      "---\ntitle: x\nonly: qiita\n---\nbody\n",
			wantTargets: []zeta.Platform{zeta.Qiita},
			wantQiita:   "---\nbody\n",
		},
		{
			name:        "restricted to zenn",
			source:      "---\ntitle: x\nonly: zenn\n---\nbody\n",
			wantTargets: []zeta.Platform{zeta.Zenn},
			wantZenn:    "---\nbody\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := newBuilder().Build(zeta.Input{Source: tt.source})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Targets) != len(tt.wantTargets) {
				t.Fatalf("Targets = %v, want %v", result.Targets, tt.wantTargets)
			}
			for i, p := range tt.wantTargets {
				if result.Targets[i] != p {
					t.Errorf("Targets[%d] = %v, want %v", i, result.Targets[i], p)
				}
			}

			for _, p := range []zeta.Platform{zeta.Zenn, zeta.Qiita} {
				want := tt.wantZenn
				if p == zeta.Qiita {
					want = tt.wantQiita
				}
				got := result.Output(p)
				if want == "" {
					if result.Has(p) || got != "" {
						t.Errorf("%v: Has = %v, Output = %q, want no output", p, result.Has(p), got)
					}
					continue
				}
				if !strings.HasSuffix(got, want) {
					t.Errorf("%v output = %q, want suffix %q", p, got, want)
				}
			}
		})
	}
}

func TestBuildFrontmatter(t *testing.T) {
	t.Parallel()

	id := "abc123"
	result, err := newBuilder().Build(zeta.Input{
		Source:    header + "body\n",
		Published: &zeta.QiitaFrontmatter{ID: &id, Private: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Frontmatter.Title != "Hello" || result.Frontmatter.Type != "tech" {
		t.Errorf("Frontmatter = %+v, want decoded header", result.Frontmatter)
	}
	for _, want := range []string{"title: Hello\n", "type: tech\n", "published: false\n"} {
		if !strings.Contains(result.Zenn, want) {
			t.Errorf("zenn output missing %q:\n%s", want, result.Zenn)
		}
	}
	for _, want := range []string{"id: abc123\n", "private: true\n", "ignorePublish: true\n"} {
		if !strings.Contains(result.Qiita, want) {
			t.Errorf("qiita output missing %q:\n%s", want, result.Qiita)
		}
	}
}

func TestBuildImageResolver(t *testing.T) {
	t.Parallel()

	b := newBuilder(zeta.WithImageResolver(zeta.ImageResolverFunc(func(path string) (string, error) {
		return "https://cdn.example.com" + path, nil
	})))
	result, err := b.Build(zeta.Input{Source: header + "![a](/images/a.png)\n"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(result.Qiita, "![a](https://cdn.example.com/images/a.png)\n") {
		t.Errorf("qiita image not resolved:\n%s", result.Qiita)
	}
	if !strings.HasSuffix(result.Zenn, "![a](/images/a.png)\n") {
		t.Errorf("zenn image should keep its local path:\n%s", result.Zenn)
	}
}

func TestBuildIdempotent(t *testing.T) {
	t.Parallel()

	source := header + "a^[one] b^[two]\n:::details T\nc^[three]\n:::\n"
	b := newBuilder()
	first, err := b.Build(zeta.Input{Source: source})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := b.Build(zeta.Input{Source: source})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Zenn != second.Zenn || first.Qiita != second.Qiita {
		t.Error("second build differs from the first")
	}
}

// ---------------------------------------------------------------------------
// TestBuildErrors - Reports every diagnostic and produces no output
// ---------------------------------------------------------------------------

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()

		result, err := newBuilder().Build(zeta.Input{Source: " \r\n\n"})
		if !errors.Is(err, zeta.ErrEmptySource) {
			t.Errorf("error = %v, want ErrEmptySource", err)
		}
		if result != nil {
			t.Error("result should be nil on error")
		}
	})

	t.Run("scan errors", func(t *testing.T) {
		t.Parallel()

		result, err := newBuilder().Build(zeta.Input{Source: header + "![a](b\nx `y\n"})
		if result != nil {
			t.Error("result should be nil on error")
		}
		buildErr := buildError(t, err)
		if len(buildErr.Diagnostics) != 2 {
			t.Fatalf("got %d diagnostics, want 2: %v", len(buildErr.Diagnostics), err)
		}
		d := buildErr.Diagnostics[0]
		if d.Stage != zeta.StageScan {
			t.Errorf("Stage = %q, want %q", d.Stage, zeta.StageScan)
		}
		if got, want := d.Error(), `8:5: incomplete: missing closing ")"`; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
		if !errors.Is(err, zeta.ErrIncomplete) {
			t.Error("errors.Is(err, ErrIncomplete) = false")
		}
	})

	t.Run("parse errors", func(t *testing.T) {
		t.Parallel()

		source := "---\ntitle: x\ntopics: [a, b, c, d, e, f]\n---\n:::message nope\nx\n"
		_, err := newBuilder().Build(zeta.Input{Source: source})
		buildErr := buildError(t, err)
		if len(buildErr.Diagnostics) != 3 {
			t.Fatalf("got %d diagnostics, want 3: %v", len(buildErr.Diagnostics), err)
		}
		for i, want := range []error{zeta.ErrTooManyTopics, zeta.ErrInvalidMessageType, zeta.ErrCouldNotFindEndToken} {
			if !errors.Is(buildErr.Diagnostics[i], want) {
				t.Errorf("Diagnostics[%d] = %v, want %v", i, buildErr.Diagnostics[i], want)
			}
			if buildErr.Diagnostics[i].Stage != zeta.StageParse {
				t.Errorf("Diagnostics[%d].Stage = %q, want parse", i, buildErr.Diagnostics[i].Stage)
			}
		}
		if !strings.Contains(err.Error(), "3 problems") {
			t.Errorf("Error() = %q, want problem count", err.Error())
		}
	})

	t.Run("invalid macro", func(t *testing.T) {
		t.Parallel()

		_, err := newBuilder().Build(zeta.Input{Source: header + "<macro>\nnote: x\n</macro>\n"})
		buildError(t, err)
		if !errors.Is(err, zeta.ErrInvalidMacro) {
			t.Errorf("errors.Is(err, ErrInvalidMacro) = false, got: %v", err)
		}
	})

	t.Run("nesting limit", func(t *testing.T) {
		t.Parallel()

		source := header + "::::message\n:::details T\nx\n:::\n::::\n"
		_, err := newBuilder(zeta.WithMaxDepth(1)).Build(zeta.Input{Source: source})
		buildError(t, err)
		if !errors.Is(err, zeta.ErrTooDeep) {
			t.Errorf("errors.Is(err, ErrTooDeep) = false, got: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestTokenizeAndParse - Exposes intermediate pipeline stages
// ---------------------------------------------------------------------------

func TestTokenizeAndParse(t *testing.T) {
	t.Parallel()

	b := newBuilder()

	tokens, err := b.Tokenize(header + "x^[n]\n")
	if err != nil {
		t.Fatalf("Tokenize: unexpected error: %v", err)
	}
	if len(tokens.Elements) != 3 {
		t.Errorf("got %d tokens, want 3", len(tokens.Elements))
	}

	doc, err := b.Parse(header + "x^[n]\n")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if doc.Frontmatter.Title != "Hello" || len(doc.Elements) != 3 {
		t.Errorf("Parse = %+v, want title Hello and 3 elements", doc)
	}
}
