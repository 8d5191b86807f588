package zeta

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-zeta/internal/compiler"
	"github.com/alnah/go-zeta/internal/parser"
	"github.com/alnah/go-zeta/internal/scanner"
)

// DefaultMaxDepth bounds macro and block nesting.
const DefaultMaxDepth = scanner.DefaultMaxDepth

// Option configures a Builder.
type Option func(*Builder)

// WithImageResolver sets how local image paths become remote URLs for Qiita.
func WithImageResolver(r ImageResolver) Option {
	return func(b *Builder) { b.resolver = r }
}

// WithLogger sets the logger that receives compiler warnings.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMaxDepth sets the maximum macro and block nesting depth.
func WithMaxDepth(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxDepth = n
		}
	}
}

// WithFootnotePrefix sets the namespace of generated Qiita footnote names.
func WithFootnotePrefix(prefix string) Option {
	return func(b *Builder) { b.footnotePrefix = prefix }
}

// WithImagePrefix sets the path prefix that marks an image as local.
func WithImagePrefix(prefix string) Option {
	return func(b *Builder) { b.imagePrefix = prefix }
}

// Builder runs the scan, parse and compile pipeline. A Builder holds no
// per-document state and may be reused.
type Builder struct {
	maxDepth       int
	resolver       ImageResolver
	logger         logrus.FieldLogger
	footnotePrefix string
	imagePrefix    string
}

// NewBuilder creates a Builder with default configuration.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		maxDepth:       DefaultMaxDepth,
		logger:         logrus.StandardLogger(),
		footnotePrefix: compiler.DefaultFootnotePrefix,
		imagePrefix:    compiler.DefaultImagePrefix,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Tokenize runs the scanner only. Errors are *BuildError.
func (b *Builder) Tokenize(source string) (*TokenizedDocument, error) {
	source, err := prepare(source)
	if err != nil {
		return nil, err
	}
	doc, err := scanner.Scan(source, scanner.WithMaxDepth(b.maxDepth))
	if err != nil {
		return nil, &BuildError{Diagnostics: scanDiagnostics(err)}
	}
	return doc, nil
}

// Parse runs the scanner and the parser. Errors are *BuildError.
func (b *Builder) Parse(source string) (*ParsedDocument, error) {
	tokens, err := b.Tokenize(source)
	if err != nil {
		return nil, err
	}
	doc, err := parser.Parse(tokens, parser.WithMaxDepth(b.maxDepth))
	if err != nil {
		return nil, &BuildError{Diagnostics: parseDiagnostics(err)}
	}
	return doc, nil
}

// Build compiles input for every platform its frontmatter targets. A
// document with any diagnostic produces no output.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (b *Builder) Build(input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("internal error: %v", r)
		}
	}()

	doc, err := b.Parse(input.Source)
	if err != nil {
		return nil, err
	}

	result = &Result{
		Frontmatter: doc.Frontmatter,
		Targets:     doc.Frontmatter.Targets(),
	}
	for _, p := range result.Targets {
		switch p {
		case Zenn:
			result.Zenn = compiler.NewZenn().Compile(doc)
		case Qiita:
			result.Qiita = b.qiita(input.Published).Compile(doc)
		}
	}
	return result, nil
}

func (b *Builder) qiita(published *QiitaFrontmatter) *compiler.Qiita {
	return compiler.NewQiita(
		compiler.WithPublished(published),
		compiler.WithImageResolver(b.resolver),
		compiler.WithLogger(b.logger),
		compiler.WithFootnotePrefix(b.footnotePrefix),
		compiler.WithImagePrefix(b.imagePrefix),
	)
}

func prepare(source string) (string, error) {
	source = normalizeLineEndings(source)
	if strings.TrimSpace(source) == "" {
		return "", ErrEmptySource
	}
	return source, nil
}
