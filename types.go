package zeta

import (
	"github.com/alnah/go-zeta/internal/ast"
	"github.com/alnah/go-zeta/internal/compiler"
)

// Re-exported data model.
type (
	Platform          = ast.Platform
	Frontmatter       = ast.Frontmatter
	Position          = ast.Position
	TokenizedDocument = ast.TokenizedDocument
	ParsedDocument    = ast.ParsedDocument
	QiitaFrontmatter  = compiler.QiitaFrontmatter
	ImageResolver     = compiler.ImageResolver
)

// ImageResolverFunc adapts a function to ImageResolver.
type ImageResolverFunc = compiler.ImageResolverFunc

// Publishing targets.
const (
	Zenn  = ast.Zenn
	Qiita = ast.Qiita
)

// Input is one source document to build.
type Input struct {
	Source    string            // source text (required)
	Published *QiitaFrontmatter // metadata of the published Qiita article (optional)
}

// Result holds the compiled output for each targeted platform.
type Result struct {
	Frontmatter Frontmatter
	Targets     []Platform // platforms that were compiled, in output order
	Zenn        string
	Qiita       string
}

// Has reports whether the document was compiled for p.
func (r *Result) Has(p Platform) bool {
	for _, t := range r.Targets {
		if t == p {
			return true
		}
	}
	return false
}

// Output returns the compiled text for p, or "" when p was not targeted.
func (r *Result) Output(p Platform) string {
	if !r.Has(p) {
		return ""
	}
	if p == Qiita {
		return r.Qiita
	}
	return r.Zenn
}
