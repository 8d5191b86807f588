package ast

import "fmt"

// Position locates a rune in the source text. Row and Col are 1-based and
// counted in runes; a newline advances Row and resets Col to 1.
type Position struct {
	Row int
	Col int
}

// StartPosition is the position of the first rune of a document.
var StartPosition = Position{Row: 1, Col: 1}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Document pairs a frontmatter value with an ordered element sequence.
// Each pipeline stage consumes one Document and produces a new one.
type Document[F, E any] struct {
	Frontmatter F
	Elements    []E
}

// TokenizedDocument is the scanner output: raw frontmatter text plus tokens.
type TokenizedDocument = Document[string, Token]

// ParsedDocument is the parser output: decoded frontmatter plus the element tree.
type ParsedDocument = Document[Frontmatter, Element]

// Macro carries one value per target platform. The same logical macro is
// reshaped as it moves through the pipeline: raw strings, then tokens, then
// elements.
type Macro[T any] struct {
	Zenn  T
	Qiita T
}

// For returns the value for the given platform.
func (m Macro[T]) For(p Platform) T {
	if p == Qiita {
		return m.Qiita
	}
	return m.Zenn
}
