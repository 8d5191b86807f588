// Package compiler renders a parsed document into platform Markdown.
//
// Compilers never fail: the parser has already rejected malformed input, and
// resource problems such as an unresolvable image URL degrade to the original
// value with a warning on the configured logger. Every Compile call starts
// from fresh state, so compiling the same document twice yields the same text.
package compiler

import (
	"strings"

	"github.com/alnah/go-zeta/internal/ast"
	"github.com/alnah/go-zeta/internal/yamlutil"
)

const separator = "---\n"

// Compiler renders a parsed document for one platform.
type Compiler interface {
	Platform() ast.Platform
	Compile(doc *ast.ParsedDocument) string
}

// renderFrontmatter frames v as a YAML block between separator lines.
func renderFrontmatter(v any) string {
	data, err := yamlutil.Marshal(v)
	if err != nil {
		// Frontmatter structs contain only strings, slices and bools.
		panic("compiler: marshal frontmatter: " + err.Error())
	}
	return separator + string(data) + separator
}

// colons returns the fence for a block at level.
func colons(level int) string {
	return ":::" + strings.Repeat(":", level)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
