// Package preview renders a compiled Zenn or Qiita article as a standalone
// HTML page for local review.
//
// The stages are:
//   - frontmatter split (adrg/frontmatter with goccy/go-yaml)
//   - dialect preprocessing: ":::" boxes, details blocks, link cards and
//     inline footnotes become constructs goldmark understands
//   - Markdown to HTML conversion via goldmark (GFM + footnotes)
//   - block placeholder expansion, local image rewriting and CSS injection
//
// The preview is an approximation of each platform's renderer, not a copy of it.
package preview
