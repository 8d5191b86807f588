package preview

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<p class="zeta-platform">{{.Platform}} preview</p>
<h1>{{.Title}}</h1>
{{.Body}}
</body>
</html>`))

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, page Page) (string, error)
}

// Page is the input of one HTML conversion.
type Page struct {
	Title    string
	Platform string
	Markdown string
}

// GoldmarkConverter renders pages with goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter returns a converter with the extensions both
// platforms render: GFM and footnotes, with single newlines kept as breaks.
// Raw HTML stays escaped; boxes and details travel as placeholders that
// ExpandBlocks replaces afterwards.
func NewGoldmarkConverter() *GoldmarkConverter {
	return &GoldmarkConverter{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithXHTML()),
	)}
}

// ToHTML renders page as a standalone HTML5 document. goldmark takes no
// context, so the conversion runs in a goroutine and ctx only bounds the wait.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, page Page) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		html, err := c.render(page)
		done <- result{html: html, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

func (c *GoldmarkConverter) render(page Page) (string, error) {
	var body bytes.Buffer
	if err := c.md.Convert([]byte(page.Markdown), &body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	var out bytes.Buffer
	err := pageTemplate.Execute(&out, struct {
		Title    string
		Platform string
		Body     template.HTML
	}{
		Title:    page.Title,
		Platform: page.Platform,
		Body:     template.HTML(body.String()), // #nosec G203 -- goldmark output with raw HTML disabled
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return out.String(), nil
}

var _ HTMLConverter = (*GoldmarkConverter)(nil)
