package preview

import (
	"context"

	"github.com/alnah/go-zeta/internal/ast"
)

// Options configures one preview rendering.
type Options struct {
	Platform    ast.Platform
	CSS         string // injected as a <style> block; empty for none
	ProjectDir  string // root that ImagePrefix paths are relative to
	ImagePrefix string // e.g. "/images"; empty disables image rewriting
}

// Renderer turns a compiled article into a standalone HTML page.
type Renderer struct {
	converter HTMLConverter
	css       CSSInjector
}

// NewRenderer creates a Renderer backed by goldmark.
func NewRenderer() *Renderer {
	return &Renderer{
		converter: NewGoldmarkConverter(),
		css:       &CSSInjection{},
	}
}

// Render converts a compiled article, frontmatter included, to HTML.
func (r *Renderer) Render(ctx context.Context, article string, opts Options) (string, error) {
	parts, err := SplitFrontmatter(article)
	if err != nil {
		return "", err
	}

	htmlContent, err := r.converter.ToHTML(ctx, Page{
		Title:    parts.Title,
		Platform: opts.Platform.String(),
		Markdown: PreprocessMarkdown(parts.Body, opts.Platform),
	})
	if err != nil {
		return "", err
	}

	htmlContent = ExpandBlocks(htmlContent)

	htmlContent, err = RewriteImagePaths(htmlContent, opts.ProjectDir, opts.ImagePrefix)
	if err != nil {
		return "", err
	}

	return r.css.InjectCSS(ctx, htmlContent, opts.CSS)
}
