package preview

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSSInjector adds a stylesheet to a rendered page.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) (string, error)
}

// CSSInjection appends the stylesheet as the last <style> element of <head>,
// so it overrides any style already on the page.
type CSSInjection struct{}

// InjectCSS returns htmlContent with cssContent in its <head>. Fragments are
// completed into a full document. Empty CSS leaves the page untouched.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) (string, error) {
	if cssContent == "" {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleInjection, err)
	}

	head := findElement(doc, atom.Head)
	if head == nil {
		return "", fmt.Errorf("%w: no <head> element", ErrStyleInjection)
	}
	style := &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: sanitizeCSS(cssContent)})
	head.AppendChild(style)

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleInjection, err)
	}
	return buf.String(), nil
}

// findElement returns the first element of kind a in document order.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// sanitizeCSS escapes "</" so the text cannot close the <style> element.
// Style contents are raw text and are rendered without escaping.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

var _ CSSInjector = (*CSSInjection)(nil)
