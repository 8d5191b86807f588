package preview

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteImagePaths points project-rooted images ("/images/a.png") at
// file:// URLs under projectDir, so the page opens without a server.
// Remote URLs, sources outside prefix and paths that clean to somewhere
// outside projectDir are left alone. An empty projectDir or prefix
// disables the rewrite.
func RewriteImagePaths(htmlContent, projectDir, prefix string) (string, error) {
	if projectDir == "" || prefix == "" {
		return htmlContent, nil
	}

	root, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPathRewrite, err)
	}
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPathRewrite, err)
	}

	local := localImages{root: root, prefix: strings.TrimSuffix(prefix, "/") + "/"}
	eachElement(doc, atom.Img, func(img *html.Node) {
		for i := range img.Attr {
			if img.Attr[i].Key == "src" {
				img.Attr[i].Val = local.resolve(img.Attr[i].Val)
			}
		}
	})

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPathRewrite, err)
	}
	return buf.String(), nil
}

// localImages maps image sources under prefix to files under root.
type localImages struct {
	root   string
	prefix string
}

func (l localImages) resolve(src string) string {
	if !strings.HasPrefix(src, l.prefix) {
		return src
	}
	path := filepath.Join(l.root, filepath.FromSlash(src))
	rel, err := filepath.Rel(l.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return src
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// eachElement calls fn for every element of kind a, in document order.
func eachElement(n *html.Node, a atom.Atom, fn func(*html.Node)) {
	if n.Type == html.ElementNode && n.DataAtom == a {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		eachElement(c, a, fn)
	}
}
