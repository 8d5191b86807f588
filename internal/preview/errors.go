package preview

import "errors"

// Sentinel errors for preview rendering.
var (
	ErrFrontmatter    = errors.New("invalid article frontmatter")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPathRewrite    = errors.New("image path rewrite failed")
	ErrStyleInjection = errors.New("style injection failed")
)
