package preview

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/alnah/go-zeta/internal/ast"
	"github.com/alnah/go-zeta/internal/yamlutil"
)

// Block placeholders use Unicode Private Use Area characters.
// They pass through goldmark as paragraph text (no WithUnsafe needed) and are
// expanded to HTML by ExpandBlocks after conversion.
const (
	BlockStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	BlockEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

const (
	kindBox     = "box"
	kindDetails = "details"
)

var (
	zennBlockOpen    = regexp.MustCompile(`^:{3,}(message|details)(?:\s+(.*?))?\s*$`)
	qiitaNoteOpen    = regexp.MustCompile(`^:{3,}note(?:\s+(\S+))?\s*$`)
	blockClose       = regexp.MustCompile(`^:{3,}\s*$`)
	htmlDetailsOpen  = regexp.MustCompile(`^<details><summary>(.*)</summary>\s*$`)
	htmlDetailsClose = regexp.MustCompile(`^(.*)</details>\s*$`)
	boxType          = regexp.MustCompile(`^[a-z]+$`)
	linkCard         = regexp.MustCompile(`@\[[^\]\n]*\]\(([^)\s]+)\)`)
	inlineFootnote   = regexp.MustCompile(`\^\[([^\]\n]*)\]`)
)

// yamlFormat reads "---" frontmatter with the same YAML library as the compilers.
var yamlFormat = frontmatter.NewFormat("---", "---", yamlutil.Unmarshal)

// Article is a compiled article split into its title and Markdown body.
type Article struct {
	Title string
	Body  string
}

// SplitFrontmatter separates the YAML header of a compiled article from its body.
// Content without a header is returned whole with an empty title.
func SplitFrontmatter(content string) (*Article, error) {
	var meta struct {
		Title string `yaml:"title"`
	}
	body, err := frontmatter.Parse(strings.NewReader(content), &meta, yamlFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrontmatter, err)
	}
	return &Article{Title: meta.Title, Body: string(body)}, nil
}

// PreprocessMarkdown rewrites the platform dialect of a compiled body into
// CommonMark plus block placeholders.
func PreprocessMarkdown(body string, platform ast.Platform) string {
	p := &preprocessor{platform: platform, open: arraystack.New()}
	return p.run(body)
}

type preprocessor struct {
	platform  ast.Platform
	open      *arraystack.Stack // block kinds awaiting their close marker
	inCode    bool
	footnotes []string
	out       strings.Builder
}

func (p *preprocessor) run(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		p.line(line)
		if i < len(lines)-1 {
			p.out.WriteByte('\n')
		}
	}
	for i, content := range p.footnotes {
		fmt.Fprintf(&p.out, "\n[^%s]: %s\n", inlineName(i+1), content)
	}
	return p.out.String()
}

func (p *preprocessor) line(line string) {
	if strings.HasPrefix(strings.TrimLeft(line, " "), "```") {
		p.inCode = !p.inCode
		p.out.WriteString(line)
		return
	}
	if p.inCode {
		p.out.WriteString(line)
		return
	}

	if p.platform == ast.Zenn {
		if m := zennBlockOpen.FindStringSubmatch(line); m != nil {
			if m[1] == "details" {
				p.openBlock(kindDetails, m[2])
			} else {
				p.openBlock(kindBox, boxArg(m[2]))
			}
			return
		}
	} else {
		if m := qiitaNoteOpen.FindStringSubmatch(line); m != nil {
			p.openBlock(kindBox, boxArg(m[1]))
			return
		}
		if m := htmlDetailsOpen.FindStringSubmatch(line); m != nil {
			p.openBlock(kindDetails, m[1])
			return
		}
		if top, ok := p.open.Peek(); ok && top == kindDetails {
			if m := htmlDetailsClose.FindStringSubmatch(line); m != nil {
				p.out.WriteString(p.inline(m[1]))
				p.closeBlock()
				return
			}
		}
	}

	if blockClose.MatchString(line) && !p.open.Empty() {
		p.closeBlock()
		return
	}

	p.out.WriteString(p.inline(line))
}

// inline rewrites link cards and Zenn inline footnotes.
func (p *preprocessor) inline(line string) string {
	line = linkCard.ReplaceAllString(line, "[$1]($1)")
	if p.platform != ast.Zenn {
		return line
	}
	return inlineFootnote.ReplaceAllStringFunc(line, func(m string) string {
		p.footnotes = append(p.footnotes, inlineFootnote.FindStringSubmatch(m)[1])
		return "[^" + inlineName(len(p.footnotes)) + "]"
	})
}

func (p *preprocessor) openBlock(kind, arg string) {
	p.open.Push(kind)
	p.out.WriteString("\n\n" + BlockStartPlaceholder + "open:" + kind + ":" + arg + BlockEndPlaceholder + "\n")
}

func (p *preprocessor) closeBlock() {
	kind, _ := p.open.Pop()
	p.out.WriteString("\n\n" + BlockStartPlaceholder + "close:" + kind.(string) + BlockEndPlaceholder + "\n")
}

// boxArg maps a box type to a CSS-safe class suffix.
func boxArg(t string) string {
	if t == "" || !boxType.MatchString(t) {
		return "info"
	}
	return t
}

func inlineName(n int) string {
	return fmt.Sprintf("preview-inline-%d", n)
}

// ExpandBlocks replaces the block placeholders left in goldmark's output with HTML.
func ExpandBlocks(htmlContent string) string {
	return placeholderPattern.ReplaceAllStringFunc(htmlContent, func(m string) string {
		sub := placeholderPattern.FindStringSubmatch(m)
		switch {
		case sub[1] == "close" && sub[2] == kindBox:
			return "</div>"
		case sub[1] == "close":
			return "</details>"
		case sub[2] == kindBox:
			return `<div class="zeta-box zeta-` + sub[3] + `">`
		default:
			return "<details><summary>" + sub[3] + "</summary>"
		}
	})
}

// Tight list items render without <p>, so the wrapper is optional.
var placeholderPattern = regexp.MustCompile(`(?:<p>)?\x{E000}(open|close):(box|details):?([^\x{E001}]*)\x{E001}(?:</p>)?`)
