package compiler

import (
	"strings"

	"github.com/alnah/go-zeta/internal/ast"
)

// ZennFrontmatter is the metadata block of a Zenn article.
type ZennFrontmatter struct {
	Title     string   `yaml:"title"`
	Emoji     string   `yaml:"emoji"`
	Type      string   `yaml:"type"`
	Topics    []string `yaml:"topics"`
	Published bool     `yaml:"published"`
}

// Zenn renders documents in Zenn's Markdown dialect. It is stateless.
type Zenn struct{}

// NewZenn returns a Zenn compiler.
func NewZenn() *Zenn {
	return &Zenn{}
}

func (*Zenn) Platform() ast.Platform { return ast.Zenn }

func (z *Zenn) Compile(doc *ast.ParsedDocument) string {
	fm := ZennFrontmatter{
		Title:     doc.Frontmatter.Title,
		Emoji:     doc.Frontmatter.Emoji,
		Type:      doc.Frontmatter.Type,
		Topics:    nonNil(doc.Frontmatter.Topics),
		Published: doc.Frontmatter.Published,
	}
	return renderFrontmatter(fm) + z.renderElements(doc.Elements)
}

func (z *Zenn) renderElements(elements []ast.Element) string {
	var sb strings.Builder
	for _, el := range elements {
		z.renderElement(&sb, el)
	}
	return sb.String()
}

func (z *Zenn) renderElement(sb *strings.Builder, el ast.Element) {
	switch e := el.(type) {
	case ast.TextElement:
		sb.WriteString(e.Value)
	case ast.URLElement:
		sb.WriteString("\n" + e.Value + "\n")
	case ast.ImageElement:
		sb.WriteString("![" + e.Alt + "](" + e.URL + ")")
	case ast.LinkCardElement:
		sb.WriteString("@[" + e.CardType + "](" + e.URL + ")")
	case ast.InlineFootnoteElement:
		sb.WriteString("^[" + e.Content + "]")
	case ast.FootnoteElement:
		sb.WriteString("[^" + e.ID + "]")
	case ast.MessageElement:
		fence := colons(e.Level)
		sb.WriteString(fence + "message")
		if e.Type == ast.Alert {
			sb.WriteString(" alert")
		}
		sb.WriteString("\n" + z.renderElements(e.Body) + fence)
	case ast.DetailsElement:
		fence := colons(e.Level)
		sb.WriteString(fence + "details " + e.Title + "\n" + z.renderElements(e.Body) + fence)
	case ast.MacroElement:
		sb.WriteString(z.renderElements(e.Zenn))
	default:
		ast.UnknownElement(e)
	}
}
