package compiler

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-zeta/internal/ast"
)

// Defaults for Qiita rendering.
const (
	DefaultFootnotePrefix = "zeta"
	DefaultImagePrefix    = "/images"
)

const updatedAtKey = "updated_at:"

// QiitaFrontmatter is the metadata block of a Qiita article. The fields
// Private, UpdatedAt, ID, OrganizationURLName and Slide are owned by Qiita
// once the article is published and are carried over between builds.
type QiitaFrontmatter struct {
	Title               string   `yaml:"title"`
	Tags                []string `yaml:"tags"`
	Private             bool     `yaml:"private"`
	UpdatedAt           string   `yaml:"updated_at"`
	ID                  *string  `yaml:"id"`
	OrganizationURLName *string  `yaml:"organization_url_name"`
	Slide               bool     `yaml:"slide"`
	IgnorePublish       bool     `yaml:"ignorePublish"`
}

// QiitaOption configures a Qiita compiler.
type QiitaOption func(*Qiita)

// WithPublished supplies the metadata of the previously published version.
func WithPublished(fm *QiitaFrontmatter) QiitaOption {
	return func(q *Qiita) { q.published = fm }
}

// WithImageResolver sets the resolver for local image paths. Without one,
// local paths are kept as written.
func WithImageResolver(r ImageResolver) QiitaOption {
	return func(q *Qiita) { q.resolver = r }
}

// WithLogger sets the logger that receives resolution warnings.
func WithLogger(l logrus.FieldLogger) QiitaOption {
	return func(q *Qiita) {
		if l != nil {
			q.logger = l
		}
	}
}

// WithFootnotePrefix sets the namespace of generated inline footnote names.
func WithFootnotePrefix(prefix string) QiitaOption {
	return func(q *Qiita) {
		if prefix != "" {
			q.footnotePrefix = prefix
		}
	}
}

// WithImagePrefix sets the path prefix that marks an image as local.
func WithImagePrefix(prefix string) QiitaOption {
	return func(q *Qiita) {
		if prefix != "" {
			q.imagePrefix = prefix
		}
	}
}

// Qiita renders documents in Qiita's Markdown dialect.
type Qiita struct {
	published      *QiitaFrontmatter
	resolver       ImageResolver
	logger         logrus.FieldLogger
	footnotePrefix string
	imagePrefix    string
}

// NewQiita returns a Qiita compiler.
func NewQiita(opts ...QiitaOption) *Qiita {
	q := &Qiita{
		logger:         logrus.StandardLogger(),
		footnotePrefix: DefaultFootnotePrefix,
		imagePrefix:    DefaultImagePrefix,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (*Qiita) Platform() ast.Platform { return ast.Qiita }

func (q *Qiita) Compile(doc *ast.ParsedDocument) string {
	return q.renderFrontmatter(doc.Frontmatter) + q.newScope().render(doc.Elements)
}

// Frontmatter maps document metadata onto Qiita's schema, merging the
// published metadata when there is one.
func (q *Qiita) Frontmatter(f ast.Frontmatter) QiitaFrontmatter {
	fm := QiitaFrontmatter{
		Title:         f.Title,
		Tags:          nonNil(f.Topics),
		IgnorePublish: !f.Published,
	}
	if p := q.published; p != nil {
		fm.Private = p.Private
		fm.UpdatedAt = p.UpdatedAt
		fm.ID = p.ID
		fm.OrganizationURLName = p.OrganizationURLName
		fm.Slide = p.Slide
	}
	return fm
}

func (q *Qiita) renderFrontmatter(f ast.Frontmatter) string {
	return quoteUpdatedAt(renderFrontmatter(q.Frontmatter(f)))
}

// quoteUpdatedAt single-quotes the updated_at value unless the encoder
// already quoted it. Qiita's CLI rejects the bare timestamp form.
func quoteUpdatedAt(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, updatedAtKey) {
			continue
		}
		if strings.HasSuffix(line, `"`) || strings.HasSuffix(line, `'`) {
			return block
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, updatedAtKey))
		lines[i] = updatedAtKey + " '" + value + "'"
		return strings.Join(lines, "\n")
	}
	return block
}

func (q *Qiita) resolveImage(path string) string {
	if q.resolver == nil || !strings.HasPrefix(path, q.imagePrefix) {
		return path
	}
	url, err := q.resolver.ResolveImage(path)
	if err != nil {
		q.logger.WithError(err).WithField("path", path).Warn("could not resolve image URL, keeping local path")
		return path
	}
	return url
}

// qiitaScope renders one footnote scope: the document body or the body of a
// message or details block.
type qiitaScope struct {
	q *Qiita

	taken     map[string]bool // manual footnote ids and generated names
	names     []string        // generated names in insertion order
	footnotes map[string]string
}

func (q *Qiita) newScope() *qiitaScope {
	return &qiitaScope{
		q:         q,
		taken:     make(map[string]bool),
		footnotes: make(map[string]string),
	}
}

// render renders elements and appends the definitions of every inline
// footnote generated in this scope.
func (s *qiitaScope) render(elements []ast.Element) string {
	collectFootnoteIDs(elements, s.taken)

	var sb strings.Builder
	s.renderElements(&sb, elements)
	for _, name := range s.names {
		sb.WriteString("\n[^" + name + "]: " + s.footnotes[name] + "\n")
	}
	return sb.String()
}

func (s *qiitaScope) renderElements(sb *strings.Builder, elements []ast.Element) {
	for _, el := range elements {
		s.renderElement(sb, el)
	}
}

func (s *qiitaScope) renderElement(sb *strings.Builder, el ast.Element) {
	switch e := el.(type) {
	case ast.TextElement:
		sb.WriteString(e.Value)
	case ast.URLElement:
		sb.WriteString("\n" + e.Value + "\n")
	case ast.ImageElement:
		sb.WriteString("![" + e.Alt + "](" + s.q.resolveImage(e.URL) + ")")
	case ast.LinkCardElement:
		// Qiita expands a URL on its own line into a card.
		sb.WriteString("\n" + e.URL + "\n")
	case ast.InlineFootnoteElement:
		sb.WriteString("[^" + s.addFootnote(e.Content) + "]")
	case ast.FootnoteElement:
		sb.WriteString("[^" + e.ID + "]")
	case ast.MessageElement:
		body := s.q.newScope().render(e.Body)
		sb.WriteString(":::note " + e.Type.String() + "\n" + body + ":::")
	case ast.DetailsElement:
		body := s.q.newScope().render(e.Body)
		sb.WriteString("<details><summary>" + e.Title + "</summary>\n\n" + body + "</details>\n")
	case ast.MacroElement:
		s.renderElements(sb, e.Qiita)
	default:
		ast.UnknownElement(e)
	}
}

// addFootnote records content under the first free generated name.
func (s *qiitaScope) addFootnote(content string) string {
	base := s.q.footnotePrefix + ".inline."
	name := ""
	for i := 1; ; i++ {
		name = base + strconv.Itoa(i)
		if !s.taken[name] {
			break
		}
	}
	s.taken[name] = true
	s.names = append(s.names, name)
	s.footnotes[name] = content
	return name
}

// collectFootnoteIDs marks the manual footnote ids of one scope, including
// those inside Qiita macro streams. Nested blocks are separate scopes.
func collectFootnoteIDs(elements []ast.Element, taken map[string]bool) {
	for _, el := range elements {
		switch e := el.(type) {
		case ast.FootnoteElement:
			taken[e.ID] = true
		case ast.MacroElement:
			collectFootnoteIDs(e.Qiita, taken)
		}
	}
}
