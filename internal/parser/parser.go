// Package parser turns a token stream into a nested element tree.
//
// Block tokens are matched by level: a MessageBegin or DetailsBegin opens a
// block whose body runs to the next BlockEnd of the same level. Each nested
// block must sit at a strictly lower level than the block around it. Macro
// streams are parsed by independent sub-parsers.
//
// Like the scanner, the parser keeps going after an error so a single pass
// reports every problem in the document.
package parser

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/alnah/go-zeta/internal/ast"
	"github.com/alnah/go-zeta/internal/yamlutil"
)

// DefaultMaxDepth bounds combined block and macro nesting.
const DefaultMaxDepth = 32

// frontmatterBodyRow is the first source row of frontmatter content, just
// below the opening separator.
const frontmatterBodyRow = 2

// Option configures a parse.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth sets the maximum nesting depth.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Parse decodes the frontmatter and builds the element tree. A frontmatter
// failure does not stop the body walk. On failure the returned error is Errors.
func Parse(doc *ast.TokenizedDocument, opts ...Option) (*ast.ParsedDocument, error) {
	o := buildOptions(opts)
	p := newParser(doc.Elements, 0, o.maxDepth)

	frontmatter := p.parseFrontmatter(doc.Frontmatter)
	elements, _ := p.parseElements(0, false)
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return &ast.ParsedDocument{Frontmatter: frontmatter, Elements: elements}, nil
}

// ParseBody builds the element tree of a token stream that has no frontmatter.
func ParseBody(tokens []ast.Token, opts ...Option) ([]ast.Element, error) {
	o := buildOptions(opts)
	p := newParser(tokens, 0, o.maxDepth)
	elements, _ := p.parseElements(0, false)
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return elements, nil
}

// Parser walks one token stream. Sub-documents get their own Parser.
type Parser struct {
	tokens  []ast.Token
	current int

	levels   *arraystack.Stack // open block levels, innermost on top
	depth    int               // macro nesting of this stream
	maxDepth int

	errors Errors
}

func newParser(tokens []ast.Token, depth, maxDepth int) *Parser {
	return &Parser{
		tokens:   tokens,
		levels:   arraystack.New(),
		depth:    depth,
		maxDepth: maxDepth,
	}
}

func (p *Parser) parseFrontmatter(raw string) ast.Frontmatter {
	var fm ast.Frontmatter
	if strings.TrimSpace(raw) == "" {
		p.fail(ErrInvalidFrontMatter, ast.StartPosition, "frontmatter is empty")
		return fm
	}

	if err := yamlutil.Unmarshal([]byte(raw), &fm); err != nil {
		pos := ast.StartPosition
		if line, col, ok := yamlutil.Position(err); ok {
			pos = ast.Position{Row: line + frontmatterBodyRow - 1, Col: max(col, 1)}
		}
		p.fail(ErrInvalidFrontMatter, pos, yamlutil.Message(err))
		return ast.Frontmatter{}
	}

	if len(fm.Topics) > ast.MaxTopics {
		p.errors = append(p.errors, &ParseError{
			Err:    ErrTooManyTopics,
			Pos:    ast.Position{Row: frontmatterBodyRow, Col: 1},
			Topics: fm.Topics,
		})
	}
	return fm
}

// parseElements consumes tokens until the end of the stream or, inside a
// block, until the BlockEnd of endLevel. found reports whether that BlockEnd
// was seen.
func (p *Parser) parseElements(endLevel int, inBlock bool) (elements []ast.Element, found bool) {
	for !p.isAtEnd() {
		tok := p.advance()
		switch t := tok.Type.(type) {
		case ast.Text:
			elements = append(elements, ast.TextElement{Value: t.Value})
		case ast.URL:
			elements = append(elements, ast.URLElement{Value: t.Value})
		case ast.Image:
			elements = append(elements, ast.ImageElement{Alt: t.Alt, URL: t.URL})
		case ast.LinkCard:
			elements = append(elements, ast.LinkCardElement{CardType: t.CardType, URL: t.URL})
		case ast.InlineFootnote:
			elements = append(elements, ast.InlineFootnoteElement{Content: t.Content})
		case ast.Footnote:
			elements = append(elements, ast.FootnoteElement{ID: t.ID})
		case ast.MessageBegin:
			elements = append(elements, p.parseMessage(tok.Pos, t))
		case ast.DetailsBegin:
			elements = append(elements, p.parseDetails(tok.Pos, t))
		case ast.BlockEnd:
			if inBlock && t.Level == endLevel {
				return elements, true
			}
			p.fail(ErrUnexpectedToken, tok.Pos, fmt.Sprintf("closing fence at level %d", t.Level))
		case ast.MacroTokens:
			elements = append(elements, p.parseMacro(tok.Pos, t))
		default:
			ast.UnknownToken(t)
		}
	}
	return elements, false
}

func (p *Parser) parseMessage(pos ast.Position, t ast.MessageBegin) ast.Element {
	typ, ok := ast.ParseMessageType(t.Type)
	if !ok {
		p.fail(ErrInvalidMessageType, pos, fmt.Sprintf("%q (want info, warn or alert)", t.Type))
	}
	body := p.parseBlock(pos, t.Level)
	return ast.MessageElement{Level: t.Level, Type: typ, Body: body}
}

func (p *Parser) parseDetails(pos ast.Position, t ast.DetailsBegin) ast.Element {
	body := p.parseBlock(pos, t.Level)
	return ast.DetailsElement{Level: t.Level, Title: t.Title, Body: body}
}

// parseBlock parses a block body up to its matching BlockEnd.
func (p *Parser) parseBlock(pos ast.Position, level int) []ast.Element {
	if top, ok := p.levels.Peek(); ok && level >= top.(int) {
		p.fail(ErrInvalidNestingLevel, pos, fmt.Sprintf("level %d inside level %d", level, top.(int)))
	}

	if p.depth+p.levels.Size() >= p.maxDepth {
		p.fail(ErrTooDeep, pos, fmt.Sprintf("max %d", p.maxDepth))
		if !p.skipBlock(level) {
			p.fail(ErrCouldNotFindEndToken, pos, fmt.Sprintf("level %d", level))
		}
		return nil
	}

	p.levels.Push(level)
	body, found := p.parseElements(level, true)
	p.levels.Pop()

	if !found {
		p.fail(ErrCouldNotFindEndToken, pos, fmt.Sprintf("level %d", level))
	}
	return body
}

// skipBlock discards tokens through the BlockEnd of level without recursing.
func (p *Parser) skipBlock(level int) bool {
	for !p.isAtEnd() {
		if end, ok := p.advance().Type.(ast.BlockEnd); ok && end.Level == level {
			return true
		}
	}
	return false
}

func (p *Parser) parseMacro(pos ast.Position, t ast.MacroTokens) ast.Element {
	if p.depth+1 > p.maxDepth {
		p.fail(ErrTooDeep, pos, fmt.Sprintf("max %d", p.maxDepth))
		return ast.MacroElement{}
	}

	zenn, zennOK := p.parseNested(t.Zenn)
	qiita, qiitaOK := p.parseNested(t.Qiita)
	if !zennOK || !qiitaOK {
		p.fail(ErrInvalidMacro, pos, "")
	}
	return ast.MacroElement{Macro: ast.Macro[[]ast.Element]{Zenn: zenn, Qiita: qiita}}
}

// parseNested parses one macro stream with a fresh Parser and merges its
// errors into p.
func (p *Parser) parseNested(tokens []ast.Token) ([]ast.Element, bool) {
	if tokens == nil {
		return nil, true
	}
	sub := newParser(tokens, p.depth+1, p.maxDepth)
	elements, _ := sub.parseElements(0, false)
	if len(sub.errors) > 0 {
		p.errors = append(p.errors, sub.errors...)
		return nil, false
	}
	return elements, true
}

func (p *Parser) fail(err error, pos ast.Position, detail string) {
	p.errors = append(p.errors, &ParseError{Err: err, Pos: pos, Detail: detail})
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens)
}

func (p *Parser) advance() ast.Token {
	tok := p.tokens[p.current]
	p.current++
	return tok
}
