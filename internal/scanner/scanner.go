// Package scanner turns source text into a flat, position-tagged token stream.
//
// The scanner makes a single forward pass. Recognised constructs become
// tokens; everything else accumulates in a text buffer that is flushed as a
// Text token before each construct and at end of input. Macro bodies are
// decoded as YAML and each platform's string is scanned by a fresh Scanner.
//
// Structural problems do not stop the scan: the scanner recovers just past the
// offending opener and keeps going, so one pass reports every error.
package scanner

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/alnah/go-zeta/internal/ast"
	"github.com/alnah/go-zeta/internal/yamlutil"
)

// DefaultMaxDepth bounds macro-inside-macro recursion.
const DefaultMaxDepth = 32

const (
	separator  = "---"
	fence      = ":::"
	messageTag = "message"
	detailsTag = "details"
	macroOpen  = "<macro>"
	macroClose = "</macro>"
)

// Option configures a scan.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth sets the maximum macro nesting depth.
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

// Scan tokenizes a complete document: an optional frontmatter block delimited
// by --- lines, followed by the body. On failure the returned error is Errors.
func Scan(source string, opts ...Option) (*ast.TokenizedDocument, error) {
	o := buildOptions(opts)
	s := newScanner(source, ast.StartPosition, 0, o.maxDepth)

	frontmatter := s.scanFrontmatter()
	tokens := s.scanBody()
	if len(s.errors) > 0 {
		return nil, s.errors
	}
	return &ast.TokenizedDocument{Frontmatter: frontmatter, Elements: tokens}, nil
}

// ScanBody tokenizes text that has no frontmatter, with positions counted
// from start.
func ScanBody(source string, start ast.Position, opts ...Option) ([]ast.Token, error) {
	o := buildOptions(opts)
	s := newScanner(source, start, 0, o.maxDepth)
	tokens := s.scanBody()
	if len(s.errors) > 0 {
		return nil, s.errors
	}
	return tokens, nil
}

// Scanner holds the cursor state of one (sub)document.
type Scanner struct {
	src []rune

	current  int
	pos      ast.Position // position of src[current]
	start    int          // text buffer start
	startPos ast.Position

	lineStart bool
	depth     int
	maxDepth  int

	tokens []ast.Token
	errors Errors
}

// cursor is a restorable snapshot of the read position.
type cursor struct {
	index int
	pos   ast.Position
}

func newScanner(source string, start ast.Position, depth, maxDepth int) *Scanner {
	return &Scanner{
		src:       []rune(source),
		pos:       start,
		startPos:  start,
		lineStart: true,
		depth:     depth,
		maxDepth:  maxDepth,
	}
}

// scanFrontmatter extracts the raw text between the opening and closing
// separator lines. A document that does not open with a separator has no
// frontmatter.
func (s *Scanner) scanFrontmatter() string {
	begin := s.save()
	s.skipSpaces()
	if !s.matchesLine(separator) {
		s.restore(begin)
		return ""
	}

	open := s.pos
	s.advanceN(len(separator))
	s.expect("\n")
	rawStart := s.current

	atLineStart := true
	for !s.isAtEnd() {
		if atLineStart && s.matchesLine(separator) {
			raw := string(s.src[rawStart:s.current])
			s.advanceN(len(separator))
			s.expect("\n")
			s.markStart()
			return raw
		}
		atLineStart = s.advance() == '\n'
	}

	s.errors = append(s.errors, &ScanError{Err: ErrIncomplete, Pos: open, Delimiter: separator})
	s.restore(begin)
	return ""
}

func (s *Scanner) scanBody() []ast.Token {
	for !s.isAtEnd() {
		if err := s.scanToken(); err != nil {
			s.errors = append(s.errors, err)
		}
	}
	s.flushText(s.current)
	return s.tokens
}

func (s *Scanner) scanToken() *ScanError {
	if s.lineStart {
		s.lineStart = false
		if handled, err := s.scanLineStart(); handled {
			return err
		}
	}

	r, _ := s.peek()
	switch r {
	case '!':
		if s.matches("![") {
			return s.scanImage()
		}
	case '@':
		if s.matches("@[") {
			return s.scanLinkCard()
		}
	case '^':
		if s.matches("^[") {
			return s.scanInlineFootnote()
		}
	case '[':
		if s.matches("[^") {
			return s.scanFootnote()
		}
	case '`':
		return s.scanCode()
	case '<':
		if s.matches(macroOpen) {
			return s.scanMacro()
		}
	case '\n':
		s.advance()
		s.lineStart = true
		return nil
	}

	s.advance()
	return nil
}

// scanLineStart recognises constructs that only exist at the start of a line.
// It reports whether it consumed anything.
func (s *Scanner) scanLineStart() (bool, *ScanError) {
	begin := s.save()
	s.skipSpaces()

	switch {
	case s.matches("https://") || s.matches("http://"):
		s.scanURL()
		return true, nil
	case s.matches(fence):
		s.scanFence()
		return true, nil
	}

	s.restore(begin)
	return false, nil
}

func (s *Scanner) scanURL() {
	open := s.save()
	for {
		r, ok := s.peek()
		if !ok || unicode.IsSpace(r) {
			break
		}
		s.advance()
	}
	s.emit(open, ast.URL{Value: string(s.src[open.index:s.current])})
}

// scanFence handles :::message, :::details and bare closing fences. Each
// colon beyond the base three raises the level by one.
func (s *Scanner) scanFence() {
	open := s.save()
	s.advanceN(len(fence))

	level := 0
	for s.expect(":") {
		level++
	}

	switch {
	case s.matchesKeyword(messageTag):
		s.advanceN(len(messageTag))
		typ := s.restOfLine()
		s.emit(open, ast.MessageBegin{Level: level, Type: typ})
	case s.matchesKeyword(detailsTag):
		s.advanceN(len(detailsTag))
		title := s.restOfLine()
		s.emit(open, ast.DetailsBegin{Level: level, Title: title})
	default:
		s.emit(open, ast.BlockEnd{Level: level})
	}
}

// restOfLine consumes up to and including the next newline and returns the
// trimmed text before it.
func (s *Scanner) restOfLine() string {
	begin := s.current
	for {
		r, ok := s.peek()
		if !ok || r == '\n' {
			break
		}
		s.advance()
	}
	text := strings.TrimSpace(string(s.src[begin:s.current]))
	if s.expect("\n") {
		s.lineStart = true
	}
	return text
}

func (s *Scanner) scanImage() *ScanError {
	open, alt, url, ok, err := s.scanBracketPair("![")
	if err != nil || !ok {
		return err
	}
	s.emit(open, ast.Image{Alt: alt, URL: url})
	return nil
}

func (s *Scanner) scanLinkCard() *ScanError {
	open, cardType, url, ok, err := s.scanBracketPair("@[")
	if err != nil || !ok {
		return err
	}
	s.emit(open, ast.LinkCard{CardType: cardType, URL: url})
	return nil
}

// scanBracketPair reads opener + "label](target)". ok is false when the label
// is not followed by "(", in which case the opener stays in the text buffer.
func (s *Scanner) scanBracketPair(opener string) (open cursor, label, target string, ok bool, err *ScanError) {
	open = s.save()
	s.advance()
	bracket := s.pos
	s.advance()

	labelStart := s.current
	if err := s.extractUntil("]", bracket); err != nil {
		return open, "", "", false, err
	}
	label = string(s.src[labelStart:s.current])

	if !s.matches("](") {
		s.restore(open)
		s.advanceN(len(opener))
		return open, "", "", false, nil
	}
	s.advance()
	paren := s.pos
	s.advance()

	targetStart := s.current
	if err := s.extractUntil(")", paren); err != nil {
		return open, "", "", false, err
	}
	target = string(s.src[targetStart:s.current])
	s.advance()
	return open, label, target, true, nil
}

func (s *Scanner) scanInlineFootnote() *ScanError {
	open := s.save()
	s.advance()
	bracket := s.pos
	s.advance()

	contentStart := s.current
	if err := s.extractUntil("]", bracket); err != nil {
		return err
	}
	content := string(s.src[contentStart:s.current])
	s.advance()

	s.emit(open, ast.InlineFootnote{Content: content})
	return nil
}

// scanFootnote handles [^id]. A definition ([^id]:) is left in the text buffer.
func (s *Scanner) scanFootnote() *ScanError {
	open := s.save()
	s.advanceN(2)

	idStart := s.current
	if err := s.extractUntil("]", open.pos); err != nil {
		return err
	}
	id := string(s.src[idStart:s.current])
	s.advance()

	if s.matches(":") {
		return nil
	}
	s.emit(open, ast.Footnote{ID: id})
	return nil
}

// scanCode skips an inline code span or a fenced code block. The content is
// never tokenized and stays in the text buffer.
func (s *Scanner) scanCode() *ScanError {
	open := s.pos
	delim := "`"
	if s.matches("```") {
		delim = "```"
	}
	s.advanceN(len(delim))
	if err := s.extractUntil(delim, open); err != nil {
		return err
	}
	s.advanceN(len(delim))
	return nil
}

// rawMacro is the YAML payload of a macro before scanning.
type rawMacro = ast.Macro[*string]

func (s *Scanner) scanMacro() *ScanError {
	open := s.save()
	s.advanceN(len(macroOpen))
	bodyPos := s.pos

	bodyStart := s.current
	if err := s.extractMacroBody(open.pos); err != nil {
		return err
	}
	body := string(s.src[bodyStart:s.current])
	s.advanceN(len(macroClose))

	raw, err := decodeMacro(body)
	if err != nil {
		return &ScanError{Err: ErrInvalidMacro, Pos: open.pos, Detail: err.Error()}
	}
	if s.depth+1 > s.maxDepth {
		return &ScanError{Err: ErrTooDeep, Pos: open.pos, Detail: fmt.Sprintf("max %d", s.maxDepth)}
	}

	zenn, zennOK := s.scanNested(raw.Zenn, bodyPos)
	qiita, qiitaOK := s.scanNested(raw.Qiita, bodyPos)
	if !zennOK || !qiitaOK {
		return &ScanError{Err: ErrInvalidMacro, Pos: open.pos}
	}

	s.emit(open, ast.MacroTokens{Macro: ast.Macro[[]ast.Token]{Zenn: zenn, Qiita: qiita}})
	return nil
}

// scanNested scans one platform's macro content with a fresh Scanner and
// merges its errors into s.
func (s *Scanner) scanNested(content *string, start ast.Position) ([]ast.Token, bool) {
	if content == nil {
		return nil, true
	}
	nested := newScanner(*content, start, s.depth+1, s.maxDepth)
	tokens := nested.scanBody()
	if len(nested.errors) > 0 {
		s.errors = append(s.errors, nested.errors...)
		return nil, false
	}
	return tokens, true
}

// decodeMacro parses the macro body as a mapping keyed by platform name.
// Keys are matched case-insensitively.
func decodeMacro(body string) (rawMacro, error) {
	var m rawMacro
	if strings.TrimSpace(body) == "" {
		return m, nil
	}

	var fields map[string]*string
	if err := yamlutil.Unmarshal([]byte(body), &fields); err != nil {
		return m, fmt.Errorf("%s", yamlutil.Message(err))
	}

	seen := make(map[ast.Platform]bool, len(fields))
	for key, value := range fields {
		platform, err := ast.ParsePlatform(key)
		if err != nil {
			return m, err
		}
		if seen[platform] {
			return m, fmt.Errorf("duplicate key for %s", platform)
		}
		seen[platform] = true
		if platform == ast.Qiita {
			m.Qiita = value
		} else {
			m.Zenn = value
		}
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Cursor primitives
// ---------------------------------------------------------------------------

// emit flushes the text before open and appends a token positioned at open.
func (s *Scanner) emit(open cursor, tt ast.TokenType) {
	s.flushText(open.index)
	s.tokens = append(s.tokens, ast.Token{Type: tt, Pos: open.pos})
	s.markStart()
}

// flushText appends src[start:end] as a Text token when it is not empty.
func (s *Scanner) flushText(end int) {
	if end > s.start {
		s.tokens = append(s.tokens, ast.Token{
			Type: ast.Text{Value: string(s.src[s.start:end])},
			Pos:  s.startPos,
		})
	}
	s.markStart()
}

func (s *Scanner) markStart() {
	s.start = s.current
	s.startPos = s.pos
}

func (s *Scanner) save() cursor {
	return cursor{index: s.current, pos: s.pos}
}

func (s *Scanner) restore(c cursor) {
	s.current = c.index
	s.pos = c.pos
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.src)
}

func (s *Scanner) peek() (rune, bool) {
	if s.isAtEnd() {
		return 0, false
	}
	return s.src[s.current], true
}

func (s *Scanner) advance() rune {
	r := s.src[s.current]
	s.current++
	if r == '\n' {
		s.pos.Row++
		s.pos.Col = 1
	} else {
		s.pos.Col++
	}
	return r
}

func (s *Scanner) advanceN(n int) {
	for i := 0; i < n && !s.isAtEnd(); i++ {
		s.advance()
	}
}

func (s *Scanner) matches(keyword string) bool {
	i := s.current
	for _, r := range keyword {
		if i >= len(s.src) || s.src[i] != r {
			return false
		}
		i++
	}
	return true
}

// matchesKeyword matches keyword followed by a space, a newline, or the end.
func (s *Scanner) matchesKeyword(keyword string) bool {
	if !s.matches(keyword) {
		return false
	}
	next := s.current + len([]rune(keyword))
	return next >= len(s.src) || s.src[next] == ' ' || s.src[next] == '\n' || s.src[next] == '\t'
}

// matchesLine matches a line consisting of exactly text.
func (s *Scanner) matchesLine(text string) bool {
	if !s.matches(text) {
		return false
	}
	next := s.current + len([]rune(text))
	return next >= len(s.src) || s.src[next] == '\n'
}

func (s *Scanner) expect(keyword string) bool {
	if !s.matches(keyword) {
		return false
	}
	s.advanceN(len([]rune(keyword)))
	return true
}

func (s *Scanner) skipSpaces() {
	for {
		r, ok := s.peek()
		if !ok || r != ' ' {
			return
		}
		s.advance()
	}
}

// extractMacroBody advances to the </macro> that closes the current macro,
// skipping over balanced inner macros.
func (s *Scanner) extractMacroBody(open ast.Position) *ScanError {
	begin := s.save()
	inner := 0
	for !s.isAtEnd() {
		switch {
		case s.matches(macroClose):
			if inner == 0 {
				return nil
			}
			inner--
			s.advanceN(len(macroClose))
			continue
		case s.matches(macroOpen):
			inner++
			s.advanceN(len(macroOpen))
			continue
		}
		s.advance()
	}
	s.restore(begin)
	return &ScanError{Err: ErrIncomplete, Pos: open, Delimiter: macroClose}
}

// extractUntil advances to the next occurrence of end. When end never occurs
// the cursor is left where it started and an Incomplete error positioned at
// open is returned.
func (s *Scanner) extractUntil(end string, open ast.Position) *ScanError {
	begin := s.save()
	for !s.isAtEnd() {
		if s.matches(end) {
			return nil
		}
		s.advance()
	}
	s.restore(begin)
	return &ScanError{Err: ErrIncomplete, Pos: open, Delimiter: end}
}
