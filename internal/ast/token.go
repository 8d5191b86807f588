package ast

import "fmt"

// Token is one lexical unit produced by the scanner.
type Token struct {
	Type TokenType
	Pos  Position
}

// TokenType is the sealed set of token kinds.
type TokenType interface {
	tokenType()
}

// Text is a run of source text with no recognised construct in it.
// Code spans and footnote definitions are carried verbatim inside Text.
type Text struct {
	Value string
}

// URL is a bare http(s) URL standing at the start of a line.
type URL struct {
	Value string
}

// Image is ![Alt](URL).
type Image struct {
	Alt string
	URL string
}

// LinkCard is @[CardType](URL).
type LinkCard struct {
	CardType string
	URL      string
}

// InlineFootnote is ^[Content].
type InlineFootnote struct {
	Content string
}

// Footnote is a footnote reference [^ID].
type Footnote struct {
	ID string
}

// MessageBegin opens a :::message block. Level is the number of colons
// beyond the base three.
type MessageBegin struct {
	Level int
	Type  string
}

// DetailsBegin opens a :::details block.
type DetailsBegin struct {
	Level int
	Title string
}

// BlockEnd is a bare closing fence for a message or details block.
type BlockEnd struct {
	Level int
}

// MacroTokens holds the independently scanned token stream of each platform.
type MacroTokens struct {
	Macro[[]Token]
}

func (Text) tokenType()           {}
func (URL) tokenType()            {}
func (Image) tokenType()          {}
func (LinkCard) tokenType()       {}
func (InlineFootnote) tokenType() {}
func (Footnote) tokenType()       {}
func (MessageBegin) tokenType()   {}
func (DetailsBegin) tokenType()   {}
func (BlockEnd) tokenType()       {}
func (MacroTokens) tokenType()    {}

// UnknownToken panics for a token kind missing from a type switch.
func UnknownToken(t TokenType) {
	panic(fmt.Sprintf("ast: unhandled token type %T", t))
}
