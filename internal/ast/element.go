package ast

import "fmt"

// Element is one node of the parsed document tree.
type Element interface {
	element()
}

// TextElement is verbatim text.
type TextElement struct {
	Value string
}

// URLElement is a bare URL on its own line.
type URLElement struct {
	Value string
}

// ImageElement is an image reference.
type ImageElement struct {
	Alt string
	URL string
}

// LinkCardElement is an embedded link card.
type LinkCardElement struct {
	CardType string
	URL      string
}

// InlineFootnoteElement is a footnote whose content is written inline.
type InlineFootnoteElement struct {
	Content string
}

// FootnoteElement is a reference to a footnote defined elsewhere.
type FootnoteElement struct {
	ID string
}

// MessageElement is a message box with a nested body.
type MessageElement struct {
	Level int
	Type  MessageType
	Body  []Element
}

// DetailsElement is a collapsible section with a nested body.
type DetailsElement struct {
	Level int
	Title string
	Body  []Element
}

// MacroElement holds the parsed element stream of each platform.
type MacroElement struct {
	Macro[[]Element]
}

func (TextElement) element()           {}
func (URLElement) element()            {}
func (ImageElement) element()          {}
func (LinkCardElement) element()       {}
func (InlineFootnoteElement) element() {}
func (FootnoteElement) element()       {}
func (MessageElement) element()        {}
func (DetailsElement) element()        {}
func (MacroElement) element()          {}

// UnknownElement panics for an element kind missing from a type switch.
func UnknownElement(e Element) {
	panic(fmt.Sprintf("ast: unhandled element type %T", e))
}
