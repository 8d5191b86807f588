package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-zeta/internal/ast"
)

// Sentinel errors for parse failures. Every ParseError wraps one of them.
var (
	ErrInvalidFrontMatter   = errors.New("invalid frontmatter")
	ErrTooManyTopics        = errors.New("too many topics")
	ErrInvalidMessageType   = errors.New("invalid message type")
	ErrInvalidNestingLevel  = errors.New("invalid nesting level")
	ErrCouldNotFindEndToken = errors.New("could not find end token")
	ErrUnexpectedToken      = errors.New("unexpected token")
	ErrInvalidMacro         = ast.ErrInvalidMacro
	ErrTooDeep              = ast.ErrTooDeep
)

// ParseError is one positioned parse diagnostic.
type ParseError struct {
	Err    error
	Pos    ast.Position
	Detail string
	Topics []string // set for ErrTooManyTopics
}

// Message describes the error without its position.
func (e *ParseError) Message() string {
	switch {
	case errors.Is(e.Err, ErrTooManyTopics):
		return fmt.Sprintf("%v: %d (max %d): %s",
			e.Err, len(e.Topics), ast.MaxTopics, strings.Join(e.Topics, ", "))
	case e.Detail != "":
		return fmt.Sprintf("%v: %s", e.Err, e.Detail)
	default:
		return e.Err.Error()
	}
}

func (e *ParseError) Error() string {
	return e.Pos.String() + ": " + e.Message()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Errors is the accumulated result of a failed parse, in discovery order.
type Errors []*ParseError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes every diagnostic to errors.Is and errors.As.
func (e Errors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}
