package scanner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-zeta/internal/ast"
)

// Sentinel errors for scan failures. Every ScanError wraps one of them.
var (
	ErrIncomplete   = errors.New("incomplete")
	ErrInvalidMacro = ast.ErrInvalidMacro
	ErrTooDeep      = ast.ErrTooDeep
)

// ScanError is one positioned scan diagnostic.
type ScanError struct {
	Err       error        // ErrIncomplete, ErrInvalidMacro or ErrTooDeep
	Pos       ast.Position // where the offending construct opens
	Delimiter string       // missing delimiter, set for ErrIncomplete
	Detail    string       // optional decoder or limit detail
}

// Message describes the error without its position.
func (e *ScanError) Message() string {
	switch {
	case errors.Is(e.Err, ErrIncomplete):
		return fmt.Sprintf("%v: missing closing %q", e.Err, e.Delimiter)
	case e.Detail != "":
		return fmt.Sprintf("%v: %s", e.Err, e.Detail)
	default:
		return e.Err.Error()
	}
}

func (e *ScanError) Error() string {
	return e.Pos.String() + ": " + e.Message()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Errors is the accumulated result of a failed scan, in discovery order.
type Errors []*ScanError

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
