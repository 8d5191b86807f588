package ast

import "errors"

// Errors raised by more than one pipeline stage.
var (
	ErrInvalidMacro = errors.New("invalid macro")
	ErrTooDeep      = errors.New("nesting too deep")
)
