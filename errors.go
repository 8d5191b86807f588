package zeta

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-zeta/internal/ast"
	"github.com/alnah/go-zeta/internal/parser"
	"github.com/alnah/go-zeta/internal/scanner"
)

// Sentinel errors for library operations.
var (
	ErrEmptySource = errors.New("source cannot be empty")
	ErrSyntax      = errors.New("syntax error")

	// Scan errors.
	ErrIncomplete = scanner.ErrIncomplete

	// Parse errors.
	ErrInvalidFrontMatter   = parser.ErrInvalidFrontMatter
	ErrTooManyTopics        = parser.ErrTooManyTopics
	ErrInvalidMessageType   = parser.ErrInvalidMessageType
	ErrInvalidNestingLevel  = parser.ErrInvalidNestingLevel
	ErrCouldNotFindEndToken = parser.ErrCouldNotFindEndToken
	ErrUnexpectedToken      = parser.ErrUnexpectedToken

	// Raised by both stages.
	ErrInvalidMacro = ast.ErrInvalidMacro
	ErrTooDeep      = ast.ErrTooDeep
)

// Stage names the pipeline step that reported a diagnostic.
type Stage string

const (
	StageScan  Stage = "scan"
	StageParse Stage = "parse"
)

// Diagnostic is one positioned problem found in a source document.
type Diagnostic struct {
	Stage   Stage
	Pos     ast.Position
	Err     error  // the stage error; unwraps to a stage sentinel
	Message string // description without the position
}

func (d Diagnostic) Error() string {
	return d.Pos.String() + ": " + d.Message
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// BuildError reports every diagnostic of a failed build. It matches
// ErrSyntax and every sentinel carried by its diagnostics.
type BuildError struct {
	Diagnostics []Diagnostic
}

func (e *BuildError) Error() string {
	if len(e.Diagnostics) == 1 {
		return fmt.Sprintf("%v: %v", ErrSyntax, e.Diagnostics[0])
	}
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.Error()
	}
	return fmt.Sprintf("%v: %d problems:\n%s", ErrSyntax, len(e.Diagnostics), strings.Join(msgs, "\n"))
}

func (e *BuildError) Unwrap() []error {
	errs := make([]error, 0, len(e.Diagnostics)+1)
	errs = append(errs, ErrSyntax)
	for _, d := range e.Diagnostics {
		errs = append(errs, d)
	}
	return errs
}

func scanDiagnostics(err error) []Diagnostic {
	var errs scanner.Errors
	if !errors.As(err, &errs) {
		return []Diagnostic{{Stage: StageScan, Pos: ast.StartPosition, Err: err, Message: err.Error()}}
	}
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = Diagnostic{Stage: StageScan, Pos: e.Pos, Err: e, Message: e.Message()}
	}
	return out
}

func parseDiagnostics(err error) []Diagnostic {
	var errs parser.Errors
	if !errors.As(err, &errs) {
		return []Diagnostic{{Stage: StageParse, Pos: ast.StartPosition, Err: err, Message: err.Error()}}
	}
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = Diagnostic{Stage: StageParse, Pos: e.Pos, Err: e, Message: e.Message()}
	}
	return out
}
