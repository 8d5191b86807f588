package main

import (
	"errors"
	"os"

	"github.com/alnah/go-zeta"
	"github.com/alnah/go-zeta/internal/articles"
	"github.com/alnah/go-zeta/internal/assets"
	"github.com/alnah/go-zeta/internal/ast"
	"github.com/alnah/go-zeta/internal/config"
	"github.com/alnah/go-zeta/internal/gitremote"
)

// Exit codes for zeta CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitSyntax  = 4 // Source article has diagnostics
)

// Sentinel errors for CLI operations.
var (
	ErrMissingArgument = errors.New("missing argument")
	ErrExtraArgument   = errors.New("unexpected argument")
	ErrProjectExists   = errors.New("project already initialised")
	ErrNotTargeted     = errors.New("article does not compile for platform")
	ErrInvalidType     = errors.New("invalid article type")
	ErrNpm             = errors.New("npm setup failed")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Source diagnostics (exit 4)
	if errors.Is(err, zeta.ErrSyntax) ||
		errors.Is(err, zeta.ErrEmptySource) {
		return ExitSyntax
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, articles.ErrArticleNotFound) ||
		errors.Is(err, articles.ErrArticleExists) ||
		errors.Is(err, articles.ErrPublishedMetadata) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, ErrProjectExists) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidRepo) ||
		errors.Is(err, config.ErrInvalidDir) ||
		errors.Is(err, config.ErrInvalidPrefix) ||
		errors.Is(err, config.ErrDuplicateOutputs) ||
		errors.Is(err, articles.ErrInvalidSlug) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrTemplateRender) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, ast.ErrUnknownPlatform) ||
		errors.Is(err, zeta.ErrTooManyTopics) ||
		errors.Is(err, gitremote.ErrNoRepository) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrExtraArgument) ||
		errors.Is(err, ErrNotTargeted) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
