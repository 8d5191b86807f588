package assets

import (
	"fmt"
	"regexp"
)

// MaxAssetNameLength bounds style and template names.
const MaxAssetNameLength = 64

// Names map directly to file names under styles/ and templates/, so only
// one path segment without an extension is accepted.
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName checks that name is safe to use as a file name.
// Returns ErrInvalidAssetName for empty or overlong names, and for names
// containing separators, dots or other punctuation.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: %d chars, max %d", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	}
	if !assetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
