package assets

import "errors"

// Sentinel errors for asset operations. Not-found errors trigger the
// fallback from custom to embedded assets; the others are returned as is.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	ErrInvalidAssetName = errors.New("invalid asset name") // separators, dots or traversal
	ErrInvalidBasePath  = errors.New("invalid assets directory")
	ErrPathTraversal    = errors.New("asset path escapes the assets directory")

	ErrAssetRead      = errors.New("failed to read asset")
	ErrTemplateRender = errors.New("failed to render template")
)
