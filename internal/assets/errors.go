package assets

import "errors"

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrLocaleNotFound   = errors.New("locale not found")
	ErrInvalidAssetName = errors.New("invalid asset name") // see ValidateAssetName
	ErrInvalidBasePath  = errors.New("invalid base path")  // asset directory missing or not a directory
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected") // resolved path escapes the base directory
)
