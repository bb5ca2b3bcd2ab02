package assets

import "errors"

// Stylesheet lookup errors.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid style name")
	ErrInvalidBasePath  = errors.New("invalid assets directory")
	ErrAssetRead        = errors.New("reading stylesheet")
	// ErrPathTraversal is returned when a style file resolves outside the
	// styles directory, e.g. through a symlink.
	ErrPathTraversal = errors.New("style file outside assets directory")
)
