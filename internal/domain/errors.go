package domain

import "errors"

var (
	// ErrCatalogLoad is logged when the recipe source is missing or unparsable.
	// The catalog degrades to empty; this error never reaches query callers.
	ErrCatalogLoad = errors.New("catalog load failed")

	// ErrInvalidMode is returned when a caller asks for an unknown matching mode
	ErrInvalidMode = errors.New("invalid match mode")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
