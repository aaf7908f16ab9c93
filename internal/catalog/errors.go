package catalog

import "errors"

// Error variables for catalog loading and lookups.
var (
	ErrCatalogRead      = errors.New("cannot read catalog file")
	ErrCatalogInvalid   = errors.New("invalid catalog")
	ErrUnknownFactor    = errors.New("unknown factor")
	ErrUnknownCharacter = errors.New("unknown character")
)
