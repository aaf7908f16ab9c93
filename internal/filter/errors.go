package filter

import "errors"

// Error variables for filter operations.
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownColor    = errors.New("unknown color")
	ErrUnknownScalar   = errors.New("unknown scalar")
	ErrEntryNotFound   = errors.New("filter entry not found")
	ErrLevelOutOfRange = errors.New("level must be 1-9")
	ErrFactorTooLarge  = errors.New("factor id too large")
	ErrInvalidSnapshot = errors.New("invalid session snapshot")
)
