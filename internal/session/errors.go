package session

import "errors"

// Error variables for session operations.
var (
	ErrRestoreFailed   = errors.New("restore failed")
	ErrChipNotFound    = errors.New("no active filter with that id")
	ErrSnapshotInvalid = errors.New("invalid session file")
)
