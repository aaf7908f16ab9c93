package logging

import "errors"

// ErrUnknownMode is returned by [New] for unsupported modes.
var ErrUnknownMode = errors.New("unknown log mode (want off, dev or prod)")
