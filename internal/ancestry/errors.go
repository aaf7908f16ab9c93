package ancestry

import "errors"

// ErrUnknownSlot is returned by [ParseSlot] for names that address no node.
var ErrUnknownSlot = errors.New("unknown tree slot")
