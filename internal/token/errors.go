package token

import "errors"

// Error variables for token decoding. Every decode failure wraps
// ErrInvalidToken together with one of the more specific causes.
var (
	ErrInvalidToken  = errors.New("invalid filter token")
	ErrMalformedText = errors.New("token is not base64")
	ErrMalformedJSON = errors.New("token payload is not a JSON object")
	ErrSchema        = errors.New("token schema mismatch")
)
