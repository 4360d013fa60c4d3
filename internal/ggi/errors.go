package ggi

import "errors"

var (
	// ErrMalformedResponse means the service returned a document this
	// client cannot make sense of. It is never retried.
	ErrMalformedResponse = errors.New("malformed GGI response")
)
