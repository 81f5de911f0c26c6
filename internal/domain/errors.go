package domain

import "errors"

var (
	// ErrValidation marks caller-supplied input that failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a lookup that matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrMalformedEvent marks an inbound webhook body that could not be
	// decoded into an order event.
	ErrMalformedEvent = errors.New("malformed order event")
)
