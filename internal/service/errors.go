package service

import "errors"

// Error kinds surfaced to transports. Wrap with fmt.Errorf("%w: ...") and
// test with errors.Is; the API maps them to 400/404.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)
