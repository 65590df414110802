package spotify

import "errors"

// ErrMissingQuery is wrapped by the ValidationError returned for a nil query.
var ErrMissingQuery = errors.New("a query is required")

// ValidationError reports a request that cannot be built from its arguments.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
