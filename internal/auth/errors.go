package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned when the client id or secret is empty.
	ErrMissingCredentials = errors.New("missing client id or client secret")

	// ErrTokenExpired is returned when a freshly issued token is already
	// expired according to the local clock.
	ErrTokenExpired = errors.New("issued token already expired")
)

// AuthenticationError reports a failure to obtain a bearer token.
// StatusCode is the token endpoint's HTTP status, or 0 when no response
// was received.
type AuthenticationError struct {
	StatusCode int
	Err        error
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("could not authenticate client (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("could not authenticate client: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}
