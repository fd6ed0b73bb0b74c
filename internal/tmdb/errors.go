package tmdb

import (
	"errors"
	"fmt"
)

// ErrUnauthorized marks a rejected API key.
var ErrUnauthorized = errors.New("invalid TMDB API key")

// ErrNoData marks a 200 response with an empty body object.
var ErrNoData = errors.New("no movie data")

// AuthError is returned when TMDB answers 401 for a movie request.
type AuthError struct {
	MovieID string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("movie %s: %v", e.MovieID, ErrUnauthorized)
}

func (e *AuthError) Unwrap() error { return ErrUnauthorized }

// StatusError is returned for any other non-200 response.
type StatusError struct {
	MovieID    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("could not fetch data for movie ID %s (status %d)", e.MovieID, e.StatusCode)
}

// IsStatus reports whether err is a StatusError and returns its code.
func IsStatus(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

// NetworkError wraps timeouts, DNS failures and connection resets.
type NetworkError struct {
	MovieID string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error for movie ID %s: %v", e.MovieID, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError is returned when a 200 body is not valid movie JSON.
type DecodeError struct {
	MovieID string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response body for movie ID %s: %v", e.MovieID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNetwork reports whether err came from the transport.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
