package errors

import (
	"errors"
	"fmt"
)

// Common error types for the VOC portal
var (
	// Token errors
	ErrMalformedToken = errors.New("malformed token")

	// Session errors
	ErrNoSession       = errors.New("no valid session")
	ErrAuthFailed      = errors.New("authentication failed")
	ErrRequestInFlight = errors.New("request already in progress")
	ErrRateLimited     = errors.New("too many requests")

	// Remote API errors
	ErrRemoteAPI = errors.New("remote api error")

	// Store errors
	ErrUnknownStore = errors.New("unknown token store")

	// General errors
	ErrNotFound = errors.New("not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
