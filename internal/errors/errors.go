package errors

import (
	"errors"
	"fmt"
)

var (
	// Request errors
	ErrMissingCode      = errors.New("authorization code is missing")
	ErrMalformedRequest = errors.New("malformed request body")

	// Identity provider errors
	ErrProviderRejected        = errors.New("identity provider rejected the token request")
	ErrProviderUnreachable     = errors.New("identity provider unreachable")
	ErrInvalidProviderResponse = errors.New("invalid identity provider response")
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
