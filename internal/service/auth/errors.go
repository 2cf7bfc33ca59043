package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates that login failed. Deliberately generic:
	// unknown email and wrong password produce the same error so responses
	// never reveal which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
