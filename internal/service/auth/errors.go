package auth

import "errors"

// Token errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrWrongTokenType indicates a refresh token was presented where an
	// access token was expected, or the reverse.
	ErrWrongTokenType = errors.New("wrong token type")

	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrExpiredRefreshToken = errors.New("refresh token has expired")
)

// Authentication and authorization errors
var (
	// ErrInvalidCredentials is returned by Login for an unknown username or a
	// wrong password; both cases share this error.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAccessDenied is returned when a user lacks the required priority.
	ErrAccessDenied = errors.New("access denied: insufficient priority")
)
