package auth

import "errors"

// Authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed, has a bad signature or
	// carries unusable claims.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrPasswordMismatch indicates the plaintext does not match the stored digest.
	ErrPasswordMismatch = errors.New("password does not match")
)
