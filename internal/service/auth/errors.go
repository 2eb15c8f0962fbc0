package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a token fails signature or
	// structural validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrEmptySecret is returned when the service is constructed without
	// a signing secret.
	ErrEmptySecret = errors.New("jwt secret cannot be empty")
)
