package service

import "errors"

// Common service errors. The API layer maps them to HTTP status codes.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password,
	// so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
