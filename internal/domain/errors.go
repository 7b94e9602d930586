package domain

import "errors"

// Common validation errors
var (
	ErrInvalidGrade    = errors.New("invalid grade")
	ErrInvalidStage    = errors.New("invalid learning stage")
	ErrInvalidSettings = errors.New("invalid study settings")

	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)
