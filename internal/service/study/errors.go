package study

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound indicates the session id is unknown or has expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionNotOwned indicates the session belongs to another user.
	ErrSessionNotOwned = errors.New("session owned by another user")

	// ErrSessionFinished indicates there is no card left to answer.
	ErrSessionFinished = errors.New("session finished")

	// ErrUnknownDeck indicates no deck is registered under the requested name.
	ErrUnknownDeck = errors.New("unknown deck")

	// ErrUnknownDirection indicates the deck does not support the requested direction.
	ErrUnknownDirection = errors.New("unknown direction")

	// ErrInvalidFilters indicates the filters could not be parsed for the deck.
	ErrInvalidFilters = errors.New("invalid filters")

	// ErrInvalidKind indicates an unsupported session kind.
	ErrInvalidKind = errors.New("invalid session kind")
)

// ServiceError wraps unexpected failures with the operation that hit them.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "start_session", "answer")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}
