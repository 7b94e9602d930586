package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/scry-study/internal/api/shared"
	"github.com/phrazzld/scry-study/internal/catalog"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/service"
	"github.com/phrazzld/scry-study/internal/service/auth"
	"github.com/phrazzld/scry-study/internal/service/study"
	"github.com/phrazzld/scry-study/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, study.ErrSessionNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, study.ErrSessionNotFound),
		errors.Is(err, study.ErrUnknownDeck),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, study.ErrSessionFinished):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, study.ErrUnknownDirection),
		errors.Is(err, study.ErrInvalidFilters),
		errors.Is(err, study.ErrInvalidKind),
		errors.Is(err, catalog.ErrInvalidFilter),
		errors.Is(err, domain.ErrInvalidGrade),
		errors.Is(err, domain.ErrInvalidSettings),
		errors.Is(err, store.ErrInvalidEntity),
		isUserValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, study.ErrSessionNotOwned):
		return "You do not own this session"

	case errors.Is(err, study.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, study.ErrUnknownDeck):
		return "Deck not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, study.ErrSessionFinished):
		return "Session has no cards left"

	case errors.Is(err, study.ErrUnknownDirection):
		return "Direction not supported by this deck"

	case errors.Is(err, study.ErrInvalidFilters),
		errors.Is(err, catalog.ErrInvalidFilter):
		return "Invalid filters"

	case errors.Is(err, study.ErrInvalidKind):
		return "Invalid session kind"

	case errors.Is(err, domain.ErrInvalidGrade):
		return "Invalid grade"

	case errors.Is(err, domain.ErrInvalidSettings):
		return "Invalid settings"

	case isUserValidationError(err):
		// Domain messages name the rule, never the submitted value.
		return userValidationMessage(err)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

var userValidationErrors = []error{
	domain.ErrEmptyEmail,
	domain.ErrInvalidEmail,
	domain.ErrEmptyPassword,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
}

func isUserValidationError(err error) bool {
	for _, target := range userValidationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func userValidationMessage(err error) string {
	for _, target := range userValidationErrors {
		if errors.Is(err, target) {
			msg := target.Error()
			return strings.ToUpper(msg[:1]) + msg[1:]
		}
	}
	return "Validation error"
}

// SanitizeValidationError turns validator errors into a message naming the
// first offending field, without echoing the submitted value.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "too short or too small"
	case "max", "lte":
		return "too long or too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. Server errors
// are logged at error level with the redacted cause.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError {
		var svcErr *study.ServiceError
		if errors.As(err, &svcErr) {
			logger.FromContext(r.Context()).Debug("service error",
				slog.String("operation", svcErr.Operation))
		}
		if fallbackMsg != "" {
			msg = fallbackMsg
		}
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}
