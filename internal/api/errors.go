package api

import (
	"errors"
	"net/http"

	"github.com/bcmenu/benglish-api/internal/api/shared"
	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/service/auth"
	"github.com/bcmenu/benglish-api/internal/service/progress"
	"github.com/bcmenu/benglish-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, auth.ErrAccountDisabled):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, progress.ErrEmptyBatch),
		errors.Is(err, progress.ErrInvalidSource),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrResetTokenExpired):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrAccountDisabled):
		return "Account is disabled"

	case errors.Is(err, auth.ErrResetTokenExpired):
		return "Password reset token is invalid or expired"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already in use"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already in use"

	case errors.Is(err, store.ErrCategoryNameExists):
		return "Category already exists"

	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case store.IsNotFoundError(err):
		return "Not found"

	case errors.Is(err, progress.ErrEmptyBatch):
		return "At least one item is required"

	case errors.Is(err, progress.ErrInvalidSource):
		return "Invalid source"

	case errors.Is(err, domain.ErrInvalidDate):
		return "Date must be formatted YYYY-MM-DD"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// RespondWithMappedError maps the error to a status code and safe message
// and writes the response, logging the underlying error.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
