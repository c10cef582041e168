// Package apperr defines the typed, machine-readable errors the API exposes.
// Every rejection carries a stable error_code; internal faults collapse into
// one opaque server_error so that no detail leaks to clients.
package apperr

import "net/http"

type Error struct {
	Status     int    `json:"-"`
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	Resolution string `json:"resolution,omitempty"`
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

var (
	ErrInvalidToken = &Error{
		Status:     http.StatusUnauthorized,
		Code:       "invalid_token",
		Message:    "Token is invalid or expired",
		Resolution: "Please get a new token",
	}

	ErrRevokedToken = &Error{
		Status:     http.StatusUnauthorized,
		Code:       "token_revoked",
		Message:    "Token is invalid or has been revoked",
		Resolution: "Please get a new token",
	}

	ErrAccessTokenRequired = &Error{
		Status:     http.StatusUnauthorized,
		Code:       "access_token_required",
		Message:    "Please provide a valid access token",
		Resolution: "Please get an access token",
	}

	ErrRefreshTokenRequired = &Error{
		Status:     http.StatusForbidden,
		Code:       "refresh_token_required",
		Message:    "Please provide a valid refresh token",
		Resolution: "Please get a refresh token",
	}

	ErrInsufficientPermission = &Error{
		Status:  http.StatusUnauthorized,
		Code:    "insufficient_permissions",
		Message: "You do not have enough permissions to perform this action",
	}

	ErrInvalidCredentials = &Error{
		Status:  http.StatusBadRequest,
		Code:    "invalid_email_or_password",
		Message: "Invalid email or password",
	}

	ErrUserExists = &Error{
		Status:  http.StatusForbidden,
		Code:    "user_exists",
		Message: "User with email already exists",
	}

	ErrUserNotFound = &Error{
		Status:  http.StatusNotFound,
		Code:    "user_not_found",
		Message: "User not found",
	}

	ErrBookNotFound = &Error{
		Status:  http.StatusNotFound,
		Code:    "book_not_found",
		Message: "Book not found",
	}

	ErrTagNotFound = &Error{
		Status:  http.StatusNotFound,
		Code:    "tag_not_found",
		Message: "Tag not found",
	}

	ErrTagExists = &Error{
		Status:  http.StatusForbidden,
		Code:    "tag_exists",
		Message: "Tag already exists",
	}

	ErrReviewNotFound = &Error{
		Status:  http.StatusNotFound,
		Code:    "review_not_found",
		Message: "Review not found",
	}

	ErrServer = &Error{
		Status:  http.StatusInternalServerError,
		Code:    "server_error",
		Message: "Oops! Something went wrong",
	}
)
