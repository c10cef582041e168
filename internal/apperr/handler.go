package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyscope/studyscope/internal/logging"
)

// HTTPErrorHandler renders *apperr.Error values as their structured JSON
// payload and downgrades everything else to server_error (or the matching
// echo built-in for routing-level 404/405).
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		_ = c.JSON(appErr.Status, appErr)
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Code {
		case http.StatusNotFound:
			_ = c.JSON(http.StatusNotFound, &Error{Code: "not_found", Message: "Resource not found"})
		case http.StatusMethodNotAllowed:
			_ = c.JSON(http.StatusMethodNotAllowed, &Error{Code: "method_not_allowed", Message: "Method not allowed"})
		default:
			logging.FromContext(c.Request().Context()).Error("unexpected http error", "status", httpErr.Code, "error", err)
			_ = c.JSON(ErrServer.Status, ErrServer)
		}
		return
	}

	logging.FromContext(c.Request().Context()).Error("unhandled error", "error", err)
	_ = c.JSON(ErrServer.Status, ErrServer)
}
