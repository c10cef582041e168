package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/studyscope/studyscope/internal/apperr"
)

const DefaultPageSize = 20

var errInvalidBody = &apperr.Error{
	Status:  http.StatusBadRequest,
	Code:    "invalid_body",
	Message: "Request body is invalid",
}

var errInvalidUID = &apperr.Error{
	Status:  http.StatusBadRequest,
	Code:    "invalid_uid",
	Message: "Identifier must be a valid UUID",
}

func uidParam(c echo.Context, name string) (uuid.UUID, error) {
	uid, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errInvalidUID
	}
	return uid, nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func pagination(c echo.Context) (offset, limit int) {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), DefaultPageSize)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = DefaultPageSize
	}
	return (page - 1) * size, size
}
