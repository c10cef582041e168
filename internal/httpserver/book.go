package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/studyscope/studyscope/internal/apperr"
	"github.com/studyscope/studyscope/internal/logging"
	"github.com/studyscope/studyscope/internal/middleware"
	"github.com/studyscope/studyscope/internal/service"
)

type BookHTTP struct {
	Svc *service.BookService
}

func (h *BookHTTP) GetBooks(c echo.Context) error {
	offset, limit := pagination(c)
	books, err := h.Svc.GetBooks(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHTTP) GetBook(c echo.Context) error {
	uid, err := uidParam(c, "uid")
	if err != nil {
		return err
	}

	book, err := h.Svc.GetBook(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) GetUserBooks(c echo.Context) error {
	uid, err := uidParam(c, "uid")
	if err != nil {
		return err
	}

	books, err := h.Svc.GetUserBooks(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHTTP) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book_create")

	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return apperr.ErrInvalidToken
	}
	userUID, err := uuid.Parse(claims.User.UserUID)
	if err != nil {
		return apperr.ErrInvalidToken
	}

	var req service.BookCreateInput
	if err := c.Bind(&req); err != nil {
		l.Warn("create_book_error", "status", 400, "error", err)
		return errInvalidBody
	}

	book, err := h.Svc.CreateBook(ctx, req, userUID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *BookHTTP) UpdateBook(c echo.Context) error {
	uid, err := uidParam(c, "uid")
	if err != nil {
		return err
	}

	var req service.BookUpdateInput
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	book, err := h.Svc.UpdateBook(c.Request().Context(), uid, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) DeleteBook(c echo.Context) error {
	uid, err := uidParam(c, "uid")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteBook(c.Request().Context(), uid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookHTTP) SearchBooks(c echo.Context) error {
	offset, limit := pagination(c)
	books, err := h.Svc.SearchBooks(c.Request().Context(), c.QueryParam("q"), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}
