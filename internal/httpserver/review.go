package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyscope/studyscope/internal/apperr"
	"github.com/studyscope/studyscope/internal/middleware"
	"github.com/studyscope/studyscope/internal/service"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) AddReviewToBook(c echo.Context) error {
	uid, err := uidParam(c, "uid")
	if err != nil {
		return err
	}

	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return apperr.ErrInvalidToken
	}

	var req service.ReviewCreateInput
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	review, err := h.Svc.AddReviewToBook(c.Request().Context(), claims.User.Email, uid, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHTTP) GetReview(c echo.Context) error {
	uid, err := uidParam(c, "uid")
	if err != nil {
		return err
	}

	review, err := h.Svc.GetReview(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// DeleteReview requires a resolved identity for the ownership check.
func (h *ReviewHTTP) DeleteReview(c echo.Context) error {
	uid, err := uidParam(c, "uid")
	if err != nil {
		return err
	}

	user := middleware.UserFrom(c)
	if user == nil {
		return apperr.ErrUserNotFound
	}

	if err := h.Svc.DeleteReview(c.Request().Context(), uid, user); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
