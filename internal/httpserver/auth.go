package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyscope/studyscope/internal/apperr"
	"github.com/studyscope/studyscope/internal/logging"
	"github.com/studyscope/studyscope/internal/middleware"
	"github.com/studyscope/studyscope/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	var req service.SignupInput
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return errInvalidBody
	}
	if req.Email == "" || len(req.Password) < 8 {
		return &apperr.Error{
			Status:  http.StatusBadRequest,
			Code:    "invalid_body",
			Message: "email is required and password must be at least 8 characters",
		}
	}

	user, err := h.Svc.Signup(ctx, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Account created",
		"user":    user,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return errInvalidBody
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Login successful",
		"access_token":  res.AccessToken,
		"refresh_token": res.RefreshToken,
		"user": echo.Map{
			"email": res.User.Email,
			"uid":   res.User.UID.String(),
		},
	})
}

// Refresh runs behind the refresh-class guard.
func (h *AuthHTTP) Refresh(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return apperr.ErrInvalidToken
	}

	accessToken, err := h.Svc.Refresh(c.Request().Context(), claims)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": accessToken,
	})
}

// Logout runs behind the access-class guard and revokes the presented token.
func (h *AuthHTTP) Logout(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return apperr.ErrInvalidToken
	}

	if err := h.Svc.Revoke(c.Request().Context(), claims); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Logged out successfully",
	})
}

// UpdateUserRole runs behind the admin-only gate.
func (h *AuthHTTP) UpdateUserRole(c echo.Context) error {
	uid, err := uidParam(c, "uid")
	if err != nil {
		return err
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	user, err := h.Svc.UpdateUserRole(c.Request().Context(), uid, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Me runs behind the access guard, identity resolver and role gate.
func (h *AuthHTTP) Me(c echo.Context) error {
	user := middleware.UserFrom(c)
	if user == nil {
		return apperr.ErrUserNotFound
	}
	return c.JSON(http.StatusOK, user)
}
