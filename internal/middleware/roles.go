package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/studyscope/studyscope/internal/apperr"
	"github.com/studyscope/studyscope/internal/logging"
	"github.com/studyscope/studyscope/internal/models"
	"github.com/studyscope/studyscope/internal/repo"
)

const userContextKey = "current_user"

// IdentityResolver turns verified claims into the persisted user record.
type IdentityResolver struct {
	Repo *repo.GormRepo
}

// CurrentUser loads the user referenced by the token's email claim and
// stores it in the echo context. Must run after a TokenGuard.
func (r *IdentityResolver) CurrentUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := ClaimsFrom(c)
		if claims == nil {
			return apperr.ErrInvalidToken
		}

		ctx := c.Request().Context()
		user, err := r.Repo.GetUserByEmail(ctx, claims.User.Email)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return apperr.ErrUserNotFound
			}
			logging.FromContext(ctx).Error("user lookup failed", "error", err)
			return apperr.ErrServer
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// RequireRole gates an endpoint to a flat allow-list of role names.
// Must run after CurrentUser. No hierarchy: a role not listed is denied,
// admin included.
func RequireRole(allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFrom(c)
			if user == nil {
				return apperr.ErrInsufficientPermission
			}
			for _, role := range allowed {
				if user.Role == role {
					return next(c)
				}
			}
			return apperr.ErrInsufficientPermission
		}
	}
}

// UserFrom returns the user CurrentUser resolved for this request, or nil.
func UserFrom(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
