package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/studyscope/studyscope/internal/apperr"
	"github.com/studyscope/studyscope/internal/blocklist"
	"github.com/studyscope/studyscope/internal/logging"
	"github.com/studyscope/studyscope/internal/tokens"
)

// TokenClass selects which kind of token an endpoint accepts.
type TokenClass int

const (
	AccessToken TokenClass = iota
	RefreshToken
)

const claimsContextKey = "token_claims"

type TokenGuard struct {
	Secret    []byte
	Blocklist blocklist.Store
}

func NewTokenGuard(secret []byte, store blocklist.Store) *TokenGuard {
	return &TokenGuard{Secret: secret, Blocklist: store}
}

// Require authenticates the request for the given token class:
// extract bearer credential, verify signature and expiry, check the
// revocation blocklist, then enforce the class. The decoded claims are
// placed in the echo context only after every step passes.
//
// A blocklist failure rejects the request: an unreachable store cannot
// confirm a token was never revoked.
func (g *TokenGuard) Require(class TokenClass) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request())
			if !ok {
				return apperr.ErrInvalidToken
			}

			claims, err := tokens.ClaimsFromToken(raw, g.Secret)
			if err != nil {
				return apperr.ErrInvalidToken
			}

			ctx := c.Request().Context()
			revoked, err := g.Blocklist.Contains(ctx, claims.ID)
			if err != nil {
				logging.FromContext(ctx).Error("blocklist lookup failed", "error", err)
				return apperr.ErrServer
			}
			if revoked {
				return apperr.ErrRevokedToken
			}

			switch class {
			case AccessToken:
				if claims.Refresh {
					return apperr.ErrAccessTokenRequired
				}
			case RefreshToken:
				if !claims.Refresh {
					return apperr.ErrRefreshTokenRequired
				}
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the verified claims a TokenGuard stored for this
// request, or nil when the request never passed a guard.
func ClaimsFrom(c echo.Context) *tokens.Claims {
	claims, _ := c.Get(claimsContextKey).(*tokens.Claims)
	return claims
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
