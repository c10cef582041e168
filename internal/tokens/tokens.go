// Package tokens issues and verifies the signed bearer tokens used by the
// auth middleware. Access and refresh tokens share one claims shape and one
// signing secret; the Refresh flag is what separates the two classes.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type UserClaims struct {
	Email   string `json:"email"`
	UserUID string `json:"userUid"`
	Role    string `json:"role,omitempty"`
}

type Claims struct {
	User    UserClaims `json:"user"`
	Refresh bool       `json:"refresh"`
	jwt.RegisteredClaims
}

func NewJTI() string { return uuid.NewString() }

// CreateToken signs a token carrying user under HS256. Every call mints a
// fresh JTI, so two tokens for identical claims are never equal.
func CreateToken(secret []byte, user UserClaims, ttl time.Duration, refresh bool) (string, error) {
	claims := Claims{
		User:    user,
		Refresh: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        NewJTI(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ClaimsFromToken verifies the signature and expiry of tokenStr. Malformed,
// tampered and expired tokens all collapse into ErrInvalidToken.
func ClaimsFromToken(tokenStr string, secret []byte) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
