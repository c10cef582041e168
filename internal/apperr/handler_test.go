package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorHandler(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHTTPErrorHandler_TypedError(t *testing.T) {
	t.Parallel()

	rec, body := render(t, ErrRevokedToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token_revoked", body["error_code"])
	assert.Equal(t, "Token is invalid or has been revoked", body["message"])
	assert.Equal(t, "Please get a new token", body["resolution"])
}

func TestHTTPErrorHandler_WrappedTypedError(t *testing.T) {
	t.Parallel()

	rec, body := render(t, echo.NewHTTPError(http.StatusUnauthorized).SetInternal(ErrInvalidToken))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", body["error_code"])
}

func TestHTTPErrorHandler_OpaqueInternalError(t *testing.T) {
	t.Parallel()

	rec, body := render(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server_error", body["error_code"])
	assert.NotContains(t, body["message"], "pq:")
}

func TestHTTPErrorHandler_RouteNotFound(t *testing.T) {
	t.Parallel()

	rec, body := render(t, echo.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", body["error_code"])
}

func TestErrorValues_HaveStableCodes(t *testing.T) {
	t.Parallel()

	all := []*Error{
		ErrInvalidToken, ErrRevokedToken, ErrAccessTokenRequired,
		ErrRefreshTokenRequired, ErrInsufficientPermission,
		ErrInvalidCredentials, ErrUserExists, ErrUserNotFound,
		ErrBookNotFound, ErrTagNotFound, ErrTagExists, ErrReviewNotFound,
		ErrServer,
	}

	seen := make(map[string]struct{})
	for _, e := range all {
		require.NotEmpty(t, e.Code)
		require.NotZero(t, e.Status)
		_, dup := seen[e.Code]
		require.False(t, dup, "duplicate error_code %q", e.Code)
		seen[e.Code] = struct{}{}
	}
}
