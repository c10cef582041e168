package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studyscope/studyscope/internal/apperr"
	"github.com/studyscope/studyscope/internal/blocklist"
	"github.com/studyscope/studyscope/internal/middleware"
	"github.com/studyscope/studyscope/internal/models"
	"github.com/studyscope/studyscope/internal/repo"
	"github.com/studyscope/studyscope/internal/service"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	Repo  *repo.GormRepo
	Store *blocklist.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.Tag{}, &models.Review{}))

	gormRepo := &repo.GormRepo{DB: db}
	store := blocklist.NewMemoryStore()

	authSvc := &service.AuthService{
		Repo:       gormRepo,
		Blocklist:  store,
		Secret:     testSecret,
		AccessTTL:  time.Hour,
		RefreshTTL: 48 * time.Hour,
	}

	e := echo.New()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler

	Register(e, &Deps{
		Auth:     &AuthHTTP{Svc: authSvc},
		Books:    &BookHTTP{Svc: &service.BookService{Repo: gormRepo}},
		Tags:     &TagHTTP{Svc: &service.TagService{Repo: gormRepo}},
		Reviews:  &ReviewHTTP{Svc: &service.ReviewService{Repo: gormRepo}},
		Guard:    middleware.NewTokenGuard(testSecret, store),
		Resolver: &middleware.IdentityResolver{Repo: gormRepo},
	})

	return &testEnv{T: t, E: e, Repo: gormRepo, Store: store}
}

func (env *testEnv) do(method, path string, payload any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) decode(rec *httptest.ResponseRecorder) map[string]any {
	env.T.Helper()

	var body map[string]any
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (env *testEnv) signupAndLogin(email, password string) (access, refresh string) {
	env.T.Helper()

	rec := env.do("POST", "/api/v1/auth/signup", map[string]string{
		"username": email,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(env.T, 201, rec.Code, rec.Body.String())

	rec = env.do("POST", "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(env.T, 200, rec.Code, rec.Body.String())

	body := env.decode(rec)
	access, _ = body["access_token"].(string)
	refresh, _ = body["refresh_token"].(string)
	require.NotEmpty(env.T, access)
	require.NotEmpty(env.T, refresh)
	return access, refresh
}

func (env *testEnv) userUID(email string) string {
	env.T.Helper()

	var user models.User
	require.NoError(env.T, env.Repo.DB.Where("email = ?", email).First(&user).Error)
	return user.UID.String()
}

func (env *testEnv) promoteToAdmin(email string) {
	env.T.Helper()

	require.NoError(env.T, env.Repo.DB.
		Model(&models.User{}).
		Where("email = ?", email).
		Update("role", "admin").Error)
}
