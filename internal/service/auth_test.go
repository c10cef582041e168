package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studyscope/studyscope/internal/apperr"
	"github.com/studyscope/studyscope/internal/blocklist"
	"github.com/studyscope/studyscope/internal/models"
	"github.com/studyscope/studyscope/internal/repo"
	"github.com/studyscope/studyscope/internal/tokens"
)

func initTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.Tag{}, &models.Review{}))
	return &repo.GormRepo{DB: db}
}

func newTestAuthService(t *testing.T) (*AuthService, *blocklist.MemoryStore) {
	t.Helper()

	store := blocklist.NewMemoryStore()
	return &AuthService{
		Repo:       initTestRepo(t),
		Blocklist:  store,
		Secret:     []byte("test-jwt-secret"),
		AccessTTL:  time.Hour,
		RefreshTTL: 48 * time.Hour,
	}, store
}

func signupInput() SignupInput {
	return SignupInput{
		Username:  "jane",
		Email:     "jane@x.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  "s3cret-password",
	}
}

func TestAuthService_Signup(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "jane@x.com", user.Email)
	assert.Equal(t, "user", user.Role)
	assert.NotEmpty(t, user.UID)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "s3cret-password", user.PasswordHash)
	assert.False(t, user.IsVerified)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	in := signupInput()
	in.Username = "other"
	user, err := svc.Signup(ctx, in)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperr.ErrUserExists)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	res, err := svc.Login(ctx, "jane@x.com", "s3cret-password")
	require.NoError(t, err)
	require.NotNil(t, res)

	accessClaims, err := tokens.ClaimsFromToken(res.AccessToken, svc.Secret)
	require.NoError(t, err)
	assert.False(t, accessClaims.Refresh)
	assert.Equal(t, "jane@x.com", accessClaims.User.Email)
	assert.Equal(t, "user", accessClaims.User.Role)
	assert.Equal(t, res.User.UID.String(), accessClaims.User.UserUID)

	refreshClaims, err := tokens.ClaimsFromToken(res.RefreshToken, svc.Secret)
	require.NoError(t, err)
	assert.True(t, refreshClaims.Refresh)
	assert.Equal(t, "jane@x.com", refreshClaims.User.Email)

	assert.NotEqual(t, accessClaims.ID, refreshClaims.ID)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "jane@x.com", password: "wrong"},
		{name: "unknown email", email: "nobody@x.com", password: "s3cret-password"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := svc.Login(ctx, tt.email, tt.password)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)
	res, err := svc.Login(ctx, "jane@x.com", "s3cret-password")
	require.NoError(t, err)

	refreshClaims, err := tokens.ClaimsFromToken(res.RefreshToken, svc.Secret)
	require.NoError(t, err)

	accessToken, err := svc.Refresh(ctx, refreshClaims)
	require.NoError(t, err)

	claims, err := tokens.ClaimsFromToken(accessToken, svc.Secret)
	require.NoError(t, err)
	assert.False(t, claims.Refresh)
	assert.Equal(t, refreshClaims.User.Email, claims.User.Email)
	assert.NotEqual(t, refreshClaims.ID, claims.ID)
}

func TestAuthService_Refresh_ExpiredClaims(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	// Claims that were valid when the guard verified them but expired
	// before the service got to re-issue.
	stale := &tokens.Claims{
		User:    tokens.UserClaims{Email: "jane@x.com", UserUID: "u1"},
		Refresh: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokens.NewJTI(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}

	accessToken, err := svc.Refresh(ctx, stale)
	assert.Empty(t, accessToken)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestAuthService_Revoke(t *testing.T) {
	t.Parallel()

	svc, store := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)
	res, err := svc.Login(ctx, "jane@x.com", "s3cret-password")
	require.NoError(t, err)

	claims, err := tokens.ClaimsFromToken(res.AccessToken, svc.Secret)
	require.NoError(t, err)

	revoked, err := store.Contains(ctx, claims.ID)
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, svc.Revoke(ctx, claims))

	// Revocation holds however often it is rechecked.
	for i := 0; i < 3; i++ {
		revoked, err = store.Contains(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)
	}
}

func TestAuthService_UpdateUserRole(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, SignupInput{
		Username: "jane",
		Email:    "jane@x.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	require.Equal(t, "user", user.Role)

	updated, err := svc.UpdateUserRole(ctx, user.UID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)

	stored, err := svc.Repo.GetUserByUID(ctx, user.UID)
	require.NoError(t, err)
	assert.Equal(t, "admin", stored.Role)
}

func TestAuthService_UpdateUserRole_Rejections(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, SignupInput{
		Username: "jane",
		Email:    "jane@x.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	_, err = svc.UpdateUserRole(ctx, user.UID, "superuser")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid_role", appErr.Code)

	_, err = svc.UpdateUserRole(ctx, uuid.New(), "admin")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}
