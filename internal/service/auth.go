package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studyscope/studyscope/internal/apperr"
	"github.com/studyscope/studyscope/internal/blocklist"
	"github.com/studyscope/studyscope/internal/events"
	"github.com/studyscope/studyscope/internal/hash"
	"github.com/studyscope/studyscope/internal/logging"
	"github.com/studyscope/studyscope/internal/models"
	"github.com/studyscope/studyscope/internal/repo"
	"github.com/studyscope/studyscope/internal/tokens"
)

type AuthService struct {
	Repo       *repo.GormRepo
	Blocklist  blocklist.Store
	Producer   *events.Producer
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type SignupInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("signup failed", "reason", "cannot hash password", "error", err)
		return nil, apperr.ErrServer
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: pwHash,
		Role:         "user",
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			l.Warn("signup rejected", "reason", "email taken")
			return nil, apperr.ErrUserExists
		}
		l.Error("signup failed", "error", err)
		return nil, apperr.ErrServer
	}

	s.publish(ctx, events.TopicUserEvents, user.UID.String(), map[string]any{
		"type":  "user_registered",
		"uid":   user.UID.String(),
		"email": user.Email,
	})

	l.Info("user registered", "uid", user.UID.String())
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		l.Error("login failed", "error", err)
		return nil, apperr.ErrServer
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.ErrInvalidCredentials
	}

	accessToken, err := tokens.CreateToken(s.Secret, tokens.UserClaims{
		Email:   user.Email,
		UserUID: user.UID.String(),
		Role:    user.Role,
	}, s.AccessTTL, false)
	if err != nil {
		l.Error("login failed", "reason", "cannot sign access token", "error", err)
		return nil, apperr.ErrServer
	}

	refreshToken, err := tokens.CreateToken(s.Secret, tokens.UserClaims{
		Email:   user.Email,
		UserUID: user.UID.String(),
	}, s.RefreshTTL, true)
	if err != nil {
		l.Error("login failed", "reason", "cannot sign refresh token", "error", err)
		return nil, apperr.ErrServer
	}

	s.publish(ctx, events.TopicUserEvents, user.UID.String(), map[string]any{
		"type": "user_logged_in",
		"uid":  user.UID.String(),
	})

	l.Info("login successful", "uid", user.UID.String())
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh mints a new access token from verified refresh-token claims.
// The claims must already have passed the refresh-class guard.
func (s *AuthService) Refresh(ctx context.Context, claims *tokens.Claims) (string, error) {
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		return "", apperr.ErrInvalidToken
	}

	accessToken, err := tokens.CreateToken(s.Secret, claims.User, s.AccessTTL, false)
	if err != nil {
		logging.FromContext(ctx).Error("refresh failed", "svc", "auth.refresh", "error", err)
		return "", apperr.ErrServer
	}
	return accessToken, nil
}

// Revoke puts the token's JTI on the blocklist for the token's remaining
// lifetime, so the entry cannot lapse before the token would expire anyway.
func (s *AuthService) Revoke(ctx context.Context, claims *tokens.Claims) error {
	l := logging.FromContext(ctx).With("svc", "auth.revoke")

	ttl := s.AccessTTL
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > ttl {
			ttl = remaining
		}
	}

	if err := s.Blocklist.Add(ctx, claims.ID, ttl); err != nil {
		l.Error("revoke failed", "error", err)
		return apperr.ErrServer
	}

	s.publish(ctx, events.TopicUserEvents, claims.User.UserUID, map[string]any{
		"type": "user_logged_out",
		"uid":  claims.User.UserUID,
	})

	l.Info("token revoked", "jti", claims.ID)
	return nil
}

// UpdateUserRole is the administrative role change; role names outside the
// known set are rejected before touching the store.
func (s *AuthService) UpdateUserRole(ctx context.Context, uid uuid.UUID, role string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.update_role")

	if role != "admin" && role != "user" {
		return nil, &apperr.Error{
			Status:  400,
			Code:    "invalid_role",
			Message: "Unknown role",
		}
	}

	user, err := s.Repo.GetUserByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		l.Error("role update failed", "error", err)
		return nil, apperr.ErrServer
	}

	if err := s.Repo.UpdateUser(ctx, user.UID, map[string]any{"role": role}); err != nil {
		l.Error("role update failed", "error", err)
		return nil, apperr.ErrServer
	}
	user.Role = role

	s.publish(ctx, events.TopicUserEvents, user.UID.String(), map[string]any{
		"type": "user_role_changed",
		"uid":  user.UID.String(),
		"role": role,
	})

	l.Info("role updated", "uid", user.UID.String(), "role", role)
	return user, nil
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "topic", topic, "error", err)
	}
}
