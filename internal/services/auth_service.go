package services

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"geodata-service/internal/auth"
	"geodata-service/internal/logger"
	"geodata-service/internal/metrics"
	"geodata-service/internal/models"
	"geodata-service/internal/repository"
)

// AuthService authenticates staff users and manages their token lifecycle.
type AuthService struct {
	Users   repository.UserRepository
	Tokens  *auth.JWTManager
	Revoked auth.RevocationStore
	Metrics *metrics.Metrics
}

func NewAuthService(users repository.UserRepository, tokens *auth.JWTManager, revoked auth.RevocationStore, m *metrics.Metrics) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Revoked: revoked, Metrics: m}
}

// Login checks the credentials and issues a token pair. Only active staff
// users may log in.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, *auth.TokenPair, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsStaff {
		return nil, nil, ErrNotStaff
	}

	pair, err := s.Tokens.IssuePair(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Users.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last login")
	}
	return user, pair, nil
}

// Logout revokes the refresh token until it would have expired. Invalid or
// missing tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refresh string) {
	if refresh == "" {
		return
	}
	claims, err := s.Tokens.Validate(refresh, auth.TokenTypeRefresh)
	if err != nil {
		return
	}
	if err := s.Revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("failed to revoke refresh token")
		return
	}
	s.Metrics.RecordRevocation()
}

// Refresh issues a new access token from a valid, unrevoked refresh token.
func (s *AuthService) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.Tokens.Validate(refresh, auth.TokenTypeRefresh)
	if err != nil {
		return "", ErrInvalidRefresh
	}
	revoked, err := s.Revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", errors.Wrap(err, "failed to check token revocation")
	}
	if revoked {
		return "", ErrInvalidRefresh
	}
	return s.Tokens.AccessFromRefresh(claims)
}

// Authenticate resolves a bearer access token to its active user.
func (s *AuthService) Authenticate(ctx context.Context, access string) (*models.User, error) {
	claims, err := s.Tokens.Validate(access, auth.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	user, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, auth.ErrInvalidToken
	}
	return user, nil
}

// EnsureAdmin creates a staff superuser with the given credentials unless the
// username already exists. It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	_, err := s.Users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsStaff:      true,
		IsSuperuser:  true,
		IsActive:     true,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return false, errors.Wrap(err, "failed to create admin user")
	}
	return true, nil
}
