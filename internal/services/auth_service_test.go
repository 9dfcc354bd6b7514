package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodata-service/internal/auth"
	"geodata-service/internal/models"
)

func newAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	tokens, err := auth.NewJWTManager("0123456789abcdef0123456789abcdef", 5*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	revoked := auth.NewMemoryRevocationStore(0)
	t.Cleanup(revoked.Close)

	users := newFakeUserRepo()
	for _, u := range []struct {
		name  string
		staff bool
	}{{"admin", true}, {"viewer", false}} {
		hash, err := auth.HashPassword("secret123")
		require.NoError(t, err)
		require.NoError(t, users.Create(context.Background(), &models.User{
			Username: u.name, PasswordHash: hash, IsStaff: u.staff, IsActive: true,
		}))
	}
	return NewAuthService(users, tokens, revoked, nil), users
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	user, pair, err := svc.Login(ctx, "admin", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.NotNil(t, users.users["admin"].LastLogin)

	_, _, err = svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "viewer", "secret123")
	assert.ErrorIs(t, err, ErrNotStaff)

	users.users["admin"].IsActive = false
	_, _, err = svc.Login(ctx, "admin", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceRefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	_, pair, err := svc.Login(ctx, "admin", "secret123")
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	user, err := svc.Authenticate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	_, err = svc.Refresh(ctx, pair.Access)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	svc.Logout(ctx, pair.Refresh)
	_, err = svc.Refresh(ctx, pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	// logout tolerates garbage
	svc.Logout(ctx, "not-a-token")
	svc.Logout(ctx, "")
}

func TestAuthServiceAuthenticateRejectsRefreshTokens(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)
	_, pair, err := svc.Login(ctx, "admin", "secret123")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, pair.Refresh)
	assert.Error(t, err)
}

func TestAuthServiceEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	created, err := svc.EnsureAdmin(ctx, "root", "root@example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)
	root := users.users["root"]
	assert.True(t, root.IsStaff)
	assert.True(t, root.IsSuperuser)
	assert.True(t, auth.CheckPassword(root.PasswordHash, "admin123"))

	created, err = svc.EnsureAdmin(ctx, "root", "root@example.com", "other")
	require.NoError(t, err)
	assert.False(t, created)
}
