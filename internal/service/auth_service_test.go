package service

import (
	"testing"
	"time"

	"github.com/Tejas411/LearnPal/internal/config"
	"github.com/Tejas411/LearnPal/internal/repository"
	"github.com/Tejas411/LearnPal/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := setupTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-for-signing-tokens"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newTestAuthService(t)

	token, user, err := auth.Register("new@example.com", "hunter22", "Ada", "Lovelace")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "new@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.Password)

	claims, err := util.ParseJWT(token, auth.Config.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	token, logged, err := auth.Login("new@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newTestAuthService(t)

	_, _, err := auth.Register("dup@example.com", "pw123456", "A", "B")
	require.NoError(t, err)

	_, _, err = auth.Register("dup@example.com", "pw123456", "A", "B")
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newTestAuthService(t)

	_, _, err := auth.Register("who@example.com", "correct-pw", "A", "B")
	require.NoError(t, err)

	_, _, err = auth.Login("who@example.com", "wrong-pw")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = auth.Login("nobody@example.com", "correct-pw")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
