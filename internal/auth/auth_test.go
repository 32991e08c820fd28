package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embercoffee/contact-service/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 10*time.Minute)

	token, expiresAt, err := tm.GenerateToken()
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminSubject, claims.Subject)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", time.Minute).GenerateToken()
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Minute).ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	tm.ttl = -time.Minute

	token, _, err := tm.GenerateToken()
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestVerifyAdminPassword_Plain(t *testing.T) {
	cfg := config.AuthConfig{AdminPassword: "open-sesame"}

	assert.NoError(t, VerifyAdminPassword(cfg, "open-sesame"))
	assert.ErrorIs(t, VerifyAdminPassword(cfg, "wrong"), ErrPasswordMismatch)
}

func TestVerifyAdminPassword_BcryptHashTakesPrecedence(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)

	cfg := config.AuthConfig{
		AdminPassword:     "something-else",
		AdminPasswordHash: hash,
	}

	assert.NoError(t, VerifyAdminPassword(cfg, "hunter2"))
	assert.ErrorIs(t, VerifyAdminPassword(cfg, "something-else"), ErrPasswordMismatch)
}

func TestVerifyAdminPassword_NoGateConfigured(t *testing.T) {
	assert.ErrorIs(t, VerifyAdminPassword(config.AuthConfig{}, ""), ErrPasswordMismatch)
}
