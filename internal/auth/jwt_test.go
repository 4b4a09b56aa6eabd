package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/MovieCatalog/internal/auth"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := auth.NewTokenManager("secret", "test-issuer", 15*time.Minute)

	tok, err := m.Issue(&domain.User{ID: 42, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Equal(t, int((15 * time.Minute).Seconds()), tok.ExpiresIn)

	caller, err := m.Parse(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 42, caller.UserID)
	assert.True(t, caller.IsAdmin())
}

func TestTokenManager_RejectsOtherSecret(t *testing.T) {
	tok, err := auth.NewTokenManager("one", "iss", time.Minute).Issue(&domain.User{ID: 1, Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = auth.NewTokenManager("two", "iss", time.Minute).Parse(tok.AccessToken)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := auth.NewTokenManager("secret", "iss", -time.Minute)
	tok, err := m.Issue(&domain.User{ID: 1, Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = m.Parse(tok.AccessToken)
	assert.Error(t, err)
}

func TestTokenManager_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "1", Issuer: "iss"}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.NewTokenManager("secret", "iss", time.Minute).Parse(unsigned)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(hash, "hunter22"))
	assert.False(t, auth.CheckPassword(hash, "hunter23"))

	a, b := auth.NewOpaqueToken(), auth.NewOpaqueToken()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
