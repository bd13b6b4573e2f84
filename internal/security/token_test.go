package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "test-access-secret-0123456789abcdef"
	testRefreshSecret = "test-refresh-secret-0123456789abcd"
)

func newTestManager() TokenManager {
	return NewTokenManager(testSecret, testRefreshSecret, 60, 60*24*7)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken(42, "Alice", "alice@example.com", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.False(t, claims.IsAdmin)
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken(42, "alice@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestTokenTypeSeparation(t *testing.T) {
	m := newTestManager()

	access, err := m.GenerateAccessToken(42, "Alice", "alice@example.com", false)
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken(42, "alice@example.com")
	require.NoError(t, err)

	// Tokens are signed with separate secrets, so cross-validation fails
	// before the type check is even reached.
	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := newTestManager()

	_, err := m.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewTokenManager("another-secret-that-is-long-enough", testRefreshSecret, 60, 60)

	token, err := m.GenerateAccessToken(42, "Alice", "alice@example.com", false)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMissingSecret(t *testing.T) {
	m := NewTokenManager("", "", 60, 60)

	_, err := m.GenerateAccessToken(1, "", "", false)
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = m.GenerateRefreshToken(1, "")
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = m.ValidateAccessToken("anything")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestExpiredToken(t *testing.T) {
	m := NewTokenManager(testSecret, testRefreshSecret, -1, 60)

	token, err := m.GenerateAccessToken(42, "Alice", "alice@example.com", false)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
