// ABOUTME: Unit tests for JWT session token issuing and verification
// ABOUTME: Tests valid tokens, tampered tokens, expiry, and issuer/audience checks

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-signing-key-0123456789abcdef" // 33 bytes

func newTestTokens(t *testing.T, ttl time.Duration) *Tokens {
	t.Helper()
	tokens, err := NewTokens([]byte(testKey), "starship-api", "starship-ui", ttl)
	require.NoError(t, err)
	return tokens
}

func TestNewTokens_WeakKey(t *testing.T) {
	_, err := NewTokens([]byte("short"), "iss", "aud", time.Hour)
	assert.ErrorIs(t, err, ErrWeakKey)

	_, err = NewTokens(nil, "iss", "aud", time.Hour)
	assert.ErrorIs(t, err, ErrWeakKey)
}

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens := newTestTokens(t, time.Hour)

	token, err := tokens.Issue("user-123", "alice@example.com", []string{"User", "Admin"})
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID())
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, []string{"User", "Admin"}, claims.Roles)
	assert.True(t, claims.IsAdmin())
	assert.True(t, claims.HasRole("User"))
	assert.False(t, claims.HasRole("Owner"))
}

func TestTokens_Issue_EmptyEmail(t *testing.T) {
	tokens := newTestTokens(t, time.Hour)

	_, err := tokens.Issue("user-123", "", []string{"User"})
	assert.ErrorIs(t, err, ErrInvalidIdentity)
}

func TestTokens_Issue_NilRoles(t *testing.T) {
	tokens := newTestTokens(t, time.Hour)

	token, err := tokens.Issue("user-123", "alice@example.com", nil)
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.NotNil(t, claims.Roles)
	assert.Empty(t, claims.Roles)
}

func TestTokens_Verify_Expired(t *testing.T) {
	tokens := newTestTokens(t, -time.Minute)

	token, err := tokens.Issue("user-123", "alice@example.com", []string{"User"})
	require.NoError(t, err)

	// Signature is fine; expiry alone must reject, and with the same
	// uniform error as any other failure.
	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokens_Verify_WrongKey(t *testing.T) {
	tokens := newTestTokens(t, time.Hour)

	other, err := NewTokens([]byte("another-signing-key-0123456789abcdef"), "starship-api", "starship-ui", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue("user-123", "alice@example.com", []string{"User"})
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokens_Verify_WrongIssuer(t *testing.T) {
	tokens := newTestTokens(t, time.Hour)

	other, err := NewTokens([]byte(testKey), "someone-else", "starship-ui", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue("user-123", "alice@example.com", []string{"User"})
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokens_Verify_WrongAudience(t *testing.T) {
	tokens := newTestTokens(t, time.Hour)

	other, err := NewTokens([]byte(testKey), "starship-api", "someone-else", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue("user-123", "alice@example.com", []string{"User"})
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokens_Verify_Garbage(t *testing.T) {
	tokens := newTestTokens(t, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-jwt-token"},
		{name: "malformed JWT", token: "header.payload.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Verify(tt.token)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestClaims_Owns(t *testing.T) {
	tokens := newTestTokens(t, time.Hour)

	token, err := tokens.Issue("user-123", "alice@example.com", nil)
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.Owns("user-123"))
	assert.False(t, claims.Owns("user-456"))
	assert.False(t, claims.Owns(""))
}
