// ABOUTME: Tests for the register/login/protected/seed-admin endpoints
// ABOUTME: Covers validation, uniform login failures, and role grants

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"password": "Password123!",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeJSON[map[string]string](t, rec)
	assert.Equal(t, "User registered successfully!", resp["message"])
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name    string
		body    map[string]string
		wantErr string
	}{
		{
			name:    "missing email",
			body:    map[string]string{"password": "Password123!"},
			wantErr: "email is required",
		},
		{
			name:    "bad email",
			body:    map[string]string{"email": "not-an-email", "password": "Password123!"},
			wantErr: "invalid email format",
		},
		{
			name:    "weak password",
			body:    map[string]string{"email": "alice@example.com", "password": "weak"},
			wantErr: "password must be",
		},
		{
			name:    "password without symbol",
			body:    map[string]string{"email": "alice@example.com", "password": "Password1234"},
			wantErr: "password must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantErr)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice@example.com", "Password123!")

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"password": "Password123!",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email is already registered")
}

func TestLogin_UnknownEmailAndWrongPassword_SameResponse(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice@example.com", "Password123!")

	unknown := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "Password123!",
	})
	wrongPass := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "WrongPassword1!",
	})

	// Indistinguishable, so emails cannot be probed
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
}

func TestProtected(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com", "Password123!")

	rec := ts.do(t, http.MethodGet, "/api/auth/protected", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[map[string]string](t, rec)
	assert.Equal(t, "alice@example.com", resp["user"])
}

func TestProtected_NoToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/auth/protected", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSeedAdmin_ThenLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/auth/seed-admin", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin seeded!")

	// Seeding twice is fine
	rec = ts.do(t, http.MethodGet, "/api/auth/seed-admin", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	token := ts.login(t, "admin@test.com", "Password123!")
	assert.NotEmpty(t, token)
}

func TestLogin_TokenFreezesRoles(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com", "Password123!")

	claims, err := ts.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"User"}, claims.Roles)
	assert.False(t, claims.IsAdmin())
}
