// ABOUTME: Registration, login and baseline-seeding HTTP handlers
// ABOUTME: Login failures are uniform 401s so emails cannot be probed

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/hangarbay/starship-api/internal/auth"
	"github.com/hangarbay/starship-api/internal/seed"
	"github.com/hangarbay/starship-api/internal/store"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates a new identity and grants it the User role.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest,
			"password must be at least 8 characters with upper, lower, digit and symbol")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("hashing password", "error", err)
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	user := &store.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "email is already registered")
			return
		}
		s.logger.Error("creating user", "error", err)
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	if err := s.store.AddUserRole(r.Context(), user.ID, store.RoleUser); err != nil {
		s.logger.Error("granting user role", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	s.logger.Info("registered user", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully!"})
}

// handleLogin verifies credentials and mints a session token. Unknown email
// and wrong password produce the same 401.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		s.logger.Error("looking up user", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// Roles are read here, at issuance time, so the token freezes the
	// current membership rather than whatever it becomes later.
	roleNames, err := s.store.ListUserRoles(r.Context(), user.ID)
	if err != nil {
		s.logger.Error("listing roles", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	roles := make([]string, len(roleNames))
	for i, rn := range roleNames {
		roles[i] = string(rn)
	}

	token, err := s.tokens.Issue(user.ID, user.Email, roles)
	if err != nil {
		s.logger.Error("issuing token", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleProtected is a smoke-test route for verifying a bearer token end to end.
func (s *Server) handleProtected(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "You are authenticated!",
		"user":    claims.Email,
	})
}

// handleSeedAdmin runs the baseline seeder on demand. Idempotent, so exposing
// it without auth matches the operational endpoint it replaces.
func (s *Server) handleSeedAdmin(w http.ResponseWriter, r *http.Request) {
	if err := seed.EnsureBaseline(r.Context(), s.store); err != nil {
		s.logger.Error("seeding baseline", "error", err)
		writeError(w, http.StatusInternalServerError, "seeding failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Admin seeded!"})
}
