// ABOUTME: HTTP server wiring for the starship-api REST surface
// ABOUTME: Registers routes with per-route auth requirements and JSON helpers

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hangarbay/starship-api/internal/ai"
	"github.com/hangarbay/starship-api/internal/auth"
	"github.com/hangarbay/starship-api/internal/store"
)

// Server handles the HTTP API routes
type Server struct {
	store  store.Store
	tokens *auth.Tokens
	ai     *ai.Client
	logger *slog.Logger
}

// New creates an API server
func New(s store.Store, tokens *auth.Tokens, aiClient *ai.Client) *Server {
	return &Server{
		store:  s,
		tokens: tokens,
		ai:     aiClient,
		logger: slog.Default().With("component", "api"),
	}
}

// Routes registers all API routes on the mux. Each route declares its auth
// requirement here: anonymous, authenticated (authed), or a specific role.
func (s *Server) Routes(mux *http.ServeMux) {
	authed := auth.Middleware(s.tokens)
	admin := func(h http.Handler) http.Handler {
		return authed(auth.RequireRole("Admin")(h))
	}

	// Health
	mux.HandleFunc("GET /health", s.handleHealth)

	// Auth (public)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/seed-admin", s.handleSeedAdmin)
	mux.Handle("GET /api/auth/protected", authed(http.HandlerFunc(s.handleProtected)))

	// Starship catalog: public reads, admin-only writes
	mux.HandleFunc("GET /api/starships", s.handleListStarships)
	mux.HandleFunc("GET /api/starships/{id}", s.handleGetStarship)
	mux.Handle("POST /api/starships", admin(http.HandlerFunc(s.handleCreateStarship)))
	mux.Handle("PUT /api/starships/{id}", admin(http.HandlerFunc(s.handleUpdateStarship)))
	mux.Handle("DELETE /api/starships/{id}", admin(http.HandlerFunc(s.handleDeleteStarship)))

	// Favorites: always authenticated, always owner-scoped
	mux.Handle("GET /api/favorites", authed(http.HandlerFunc(s.handleListFavorites)))
	mux.Handle("POST /api/favorites", authed(http.HandlerFunc(s.handleCreateFavorite)))
	mux.Handle("PUT /api/favorites/{id}", authed(http.HandlerFunc(s.handleUpdateFavorite)))
	mux.Handle("DELETE /api/favorites/{id}", authed(http.HandlerFunc(s.handleDeleteFavorite)))

	// AI passthrough (public, same as the catalog reads it builds on)
	mux.HandleFunc("POST /api/ai/starship-question", s.handleStarshipQuestion)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a stable error envelope. Internal details never reach
// the client; they belong in the log.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
