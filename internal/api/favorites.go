// ABOUTME: Favorite record HTTP handlers, always scoped to the caller's identity
// ABOUTME: Owner id and creation time are forced server-side, never from the body

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hangarbay/starship-api/internal/auth"
	"github.com/hangarbay/starship-api/internal/store"
)

type createFavoriteRequest struct {
	StarshipID int64  `json:"starship_id"`
	Nickname   string `json:"nickname"`
	Notes      string `json:"notes"`
}

type updateFavoriteRequest struct {
	Nickname *string `json:"nickname"`
	Notes    *string `json:"notes"`
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustFromContext(r.Context())

	favorites, err := s.store.ListFavorites(r.Context(), claims.UserID())
	if err != nil {
		s.logger.Error("listing favorites", "user_id", claims.UserID(), "error", err)
		writeError(w, http.StatusInternalServerError, "listing favorites failed")
		return
	}

	writeJSON(w, http.StatusOK, favorites)
}

func (s *Server) handleCreateFavorite(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustFromContext(r.Context())

	var req createFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Owner comes from the verified token; a user_id in the body is ignored
	// by construction since the request type has no such field.
	fav := &store.Favorite{
		UserID:     claims.UserID(),
		StarshipID: req.StarshipID,
		Nickname:   req.Nickname,
		Notes:      req.Notes,
	}

	err := s.store.CreateFavorite(r.Context(), fav)
	if errors.Is(err, store.ErrInvalidReference) {
		writeError(w, http.StatusBadRequest, "starship_id is invalid")
		return
	}
	if err != nil {
		s.logger.Error("creating favorite", "user_id", claims.UserID(), "error", err)
		writeError(w, http.StatusInternalServerError, "creating favorite failed")
		return
	}

	writeJSON(w, http.StatusCreated, fav)
}

func (s *Server) handleUpdateFavorite(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.store.UpdateFavorite(r.Context(), claims.UserID(), id, store.FavoritePatch{
		Nickname: req.Nickname,
		Notes:    req.Notes,
	})
	if errors.Is(err, store.ErrNotFound) {
		// Covers both "absent" and "owned by someone else"; returning 404
		// for both keeps other users' records unconfirmable.
		writeError(w, http.StatusNotFound, "favorite not found")
		return
	}
	if err != nil {
		s.logger.Error("updating favorite", "id", id, "user_id", claims.UserID(), "error", err)
		writeError(w, http.StatusInternalServerError, "updating favorite failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := s.store.DeleteFavorite(r.Context(), claims.UserID(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "favorite not found")
		return
	}
	if err != nil {
		s.logger.Error("deleting favorite", "id", id, "user_id", claims.UserID(), "error", err)
		writeError(w, http.StatusInternalServerError, "deleting favorite failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
