// ABOUTME: Starship catalog HTTP handlers
// ABOUTME: Reads are public; mutations sit behind the Admin role middleware

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hangarbay/starship-api/internal/store"
)

// pathID parses the {id} path value as an int64. Returns false after writing
// a 400 when the value is not a number.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleListStarships(w http.ResponseWriter, r *http.Request) {
	ships, err := s.store.ListStarships(r.Context())
	if err != nil {
		s.logger.Error("listing starships", "error", err)
		writeError(w, http.StatusInternalServerError, "listing starships failed")
		return
	}

	if ships == nil {
		ships = []*store.Starship{}
	}
	writeJSON(w, http.StatusOK, ships)
}

func (s *Server) handleGetStarship(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ship, err := s.store.GetStarship(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "starship not found")
		return
	}
	if err != nil {
		s.logger.Error("getting starship", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "getting starship failed")
		return
	}

	writeJSON(w, http.StatusOK, ship)
}

func (s *Server) handleCreateStarship(w http.ResponseWriter, r *http.Request) {
	var ship store.Starship
	if err := json.NewDecoder(r.Body).Decode(&ship); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if ship.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	// The store assigns the id; any client-supplied value is dropped.
	ship.ID = 0

	if err := s.store.CreateStarship(r.Context(), &ship); err != nil {
		s.logger.Error("creating starship", "error", err)
		writeError(w, http.StatusInternalServerError, "creating starship failed")
		return
	}

	writeJSON(w, http.StatusCreated, &ship)
}

func (s *Server) handleUpdateStarship(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var ship store.Starship
	if err := json.NewDecoder(r.Body).Decode(&ship); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if ship.ID != 0 && ship.ID != id {
		writeError(w, http.StatusBadRequest, "id in URL and body must match")
		return
	}
	ship.ID = id

	err := s.store.UpdateStarship(r.Context(), &ship)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "starship not found")
		return
	}
	if err != nil {
		s.logger.Error("updating starship", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "updating starship failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteStarship(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := s.store.DeleteStarship(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "starship not found")
		return
	}
	if err != nil {
		s.logger.Error("deleting starship", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "deleting starship failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
