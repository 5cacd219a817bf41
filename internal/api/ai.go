// ABOUTME: AI question-answering HTTP handler
// ABOUTME: Validates the starship reference then forwards to the completion API

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hangarbay/starship-api/internal/ai"
	"github.com/hangarbay/starship-api/internal/store"
)

type starshipQuestionRequest struct {
	StarshipID int64  `json:"starship_id"`
	Question   string `json:"question"`
}

func (s *Server) handleStarshipQuestion(w http.ResponseWriter, r *http.Request) {
	var req starshipQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	ship, err := s.store.GetStarship(r.Context(), req.StarshipID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "starship not found")
		return
	}
	if err != nil {
		s.logger.Error("getting starship", "id", req.StarshipID, "error", err)
		writeError(w, http.StatusInternalServerError, "question failed")
		return
	}

	answer, err := s.ai.AskStarshipQuestion(r.Context(), ship, req.Question)
	if errors.Is(err, ai.ErrNoAPIKey) {
		writeError(w, http.StatusInternalServerError, "OpenAI API key missing")
		return
	}
	if err != nil {
		s.logger.Error("asking starship question", "ship", ship.Name, "error", err)
		writeError(w, http.StatusBadGateway, "question failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
