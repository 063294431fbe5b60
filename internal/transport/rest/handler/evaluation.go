package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fathsl/ranya-front-sub000/internal/cache"
)

const defaultLeaderboardLimit = 20

// EvaluationHandler handles trainer-facing evaluation endpoints
type EvaluationHandler struct {
	scores cache.ScoreBoard
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(scores cache.ScoreBoard) *EvaluationHandler {
	return &EvaluationHandler{scores: scores}
}

// Leaderboard handles GET /v1/evaluations/{evaluationId}/leaderboard
func (h *EvaluationHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	evaluationID := mux.Vars(r)["evaluationId"]

	limit := defaultLeaderboardLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.scores.Top(r.Context(), evaluationID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	if entries == nil {
		entries = []cache.ScoreEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"evaluationId": evaluationID,
		"entries":      entries,
	})
}
