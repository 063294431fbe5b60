package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fathsl/ranya-front-sub000/internal/backend"
	"github.com/fathsl/ranya-front-sub000/internal/service"
	"github.com/fathsl/ranya-front-sub000/internal/session"
)

// AttemptHandler handles the attempt lifecycle endpoints
type AttemptHandler struct {
	attemptSvc *service.AttemptService
}

// NewAttemptHandler creates a new attempt handler
func NewAttemptHandler(attemptSvc *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptSvc: attemptSvc}
}

// CreateAttemptRequest is the request body for creating an attempt
type CreateAttemptRequest struct {
	ParticipantID   string `json:"participantId"`
	ParticipantName string `json:"participantName"`
}

// AnswerRequest is the request body for recording an answer
type AnswerRequest struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// Create handles POST /v1/evaluations/{evaluationId}/attempts
func (h *AttemptHandler) Create(w http.ResponseWriter, r *http.Request) {
	evaluationID := mux.Vars(r)["evaluationId"]

	var req CreateAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ParticipantID == "" {
		writeError(w, http.StatusBadRequest, "participantId is required")
		return
	}

	created, err := h.attemptSvc.CreateAttempt(r.Context(), evaluationID, req.ParticipantID, req.ParticipantName)
	if err != nil {
		writeAttemptError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Start handles POST /v1/attempts/{attemptId}/start
func (h *AttemptHandler) Start(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	snap, err := h.attemptSvc.StartAttempt(r.Context(), attemptID)
	if err != nil {
		writeAttemptError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// Get handles GET /v1/attempts/{attemptId}
func (h *AttemptHandler) Get(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	snap, err := h.attemptSvc.GetAttempt(r.Context(), attemptID)
	if err != nil {
		writeAttemptError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// RecordAnswer handles PUT /v1/attempts/{attemptId}/answers
func (h *AttemptHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}

	snap, err := h.attemptSvc.RecordAnswer(r.Context(), attemptID, req.QuestionID, req.Value)
	if err != nil {
		writeAttemptError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// Next handles POST /v1/attempts/{attemptId}/next
func (h *AttemptHandler) Next(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	snap, err := h.attemptSvc.Next(r.Context(), attemptID)
	if err != nil {
		writeAttemptError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// Previous handles POST /v1/attempts/{attemptId}/previous
func (h *AttemptHandler) Previous(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	snap, err := h.attemptSvc.Previous(r.Context(), attemptID)
	if err != nil {
		writeAttemptError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// Submit handles POST /v1/attempts/{attemptId}/submit
func (h *AttemptHandler) Submit(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	snap, err := h.attemptSvc.Submit(r.Context(), attemptID)
	if err != nil {
		writeAttemptError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// Abandon handles DELETE /v1/attempts/{attemptId}
func (h *AttemptHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	if err := h.attemptSvc.Abandon(r.Context(), attemptID); err != nil {
		writeAttemptError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
}

// writeAttemptError maps domain errors onto HTTP statuses
func writeAttemptError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, backend.ErrEvaluationNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, backend.ErrNoQuestions),
		errors.Is(err, session.ErrNotStartable),
		errors.Is(err, session.ErrAlreadyStarted),
		errors.Is(err, session.ErrNotInProgress):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrUnknownQuestion):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
