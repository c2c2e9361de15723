package attempt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cscreviewph/exam-platform/internal/auth/jwt"
	"github.com/cscreviewph/exam-platform/internal/exam"
	httperrors "github.com/cscreviewph/exam-platform/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for attempt operations.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for attempt endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "attempt_http").Logger(),
	}
}

// CreateRequest is the POST /v1/attempts payload.
type CreateRequest struct {
	ExamType string `json:"exam_type"`
	Mode     string `json:"mode"`
}

// FinalizeRequest is the POST /v1/finalize payload.
type FinalizeRequest struct {
	AttemptID string `json:"attempt_id"`
}

// SaveAnswerRequest is the PUT answer payload.
type SaveAnswerRequest struct {
	ChoiceID string `json:"choice_id"`
}

// FinalizeResponse wraps the final result for the wire.
type FinalizeResponse struct {
	Success bool `json:"success"`
	FinalResult
}

// Create handles POST /v1/attempts.
func (h *HTTPHandlers) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(r)
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.ExamType == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "exam_type is required", "exam_type")
		return
	}
	if req.Mode == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "mode is required", "mode")
		return
	}

	created, err := h.service.Create(r.Context(), claims.UserID, req.ExamType, req.Mode)
	if err != nil {
		h.respondServiceError(w, err, claims.UserID, "create attempt failed")
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// List handles GET /v1/attempts (caller's history, newest first).
func (h *HTTPHandlers) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(r)
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	attempts, err := h.service.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		h.respondServiceError(w, err, claims.UserID, "list attempts failed")
		return
	}
	if attempts == nil {
		attempts = []Attempt{}
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"attempts": attempts})
}

// Get handles GET /v1/attempts/{id}.
func (h *HTTPHandlers) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(r)
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}
	attemptID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid attempt ID")
		return
	}

	a, err := h.service.Get(r.Context(), attemptID, claims.UserID)
	if err != nil {
		h.respondServiceError(w, err, claims.UserID, "get attempt failed")
		return
	}
	h.respondJSON(w, http.StatusOK, a)
}

// SaveAnswer handles PUT /v1/attempts/{id}/answers/{questionId}.
func (h *HTTPHandlers) SaveAnswer(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(r)
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}
	attemptID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid attempt ID")
		return
	}
	questionID := r.PathValue("questionId")

	var req SaveAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.ChoiceID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "choice_id is required", "choice_id")
		return
	}

	if err := h.service.SaveAnswer(r.Context(), attemptID, claims.UserID, questionID, req.ChoiceID); err != nil {
		h.respondServiceError(w, err, claims.UserID, "save answer failed")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Finalize handles POST /v1/finalize.
func (h *HTTPHandlers) Finalize(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(r)
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	var req FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.AttemptID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "attempt_id is required", "attempt_id")
		return
	}
	attemptID, err := uuid.Parse(req.AttemptID)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid attempt ID")
		return
	}

	result, err := h.service.Finalize(r.Context(), attemptID, claims.UserID)
	if err != nil {
		h.respondServiceError(w, err, claims.UserID, "finalize failed")
		return
	}
	h.respondJSON(w, http.StatusOK, FinalizeResponse{Success: true, FinalResult: result})
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, err error, userID uuid.UUID, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeAttemptNotFound, "Attempt not found")
	case errors.Is(err, ErrForbidden):
		httperrors.RespondForbidden(w, httperrors.ErrCodeForbidden, "Forbidden")
	case errors.Is(err, ErrAlreadySubmitted):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeAlreadySubmitted, "Attempt already submitted")
	case errors.Is(err, exam.ErrUnknownExamType):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeUnknownExamType, "Unknown exam type")
	case errors.Is(err, exam.ErrUnknownMode):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeUnknownMode, "Unknown exam mode")
	case errors.Is(err, ErrEmptyBank):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeEmptyQuestionBank, "No questions seeded for exam type")
	default:
		h.logger.Error().Err(err).Str("user_id", userID.String()).Msg(msg)
		httperrors.RespondInternalError(w, "Internal server error")
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func callerClaims(r *http.Request) (*jwt.Claims, bool) {
	claims, ok := r.Context().Value("claims").(*jwt.Claims)
	return claims, ok && claims != nil
}
