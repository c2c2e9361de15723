package question

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/cscreviewph/exam-platform/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for the question bank.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for question bank endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "question_http").Logger(),
	}
}

// Seed handles POST /v1/seed: writes the embedded question sets to the bank.
func (h *HTTPHandlers) Seed(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Seed(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("seed failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSeedFailed, "Seed failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"seeded":  summary.Seeded,
		"pro":     summary.Pro,
		"sub_pro": summary.SubPro,
	})
}
