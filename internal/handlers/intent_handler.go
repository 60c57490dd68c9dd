package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/hoidap/internal/interfaces"
)

// IntentHandler exposes intent analysis as its own endpoint, for callers
// that want classification without answering.
type IntentHandler struct {
	intentService interfaces.IntentService
	logger        arbor.ILogger
}

// NewIntentHandler creates a new intent handler
func NewIntentHandler(intentService interfaces.IntentService, logger arbor.ILogger) *IntentHandler {
	return &IntentHandler{
		intentService: intentService,
		logger:        logger,
	}
}

type intentRequest struct {
	Query    string `json:"query"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// AnalyzeHandler handles POST /api/intent requests
func (h *IntentHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode intent request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" {
		WriteError(w, http.StatusBadRequest, "Query field is required")
		return
	}

	intent := h.intentService.Analyze(r.Context(), req.Query, req.Provider, req.Model)
	WriteJSON(w, http.StatusOK, intent)
}
