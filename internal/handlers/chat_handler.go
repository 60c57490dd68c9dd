package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/hoidap/internal/interfaces"
	"github.com/ternarybob/hoidap/internal/services/cache"
)

// ChatHandler handles question answering HTTP requests. It owns the answer
// cache: the answering core stays cache-free and memoization happens here at
// the transport boundary.
type ChatHandler struct {
	answerService interfaces.AnswerService
	cache         *cache.Service
	validate      *validator.Validate
	logger        arbor.ILogger
}

// NewChatHandler creates a new chat handler. cache may be nil to disable
// memoization.
func NewChatHandler(answerService interfaces.AnswerService, answerCache *cache.Service, logger arbor.ILogger) *ChatHandler {
	return &ChatHandler{
		answerService: answerService,
		cache:         answerCache,
		validate:      validator.New(),
		logger:        logger,
	}
}

// ChatHandler handles POST /api/chat requests
func (h *ChatHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req interfaces.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode chat request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if h.cache != nil {
		if cached := h.cache.Get(req.Question); cached != nil {
			h.logger.Debug().Str("question", req.Question).Msg("Answer cache hit")
			WriteJSON(w, http.StatusOK, cached)
			return
		}
	}

	h.logger.Info().
		Int("question_length", len(req.Question)).
		Str("provider", req.Provider).
		Msg("Processing chat request")

	result := h.answerService.Answer(r.Context(), &req)

	if h.cache != nil {
		h.cache.Set(req.Question, result)
	}

	WriteJSON(w, http.StatusOK, result)
}
