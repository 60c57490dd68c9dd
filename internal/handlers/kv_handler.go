package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/hoidap/internal/interfaces"
)

// KVHandler manages runtime settings and API keys held in the KV store.
type KVHandler struct {
	kvStorage interfaces.KeyValueStorage
	logger    arbor.ILogger
}

// NewKVHandler creates a new KV handler
func NewKVHandler(kvStorage interfaces.KeyValueStorage, logger arbor.ILogger) *KVHandler {
	return &KVHandler{
		kvStorage: kvStorage,
		logger:    logger,
	}
}

// maskValue hides all but the last four characters of a stored value.
// API keys live in this store, so list responses never show full values.
func maskValue(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}

// ListHandler handles GET /api/kv - lists all pairs with masked values
func (h *KVHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	all, err := h.kvStorage.GetAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list key/value pairs")
		WriteError(w, http.StatusInternalServerError, "Failed to list key/value pairs")
		return
	}

	masked := make(map[string]string, len(all))
	for k, v := range all {
		masked[k] = maskValue(v)
	}
	WriteJSON(w, http.StatusOK, masked)
}

type setKVRequest struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// SetHandler handles POST /api/kv - inserts or updates a pair
func (h *KVHandler) SetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req setKVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Key) == "" {
		WriteError(w, http.StatusBadRequest, "Key field is required")
		return
	}

	if err := h.kvStorage.Set(r.Context(), req.Key, req.Value, req.Description); err != nil {
		h.logger.Error().Err(err).Str("key", req.Key).Msg("Failed to set key/value pair")
		WriteError(w, http.StatusInternalServerError, "Failed to store value")
		return
	}

	h.logger.Info().Str("key", req.Key).Msg("Key/value pair stored")
	WriteSuccess(w, "Value stored")
}

// KeyHandler handles GET/DELETE /api/kv/{key}
func (h *KVHandler) KeyHandler(w http.ResponseWriter, r *http.Request) {
	encoded := strings.TrimPrefix(r.URL.Path, "/api/kv/")
	key, err := url.QueryUnescape(encoded)
	if err != nil || key == "" {
		WriteError(w, http.StatusBadRequest, "Invalid key")
		return
	}

	switch r.Method {
	case http.MethodGet:
		value, err := h.kvStorage.Get(r.Context(), key)
		if errors.Is(err, interfaces.ErrKeyNotFound) {
			WriteError(w, http.StatusNotFound, "Key not found")
			return
		}
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Failed to read value")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"key": key, "value": maskValue(value)})

	case http.MethodDelete:
		if err := h.kvStorage.Delete(r.Context(), key); err != nil {
			WriteError(w, http.StatusInternalServerError, "Failed to delete key")
			return
		}
		WriteSuccess(w, "Key deleted")

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
