package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/hoidap/internal/interfaces"
)

const defaultSearchTopK = 5

// SearchHandler handles document retrieval HTTP requests
type SearchHandler struct {
	documentService interfaces.DocumentService
	logger          arbor.ILogger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(documentService interfaces.DocumentService, logger arbor.ILogger) *SearchHandler {
	return &SearchHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// SearchHandler handles GET /api/search?q=...&top_k=...&mode=semantic|keyword
func (h *SearchHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	topK := defaultSearchTopK
	if v := r.URL.Query().Get("top_k"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			topK = parsed
		}
	}

	mode := r.URL.Query().Get("mode")
	var results interface{}
	switch mode {
	case "keyword":
		keywords := strings.Fields(query)
		results = h.documentService.KeywordSearch(keywords, topK)
	case "", "semantic":
		results = h.documentService.Search(query, topK)
	default:
		WriteError(w, http.StatusBadRequest, "Unknown search mode: "+mode)
		return
	}

	h.logger.Debug().Str("query", query).Str("mode", mode).Msg("Search executed")
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
	})
}
