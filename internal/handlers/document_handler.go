package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/hoidap/internal/interfaces"
	"github.com/ternarybob/hoidap/internal/models"
)

// DocumentHandler handles document management HTTP requests
type DocumentHandler struct {
	documentService interfaces.DocumentService
	logger          arbor.ILogger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService interfaces.DocumentService, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

type addDocumentRequest struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type addBatchRequest struct {
	Documents []addDocumentRequest `json:"documents"`
}

// AddHandler handles POST /api/documents - adds a single document
func (h *DocumentHandler) AddHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req addDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.documentService.Add(req.Content, req.Metadata)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Document rejected")
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info().Str("doc_id", doc.ID).Msg("Document added")
	WriteJSON(w, http.StatusCreated, doc)
}

// AddBatchHandler handles POST /api/documents/batch - adds multiple documents
func (h *DocumentHandler) AddBatchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req addBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	docs := make([]models.Document, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = models.Document{Content: d.Content, Metadata: d.Metadata}
	}

	added, err := h.documentService.AddBatch(docs)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info().Int("added", added).Int("submitted", len(docs)).Msg("Batch added")
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"added":     added,
		"submitted": len(docs),
	})
}

// StatsHandler handles GET /api/documents/stats
func (h *DocumentHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, h.documentService.Stats())
}

// DocumentHandler handles GET/DELETE /api/documents/{id}
func (h *DocumentHandler) DocumentHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Invalid document id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		doc := h.documentService.Get(id)
		if doc == nil {
			WriteError(w, http.StatusNotFound, "Document not found")
			return
		}
		WriteJSON(w, http.StatusOK, doc)

	case http.MethodDelete:
		if !h.documentService.Delete(id) {
			WriteError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.logger.Info().Str("doc_id", id).Msg("Document deleted")
		WriteSuccess(w, "Document deleted")

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
