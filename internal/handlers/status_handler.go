package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/hoidap/internal/common"
	"github.com/ternarybob/hoidap/internal/interfaces"
)

// StatusHandler reports application status and backend health
type StatusHandler struct {
	documentService interfaces.DocumentService
	extractive      interfaces.ExtractiveService
	startTime       time.Time
	logger          arbor.ILogger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(documentService interfaces.DocumentService, extractive interfaces.ExtractiveService, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		documentService: documentService,
		extractive:      extractive,
		startTime:       time.Now(),
		logger:          logger,
	}
}

// GetStatusHandler handles GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	extractiveHealthy := false
	if h.extractive != nil {
		extractiveHealthy = h.extractive.HealthCheck(r.Context()) == nil
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":            common.GetVersion(),
		"uptime":             time.Since(h.startTime).String(),
		"documents":          h.documentService.Count(),
		"extractive_healthy": extractiveHealthy,
	})
}

// VersionHandler handles GET /api/version
func (h *StatusHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetFullVersion(),
	})
}

// HealthHandler handles GET /api/health
func (h *StatusHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
