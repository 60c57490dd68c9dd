package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Question answering
	mux.HandleFunc("/api/chat", s.app.ChatHandler.ChatHandler)
	mux.HandleFunc("/api/intent", s.app.IntentHandler.AnalyzeHandler)

	// Documents
	mux.HandleFunc("/api/documents", s.handleDocumentsRoute)
	mux.HandleFunc("/api/documents/batch", s.app.DocumentHandler.AddBatchHandler)
	mux.HandleFunc("/api/documents/stats", s.app.DocumentHandler.StatsHandler)
	mux.HandleFunc("/api/documents/", s.app.DocumentHandler.DocumentHandler)

	// Retrieval
	mux.HandleFunc("/api/search", s.app.SearchHandler.SearchHandler)

	// Settings (key/value storage)
	mux.HandleFunc("/api/kv", s.handleKVRoute)
	mux.HandleFunc("/api/kv/", s.app.KVHandler.KeyHandler)

	// System
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("/api/version", s.app.StatusHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.StatusHandler.HealthHandler)

	return mux
}

// handleDocumentsRoute dispatches /api/documents by method
func (s *Server) handleDocumentsRoute(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSuffix(r.URL.Path, "/") != "/api/documents" {
		http.NotFound(w, r)
		return
	}
	s.app.DocumentHandler.AddHandler(w, r)
}

// handleKVRoute dispatches /api/kv by method
func (s *Server) handleKVRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.app.KVHandler.ListHandler(w, r)
	case http.MethodPost:
		s.app.KVHandler.SetHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
