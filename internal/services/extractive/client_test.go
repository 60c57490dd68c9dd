package extractive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ternarybob/hoidap/internal/common"
)

func TestClient_AnswerQuestion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/answer" {
			http.NotFound(w, r)
			return
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Empty context degrades to an unsuccessful result, not an error
		if req["context"] == "" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"answer": "", "confidence": 0.0, "success": false,
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"answer": "500 tỷ đồng", "confidence": 0.91, "success": true,
		})
	}))
	defer server.Close()

	client := NewClient(&common.ExtractiveConfig{
		BaseURL: server.URL,
		Model:   "vi-mrc-large",
		Timeout: "5s",
	}, common.GetLogger())

	t.Run("Answers with context", func(t *testing.T) {
		result, err := client.AnswerQuestion(context.Background(), "Doanh thu quý 1 là bao nhiêu?", "Doanh thu quý 1 là 500 tỷ đồng")
		if err != nil {
			t.Fatalf("AnswerQuestion failed: %v", err)
		}
		if !result.Success {
			t.Error("expected success")
		}
		if result.Answer != "500 tỷ đồng" {
			t.Errorf("answer = %q", result.Answer)
		}
		if result.Confidence != 0.91 {
			t.Errorf("confidence = %f", result.Confidence)
		}
	})

	t.Run("Empty context is safe", func(t *testing.T) {
		result, err := client.AnswerQuestion(context.Background(), "Câu hỏi", "")
		if err != nil {
			t.Fatalf("expected no error for empty context, got %v", err)
		}
		if result.Success {
			t.Error("expected unsuccessful result for empty context")
		}
	})

	t.Run("Reports configured model", func(t *testing.T) {
		if client.ModelName() != "vi-mrc-large" {
			t.Errorf("model = %q", client.ModelName())
		}
	})
}

func TestClient_BackendErrors(t *testing.T) {
	t.Run("Non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(&common.ExtractiveConfig{BaseURL: server.URL, Timeout: "5s"}, common.GetLogger())
		if _, err := client.AnswerQuestion(context.Background(), "q", "c"); err == nil {
			t.Error("expected error for 503 response")
		}
	})

	t.Run("Unreachable backend is an error", func(t *testing.T) {
		client := NewClient(&common.ExtractiveConfig{BaseURL: "http://127.0.0.1:1", Timeout: "1s"}, common.GetLogger())
		if _, err := client.AnswerQuestion(context.Background(), "q", "c"); err == nil {
			t.Error("expected error for unreachable backend")
		}
	})
}

func TestClient_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(&common.ExtractiveConfig{BaseURL: server.URL, Timeout: "5s"}, common.GetLogger())
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}
