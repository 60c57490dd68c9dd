package intent

import (
	"testing"

	"github.com/ternarybob/hoidap/internal/models"
)

func TestParseIntentCleanJSON(t *testing.T) {
	intent := ParseIntent(`{
		"intent_type": "INFORMATION_RETRIEVAL",
		"confidence_score": 0.96,
		"parameters": {
			"search_keywords": ["laptop", "NVIDIA"],
			"filters": ["giá < 15000000"]
		}
	}`)

	if intent.IntentType != models.IntentInformationRetrieval {
		t.Errorf("intent_type = %q, want INFORMATION_RETRIEVAL", intent.IntentType)
	}
	if intent.ConfidenceScore != 0.96 {
		t.Errorf("confidence = %v, want 0.96", intent.ConfidenceScore)
	}
	if len(intent.Parameters.SearchKeywords) != 2 {
		t.Errorf("search_keywords = %v, want 2 entries", intent.Parameters.SearchKeywords)
	}
}

func TestParseIntentFencedBlock(t *testing.T) {
	intent := ParseIntent("```json\n{\"intent_type\": \"QUESTION_ANSWERING\", \"confidence_score\": 0.9}\n```")

	if intent.IntentType != models.IntentQuestionAnswering {
		t.Errorf("intent_type = %q, want QUESTION_ANSWERING", intent.IntentType)
	}
	if intent.ConfidenceScore != 0.9 {
		t.Errorf("confidence = %v, want 0.9", intent.ConfidenceScore)
	}
}

func TestParseIntentUnclosedFence(t *testing.T) {
	intent := ParseIntent("```json\n{\"intent_type\": \"QUESTION_ANSWERING\", \"confidence_score\": 0.8}")

	if intent.IntentType != models.IntentQuestionAnswering {
		t.Errorf("intent_type = %q, want QUESTION_ANSWERING", intent.IntentType)
	}
}

func TestParseIntentEmbeddedInProse(t *testing.T) {
	// Deliberately malformed response: explanation around a fenced object
	response := "Dưới đây là kết quả phân tích của tôi:\n\n```json\n" +
		`{"intent_type": "INFORMATION_RETRIEVAL", "confidence_score": 0.88, "parameters": {"entities": ["MacBook"]}}` +
		"\n```\nHy vọng kết quả này hữu ích."

	intent := ParseIntent(response)

	if intent.IntentType != models.IntentInformationRetrieval {
		t.Errorf("intent_type = %q, want INFORMATION_RETRIEVAL", intent.IntentType)
	}
	if intent.ConfidenceScore != 0.88 {
		t.Errorf("confidence = %v, want 0.88", intent.ConfidenceScore)
	}
	if len(intent.Parameters.Entities) != 1 || intent.Parameters.Entities[0] != "MacBook" {
		t.Errorf("entities = %v, want [MacBook]", intent.Parameters.Entities)
	}
}

func TestParseIntentBraceScanRecovery(t *testing.T) {
	// No fence at all, just prose wrapping the object
	intent := ParseIntent(`Kết quả: {"intent_type": "QUESTION_ANSWERING", "confidence_score": 0.75} - hết.`)

	if intent.IntentType != models.IntentQuestionAnswering {
		t.Errorf("intent_type = %q, want QUESTION_ANSWERING", intent.IntentType)
	}
}

func TestParseIntentMissingFieldDefaults(t *testing.T) {
	intent := ParseIntent(`{"parameters": {"context": "so sánh"}}`)

	if intent.IntentType != models.IntentUnknown {
		t.Errorf("intent_type = %q, want UNKNOWN default", intent.IntentType)
	}
	if intent.ConfidenceScore != 0.5 {
		t.Errorf("confidence = %v, want 0.5 default", intent.ConfidenceScore)
	}
	if intent.Parameters.Context != "so sánh" {
		t.Errorf("context = %q, want preserved", intent.Parameters.Context)
	}
}

func TestParseIntentInvalidEnumValue(t *testing.T) {
	intent := ParseIntent(`{"intent_type": "CHITCHAT", "confidence_score": 0.99}`)

	if intent.IntentType != models.IntentUnknown {
		t.Errorf("intent_type = %q, want UNKNOWN for unrecognized value", intent.IntentType)
	}
}

func TestParseIntentGarbage(t *testing.T) {
	for _, text := range []string{"", "not json at all", "{broken", "}{"} {
		intent := ParseIntent(text)
		if intent == nil {
			t.Fatalf("ParseIntent(%q) returned nil", text)
		}
		if intent.IntentType != models.IntentUnknown {
			t.Errorf("ParseIntent(%q).IntentType = %q, want UNKNOWN", text, intent.IntentType)
		}
		if intent.ConfidenceScore != 0 {
			t.Errorf("ParseIntent(%q).ConfidenceScore = %v, want 0", text, intent.ConfidenceScore)
		}
		if intent.Error == "" {
			t.Errorf("ParseIntent(%q) should carry a diagnostic error", text)
		}
	}
}
