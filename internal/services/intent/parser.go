package intent

import (
	"encoding/json"
	"strings"

	"github.com/ternarybob/hoidap/internal/models"
)

// ParseIntent extracts an Intent from free-form model output. It never
// fails: every parsing problem degrades to an UNKNOWN intent with zero
// confidence.
//
// Recovery is two-stage. First the text is cleaned of a leading fenced code
// block and parsed strictly; if that fails, the substring between the first
// '{' and the last '}' is parsed instead. Fields missing from otherwise valid
// JSON are auto-filled with defaults.
func ParseIntent(responseText string) *models.Intent {
	cleaned := stripCodeFence(responseText)

	if intent, ok := parseJSON(cleaned); ok {
		return intent
	}

	// Bracket-scan recovery: prose around an embedded JSON object
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start != -1 && end > start {
		if intent, ok := parseJSON(cleaned[start : end+1]); ok {
			return intent
		}
	}

	return models.UnknownIntent("response is not valid JSON")
}

// rawIntent distinguishes absent fields from zero values so defaults can be
// applied per field.
type rawIntent struct {
	IntentType      *string                  `json:"intent_type"`
	ConfidenceScore *float64                 `json:"confidence_score"`
	TimeInfo        *models.TimeInfo         `json:"time_info"`
	Parameters      *models.IntentParameters `json:"parameters"`
}

func parseJSON(text string) (*models.Intent, bool) {
	var raw rawIntent
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, false
	}

	intent := &models.Intent{
		IntentType:      models.IntentUnknown,
		ConfidenceScore: 0.5,
		TimeInfo:        raw.TimeInfo,
	}

	if raw.IntentType != nil {
		switch models.IntentType(*raw.IntentType) {
		case models.IntentInformationRetrieval:
			intent.IntentType = models.IntentInformationRetrieval
		case models.IntentQuestionAnswering:
			intent.IntentType = models.IntentQuestionAnswering
		}
	}
	if raw.ConfidenceScore != nil {
		intent.ConfidenceScore = *raw.ConfidenceScore
	}
	if raw.Parameters != nil {
		intent.Parameters = *raw.Parameters
	}

	return intent, true
}

// stripCodeFence removes a leading/trailing fenced code block if present. If
// no closing fence is found, everything after the opener is taken.
func stripCodeFence(text string) string {
	for _, opener := range []string{"```json", "```"} {
		idx := strings.Index(text, opener)
		if idx == -1 {
			continue
		}
		inner := text[idx+len(opener):]
		if end := strings.Index(inner, "```"); end != -1 {
			inner = inner[:end]
		}
		return strings.TrimSpace(inner)
	}
	return strings.TrimSpace(text)
}
