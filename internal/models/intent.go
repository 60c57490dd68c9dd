package models

// IntentType classifies the purpose of a query.
type IntentType string

const (
	// IntentInformationRetrieval means the user wants to locate specific data
	IntentInformationRetrieval IntentType = "INFORMATION_RETRIEVAL"
	// IntentQuestionAnswering means the user is asking a question that needs
	// an explanation or analysis
	IntentQuestionAnswering IntentType = "QUESTION_ANSWERING"
	// IntentUnknown is returned when classification failed or was ambiguous
	IntentUnknown IntentType = "UNKNOWN"
)

// TimeInfo carries any time range the query referred to.
type TimeInfo struct {
	FromDate string `json:"from_date,omitempty"` // dd/MM/yyyy
	ToDate   string `json:"to_date,omitempty"`   // dd/MM/yyyy
	TimeType string `json:"time_type,omitempty"` // "specific", "range" or "none"
	Quarter  string `json:"quarter,omitempty"`   // Q1..Q4
	Year     string `json:"year,omitempty"`
}

// IntentParameters is the type-dependent parameter bag of an intent.
// Retrieval intents populate SearchKeywords and Filters; question-answering
// intents populate QuestionType, Entities and Context.
type IntentParameters struct {
	SearchKeywords []string `json:"search_keywords,omitempty"`
	Filters        []string `json:"filters,omitempty"`
	QuestionType   string   `json:"question_type,omitempty"` // what/why/how...
	Entities       []string `json:"entities,omitempty"`
	Context        string   `json:"context,omitempty"`
}

// Intent is the structured classification of a query. It is computed per
// request and never persisted.
type Intent struct {
	IntentType      IntentType       `json:"intent_type"`
	ConfidenceScore float64          `json:"confidence_score"`
	TimeInfo        *TimeInfo        `json:"time_info,omitempty"`
	Parameters      IntentParameters `json:"parameters"`
	Error           string           `json:"error,omitempty"` // diagnostic only, set on degraded results
}

// UnknownIntent returns the degraded intent used when every classification
// path failed. Callers receive this instead of an error.
func UnknownIntent(reason string) *Intent {
	return &Intent{
		IntentType:      IntentUnknown,
		ConfidenceScore: 0,
		Error:           reason,
	}
}
