package lexicon

import (
	"regexp"
	"sort"
	"strings"
)

// QuestionType is the coarse classification of a question.
type QuestionType string

const (
	// QuestionTypeFactual covers direct fact lookups, answered best by an
	// extractive model anchored in a context passage
	QuestionTypeFactual QuestionType = "factual"
	// QuestionTypeAnalytical covers questions needing explanation or
	// analysis, answered best by a generative model
	QuestionTypeAnalytical QuestionType = "analytical"
)

// Lexicon holds the keyword lists shared by question classification and
// keyword extraction. One instance is passed by reference to every component
// that needs it, so classification and extraction stay consistent.
type Lexicon struct {
	factualCues    []string
	analyticalCues []string
	definitionCues []string
	stopWords      map[string]struct{}
}

// Vietnamese cue words. The factual and analytical lists are disjoint; the
// definition cues force "what is X" phrasings to factual regardless of other
// matches.
var (
	defaultFactualCues = []string{
		"bao nhiêu", "khi nào", "ở đâu", "là gì", "ai", "số tiền",
		"tỷ lệ", "doanh thu", "chi phí", "quy định", "thời hạn",
		"hạn mức", "qui trình", "cách", "làm thế nào để", "định nghĩa",
	}

	defaultAnalyticalCues = []string{
		"tại sao", "giải thích", "phân tích", "đánh giá",
		"so sánh", "tốt hay xấu", "nên", "có nên",
		"lợi ích", "hạn chế", "ảnh hưởng", "dự đoán",
	}

	defaultDefinitionCues = []string{"là gì", "định nghĩa", "khái niệm"}

	defaultStopWords = []string{
		"và", "hay", "hoặc", "là", "của", "mà", "trong", "có", "được", "không",
		"những", "các", "với", "để", "cho", "về", "vì", "nhưng", "bởi", "bởi vì",
		"nên", "theo", "từ", "như", "thì", "khi", "vậy", "vào", "ra",
	}
)

// New returns a lexicon with the default Vietnamese cue lists.
func New() *Lexicon {
	stop := make(map[string]struct{}, len(defaultStopWords))
	for _, w := range defaultStopWords {
		stop[w] = struct{}{}
	}
	return &Lexicon{
		factualCues:    defaultFactualCues,
		analyticalCues: defaultAnalyticalCues,
		definitionCues: defaultDefinitionCues,
		stopWords:      stop,
	}
}

// shortQuestionWords is the tie-break length: questions shorter than this are
// assumed factual.
const shortQuestionWords = 10

// ClassifyQuestion maps a question to factual or analytical.
//
// Definition-style questions ("X là gì?") are forced to factual. Otherwise the
// category with more cue-word hits wins; an exact tie falls back to a length
// heuristic.
func (l *Lexicon) ClassifyQuestion(question string) QuestionType {
	questionLower := strings.ToLower(question)

	for _, cue := range l.definitionCues {
		if strings.Contains(questionLower, cue) {
			return QuestionTypeFactual
		}
	}

	factualCount := 0
	for _, cue := range l.factualCues {
		if strings.Contains(questionLower, cue) {
			factualCount++
		}
	}
	analyticalCount := 0
	for _, cue := range l.analyticalCues {
		if strings.Contains(questionLower, cue) {
			analyticalCount++
		}
	}

	switch {
	case factualCount > analyticalCount:
		return QuestionTypeFactual
	case analyticalCount > factualCount:
		return QuestionTypeAnalytical
	default:
		if len(strings.Fields(question)) < shortQuestionWords {
			return QuestionTypeFactual
		}
		return QuestionTypeAnalytical
	}
}

// wordPattern matches runs of Latin and Vietnamese letters.
var wordPattern = regexp.MustCompile(`[a-zA-ZÀ-ỹ]+`)

// maxKeywords caps ExtractKeywords output.
const maxKeywords = 10

// ExtractKeywords returns up to 10 keywords from the text, highest frequency
// first, after dropping stop words and tokens of length <= 2. This is a cheap
// corpus-independent extractor used when the caller has nothing better to
// filter on.
func (l *Lexicon) ExtractKeywords(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	order := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := l.stopWords[w]; stop {
			continue
		}
		if len([]rune(w)) <= 2 {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	// Stable sort keeps first-seen order among equal frequencies
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}
