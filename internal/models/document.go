package models

import (
	"time"
)

// MetaSimilarityScore is the metadata key under which search results carry
// their relevance score. The score is transient: it is attached to the copy
// returned by a search, never persisted.
const MetaSimilarityScore = "similarity_score"

// Document represents a short text document held in the store.
type Document struct {
	// Identity
	ID string `json:"id"` // doc_{uuid}

	// Content
	Content string `json:"content"`

	// Metadata holds arbitrary annotations (provenance tags, transient scores)
	Metadata map[string]interface{} `json:"metadata"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WithScore returns a copy of the document carrying a similarity score in its
// metadata. The original document's metadata is not modified.
func (d *Document) WithScore(score float64) *Document {
	meta := make(map[string]interface{}, len(d.Metadata)+1)
	for k, v := range d.Metadata {
		meta[k] = v
	}
	meta[MetaSimilarityScore] = score

	return &Document{
		ID:        d.ID,
		Content:   d.Content,
		Metadata:  meta,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// SimilarityScore returns the transient score attached by a search, or 0 if
// the document did not come from a search result.
func (d *Document) SimilarityScore() float64 {
	if d.Metadata == nil {
		return 0
	}
	switch v := d.Metadata[MetaSimilarityScore].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	default:
		return 0
	}
}

// DocumentStats represents statistics about the document collection
type DocumentStats struct {
	TotalDocuments     int       `json:"total_documents"`
	VocabularySize     int       `json:"vocabulary_size"`
	AverageContentSize int       `json:"average_content_size"`
	LastUpdated        time.Time `json:"last_updated"`
}
