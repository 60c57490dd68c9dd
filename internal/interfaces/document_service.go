package interfaces

import (
	"github.com/ternarybob/hoidap/internal/models"
)

// DocumentService defines the interface for the document store: a single
// in-process collection with a term-weight index rebuilt synchronously on
// every mutation. Mutations are serialized internally; concurrent reads
// against a stable collection are safe.
type DocumentService interface {
	// Add inserts a new document, rebuilds the index and persists the
	// collection. Content must be non-empty.
	Add(content string, metadata map[string]interface{}) (*models.Document, error)

	// AddBatch inserts multiple documents, rebuilding the index and
	// persisting once. Entries with empty content are skipped. Returns the
	// number of documents added.
	AddBatch(docs []models.Document) (int, error)

	// Get returns the document with the given id, or nil if unknown.
	Get(id string) *models.Document

	// Delete removes a document. Returns false if the id is unknown.
	Delete(id string) bool

	// Search returns up to topK documents ranked by cosine similarity of
	// term-weight vectors, most relevant first. Results with similarity at
	// or below the relevance floor are dropped. Each result carries its
	// score in metadata["similarity_score"].
	Search(query string, topK int) []*models.Document

	// KeywordSearch returns up to topK documents ranked by whole-word match
	// density (matches per document word), descending. Documents with no
	// matches are dropped.
	KeywordSearch(keywords []string, topK int) []*models.Document

	// Count returns the number of documents in the collection.
	Count() int

	// Stats returns collection statistics.
	Stats() *models.DocumentStats
}
