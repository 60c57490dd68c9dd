package documents

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/hoidap/internal/common"
	"github.com/ternarybob/hoidap/internal/interfaces"
	"github.com/ternarybob/hoidap/internal/models"
	"github.com/ternarybob/hoidap/internal/services/lexicon"
)

// Store owns the document collection and its term-weight index.
//
// Mutations (Add, AddBatch, Delete) are serialized by a write lock: each one
// updates the collection, rebuilds the index synchronously and rewrites the
// persistence file before returning, so callers never observe a stale index.
// Reads (Search, KeywordSearch, Get) take the read lock and are safe to run
// concurrently against a stable collection.
type Store struct {
	mu        sync.RWMutex
	docs      []*models.Document // insertion order; search ties break by this order
	byID      map[string]*models.Document
	index     *termIndex // nil while the collection is empty
	lex       *lexicon.Lexicon
	indexFile string
	minScore  float64
	logger    arbor.ILogger
}

// NewStore creates the store and loads any persisted collection. A read
// failure at startup is logged and treated as an empty store.
func NewStore(cfg *common.StoreConfig, lex *lexicon.Lexicon, logger arbor.ILogger) interfaces.DocumentService {
	s := &Store{
		byID:      make(map[string]*models.Document),
		lex:       lex,
		indexFile: cfg.IndexFile,
		minScore:  cfg.MinSimilarity,
		logger:    logger,
	}
	s.load()
	return s
}

// load reads the persisted collection and rebuilds the index.
func (s *Store) load() {
	data, err := os.ReadFile(s.indexFile)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error().Err(err).Str("file", s.indexFile).Msg("Failed to read document index, starting empty")
		}
		return
	}

	var docs []*models.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		s.logger.Error().Err(err).Str("file", s.indexFile).Msg("Failed to parse document index, starting empty")
		return
	}

	for _, doc := range docs {
		if doc.ID == "" || doc.Content == "" {
			continue
		}
		s.docs = append(s.docs, doc)
		s.byID[doc.ID] = doc
	}
	s.rebuildIndex()

	s.logger.Info().
		Int("documents", len(s.docs)).
		Str("file", s.indexFile).
		Msg("Loaded document collection")
}

// persist rewrites the full collection to the index file. Write failures are
// logged and do not roll back the in-memory mutation; the next successful
// mutation reconverges disk with memory.
func (s *Store) persist() {
	if err := os.MkdirAll(filepath.Dir(s.indexFile), 0755); err != nil {
		s.logger.Error().Err(err).Str("file", s.indexFile).Msg("Failed to create index directory")
		return
	}

	data, err := json.MarshalIndent(s.docs, "", "  ")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to marshal document collection")
		return
	}

	if err := os.WriteFile(s.indexFile, data, 0644); err != nil {
		s.logger.Error().Err(err).Str("file", s.indexFile).Msg("Failed to write document index")
		return
	}

	s.logger.Debug().
		Int("documents", len(s.docs)).
		Msg("Persisted document collection")
}

// rebuildIndex recomputes the term-weight matrix from the current collection.
// Caller must hold the write lock.
func (s *Store) rebuildIndex() {
	if len(s.docs) == 0 {
		s.index = nil
		return
	}
	contents := make([]string, len(s.docs))
	for i, doc := range s.docs {
		contents[i] = doc.Content
	}
	s.index = buildTermIndex(contents)
}

// Add implements interfaces.DocumentService
func (s *Store) Add(content string, metadata map[string]interface{}) (*models.Document, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("document content must not be empty")
	}

	now := time.Now()
	doc := &models.Document{
		ID:        common.NewDocumentID(),
		Content:   content,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Metadata == nil {
		doc.Metadata = map[string]interface{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = append(s.docs, doc)
	s.byID[doc.ID] = doc
	s.rebuildIndex()
	s.persist()

	s.logger.Info().
		Str("doc_id", doc.ID).
		Int("total", len(s.docs)).
		Msg("Document added")

	return doc, nil
}

// AddBatch implements interfaces.DocumentService
func (s *Store) AddBatch(docs []models.Document) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	now := time.Now()
	for _, in := range docs {
		if strings.TrimSpace(in.Content) == "" {
			continue
		}
		doc := &models.Document{
			ID:        common.NewDocumentID(),
			Content:   in.Content,
			Metadata:  in.Metadata,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if doc.Metadata == nil {
			doc.Metadata = map[string]interface{}{}
		}
		s.docs = append(s.docs, doc)
		s.byID[doc.ID] = doc
		added++
	}

	if added > 0 {
		s.rebuildIndex()
		s.persist()
	}

	s.logger.Info().
		Int("added", added).
		Int("total", len(s.docs)).
		Msg("Documents added in batch")

	return added, nil
}

// Get implements interfaces.DocumentService
func (s *Store) Get(id string) *models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// Delete implements interfaces.DocumentService
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, doc := range s.docs {
		if doc.ID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			break
		}
	}
	s.rebuildIndex()
	s.persist()

	s.logger.Info().
		Str("doc_id", id).
		Int("total", len(s.docs)).
		Msg("Document deleted")

	return true
}

// Search implements interfaces.DocumentService
func (s *Store) Search(query string, topK int) []*models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index == nil || topK <= 0 {
		return nil
	}

	queryVec := s.index.queryVector(query)
	scores := s.index.similarities(queryVec)

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	// Stable sort: ties break by collection order
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	results := make([]*models.Document, 0, topK)
	for _, idx := range order {
		if len(results) == topK {
			break
		}
		// Relevance floor: queries with no real overlap return empty rather
		// than noise
		if scores[idx] <= s.minScore {
			break
		}
		results = append(results, s.docs[idx].WithScore(scores[idx]))
	}
	return results
}

// KeywordSearch implements interfaces.DocumentService
func (s *Store) KeywordSearch(keywords []string, topK int) []*models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.docs) == 0 || len(keywords) == 0 || topK <= 0 {
		return nil
	}

	pattern, err := keywordPattern(keywords)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to compile keyword pattern")
		return nil
	}

	type scored struct {
		doc   *models.Document
		score float64
	}
	var results []scored
	for _, doc := range s.docs {
		matches := 0
		for _, tok := range tokensWithShort(doc.Content) {
			if pattern.MatchString(tok) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		// Match density, not absolute count: a short document with one
		// relevant hit outranks a long document with the same hit count
		wordCount := len(strings.Fields(doc.Content))
		if wordCount == 0 {
			continue
		}
		score := float64(matches) / float64(wordCount)
		results = append(results, scored{doc: doc.WithScore(score), score: score})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].score > results[b].score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	out := make([]*models.Document, len(results))
	for i, r := range results {
		out[i] = r.doc
	}
	return out
}

// Count implements interfaces.DocumentService
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Stats implements interfaces.DocumentService
func (s *Store) Stats() *models.DocumentStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.DocumentStats{
		TotalDocuments: len(s.docs),
		LastUpdated:    time.Now(),
	}
	if s.index != nil {
		stats.VocabularySize = len(s.index.vocab)
	}
	if len(s.docs) > 0 {
		total := 0
		for _, doc := range s.docs {
			total += len(doc.Content)
		}
		stats.AverageContentSize = total / len(s.docs)
	}
	return stats
}

// keywordPattern builds a whole-word, case-insensitive alternation matched
// against individual tokens. Token-level anchoring keeps word boundaries
// correct for Vietnamese text, where \b misfires on non-ASCII letters.
func keywordPattern(keywords []string) (*regexp.Regexp, error) {
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(kw))
	}
	if len(quoted) == 0 {
		return nil, fmt.Errorf("no usable keywords")
	}
	return regexp.Compile(`(?i)^(` + strings.Join(quoted, "|") + `)$`)
}

// shortTokenPattern matches single-character tokens too; keyword matching
// must see every word, unlike the index which drops one-letter tokens.
var shortTokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

func tokensWithShort(text string) []string {
	return shortTokenPattern.FindAllString(text, -1)
}
