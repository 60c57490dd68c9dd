// Package cache provides a bounded answer cache for the transport layer.
// The answering core is cache-free; callers that want memoization own one of
// these and decide when to consult it.
package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/hoidap/internal/models"
)

// Service is a bounded query-to-result cache. Keys are normalized queries
// (lowercased, whitespace-collapsed). Eviction policy: entries expire after
// the configured TTL, and when the entry count exceeds the configured
// maximum the least recently used entry is dropped.
type Service struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
	ttl        time.Duration
	logger     arbor.ILogger
}

type entry struct {
	key      string
	result   *models.AnswerResult
	storedAt time.Time
}

// NewService creates an answer cache. maxEntries must be positive; ttl of
// zero means entries never expire by age.
func NewService(maxEntries int, ttl time.Duration, logger arbor.ILogger) *Service {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &Service{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		ttl:        ttl,
		logger:     logger,
	}
}

// NormalizeKey maps a raw query to its cache key.
func NormalizeKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Get returns the cached result for a query, or nil on miss or expiry.
func (s *Service) Get(query string) *models.AnswerResult {
	key := NormalizeKey(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.entries[key]
	if !ok {
		return nil
	}

	e := elem.Value.(*entry)
	if s.ttl > 0 && time.Since(e.storedAt) > s.ttl {
		s.order.Remove(elem)
		delete(s.entries, key)
		return nil
	}

	s.order.MoveToFront(elem)
	return e.result
}

// Set stores a result for a query, evicting the least recently used entry
// when the cache is full. Error-sourced results are not cached.
func (s *Service) Set(query string, result *models.AnswerResult) {
	if result == nil || result.Source == models.AnswerSourceError {
		return
	}
	key := NormalizeKey(query)
	if key == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.entries[key]; ok {
		elem.Value.(*entry).result = result
		elem.Value.(*entry).storedAt = time.Now()
		s.order.MoveToFront(elem)
		return
	}

	s.entries[key] = s.order.PushFront(&entry{key: key, result: result, storedAt: time.Now()})

	if s.order.Len() > s.maxEntries {
		oldest := s.order.Back()
		if oldest != nil {
			evicted := oldest.Value.(*entry)
			s.order.Remove(oldest)
			delete(s.entries, evicted.key)
			s.logger.Debug().Str("key", evicted.key).Msg("Evicted oldest cache entry")
		}
	}
}

// Len returns the number of live entries.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Clear drops every entry.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*list.Element)
	s.order.Init()
}
