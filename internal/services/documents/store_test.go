package documents

import (
	"path/filepath"
	"testing"

	"github.com/ternarybob/hoidap/internal/common"
	"github.com/ternarybob/hoidap/internal/models"
	"github.com/ternarybob/hoidap/internal/services/lexicon"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := &common.StoreConfig{
		IndexFile:     filepath.Join(t.TempDir(), "document_index.json"),
		MinSimilarity: 0.1,
	}
	return NewStore(cfg, lexicon.New(), common.GetLogger()).(*Store)
}

func TestStore_AddAndSearchRoundTrip(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.Add("Doanh thu quý 1 là 500 tỷ đồng, tăng 20% so với cùng kỳ", map[string]interface{}{"source": "report"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if doc.ID == "" {
		t.Fatal("expected generated document ID")
	}

	results := store.Search(doc.Content, 1)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != doc.ID {
		t.Errorf("expected top result %s, got %s", doc.ID, results[0].ID)
	}
	if results[0].SimilarityScore() <= 0.1 {
		t.Errorf("expected similarity above floor, got %f", results[0].SimilarityScore())
	}
}

func TestStore_AddRejectsEmptyContent(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Add("", nil); err == nil {
		t.Error("expected error for empty content")
	}
	if _, err := store.Add("   ", nil); err == nil {
		t.Error("expected error for whitespace-only content")
	}
	if store.Count() != 0 {
		t.Errorf("expected empty store, got %d documents", store.Count())
	}
}

func TestStore_SearchRelevanceFloor(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Add("Công ty sản xuất gạo xuất khẩu sang châu Âu", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// No term overlap at all: must return empty rather than noise
	results := store.Search("weather forecast tomorrow", 5)
	if len(results) != 0 {
		t.Errorf("expected no results for unrelated query, got %d", len(results))
	}

	// Every returned result must clear the floor
	for _, doc := range store.Search("gạo xuất khẩu", 5) {
		if doc.SimilarityScore() <= 0.1 {
			t.Errorf("result %s has similarity %f at or below floor", doc.ID, doc.SimilarityScore())
		}
	}
}

func TestStore_SearchRespectsTopKAndDistinct(t *testing.T) {
	store := newTestStore(t)

	contents := []string{
		"Báo cáo doanh thu tháng một của công ty",
		"Báo cáo doanh thu tháng hai của công ty",
		"Báo cáo doanh thu tháng ba của công ty",
		"Báo cáo doanh thu tháng tư của công ty",
	}
	for _, c := range contents {
		if _, err := store.Add(c, nil); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	results := store.Search("báo cáo doanh thu", 2)
	if len(results) > 2 {
		t.Fatalf("expected at most 2 results, got %d", len(results))
	}
	seen := map[string]bool{}
	for _, doc := range results {
		if seen[doc.ID] {
			t.Errorf("document %s returned twice", doc.ID)
		}
		seen[doc.ID] = true
	}
}

func TestStore_SearchEmptyCollection(t *testing.T) {
	store := newTestStore(t)
	if results := store.Search("bất kỳ", 3); len(results) != 0 {
		t.Errorf("expected no results from empty store, got %d", len(results))
	}
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.Add("Quy trình phê duyệt chi phí nội bộ", nil)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	t.Run("Unknown id returns false, size unchanged", func(t *testing.T) {
		before := store.Count()
		if store.Delete("doc_unknown") {
			t.Error("expected false for unknown id")
		}
		if store.Count() != before {
			t.Errorf("collection size changed from %d to %d", before, store.Count())
		}
	})

	t.Run("Known id removed from collection and search", func(t *testing.T) {
		if !store.Delete(doc.ID) {
			t.Fatal("expected true for known id")
		}
		if store.Count() != 0 {
			t.Errorf("expected empty store, got %d documents", store.Count())
		}
		if results := store.Search("quy trình phê duyệt", 3); len(results) != 0 {
			t.Errorf("deleted document still returned by search")
		}
	})
}

func TestStore_KeywordSearch(t *testing.T) {
	store := newTestStore(t)

	// 5 documents, 3 containing "gạo" at different densities
	contents := []string{
		"gạo thơm",
		"Công ty xuất khẩu gạo và nông sản sang thị trường châu Âu từ năm ngoái",
		"Giá gạo tăng nhẹ trong quý này",
		"Thị trường chứng khoán biến động mạnh",
		"Ngân hàng điều chỉnh lãi suất cho vay",
	}
	ids := make([]string, len(contents))
	for i, c := range contents {
		doc, err := store.Add(c, nil)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		ids[i] = doc.ID
	}

	results := store.KeywordSearch([]string{"gạo"}, 3)
	if len(results) != 3 {
		t.Fatalf("expected exactly 3 results, got %d", len(results))
	}

	// Descending match density: the two-word document ranks first
	if results[0].ID != ids[0] {
		t.Errorf("expected densest document first, got %s", results[0].ID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].SimilarityScore() > results[i-1].SimilarityScore() {
			t.Errorf("results not ordered by descending density at position %d", i)
		}
	}
	for _, doc := range results {
		if doc.SimilarityScore() <= 0 {
			t.Errorf("zero-score document %s returned", doc.ID)
		}
	}
}

func TestStore_KeywordSearchWholeWord(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Add("Những chiếc lá rơi trên đường", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// "lá" must not match inside "là" or partial words
	results := store.KeywordSearch([]string{"lạ"}, 3)
	if len(results) != 0 {
		t.Errorf("expected no whole-word matches, got %d", len(results))
	}
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := &common.StoreConfig{
		IndexFile:     filepath.Join(dir, "document_index.json"),
		MinSimilarity: 0.1,
	}
	lex := lexicon.New()

	store := NewStore(cfg, lex, common.GetLogger()).(*Store)
	doc, err := store.Add("Hạn mức tín dụng được quy định theo từng khách hàng", map[string]interface{}{"source": "policy"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// A fresh store over the same file sees the persisted collection
	reopened := NewStore(cfg, lex, common.GetLogger()).(*Store)
	if reopened.Count() != 1 {
		t.Fatalf("expected 1 persisted document, got %d", reopened.Count())
	}
	loaded := reopened.Get(doc.ID)
	if loaded == nil {
		t.Fatal("persisted document not found by id")
	}
	if loaded.Content != doc.Content {
		t.Errorf("content mismatch after reload")
	}
	if loaded.Metadata["source"] != "policy" {
		t.Errorf("metadata lost after reload")
	}

	// Index is rebuilt on load
	if results := reopened.Search("hạn mức tín dụng", 1); len(results) != 1 {
		t.Errorf("expected search to work on reloaded store, got %d results", len(results))
	}
}

func TestStore_AddBatch(t *testing.T) {
	store := newTestStore(t)

	added, err := store.AddBatch([]models.Document{
		{Content: "Tài liệu một"},
		{Content: ""},
		{Content: "Tài liệu hai", Metadata: map[string]interface{}{"k": "v"}},
	})
	if err != nil {
		t.Fatalf("AddBatch failed: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 added, got %d", added)
	}
	if store.Count() != 2 {
		t.Errorf("expected 2 documents, got %d", store.Count())
	}
}
