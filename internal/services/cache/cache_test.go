package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/ternarybob/hoidap/internal/common"
	"github.com/ternarybob/hoidap/internal/models"
)

func answer(text string) *models.AnswerResult {
	return &models.AnswerResult{Answer: text, Source: models.AnswerSourceGenerative}
}

func TestCacheNormalizedKeys(t *testing.T) {
	c := NewService(10, time.Minute, common.GetLogger())

	c.Set("Doanh thu   quý 1?", answer("500 tỷ"))

	if got := c.Get("doanh thu quý 1?"); got == nil || got.Answer != "500 tỷ" {
		t.Errorf("Get with different casing/spacing = %v, want hit", got)
	}
}

func TestCacheMiss(t *testing.T) {
	c := NewService(10, time.Minute, common.GetLogger())

	if got := c.Get("chưa có"); got != nil {
		t.Errorf("Get on empty cache = %v, want nil", got)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := NewService(10, 10*time.Millisecond, common.GetLogger())

	c.Set("câu hỏi", answer("trả lời"))
	time.Sleep(20 * time.Millisecond)

	if got := c.Get("câu hỏi"); got != nil {
		t.Errorf("Get after TTL = %v, want nil", got)
	}
	if c.Len() != 0 {
		t.Errorf("Len after expiry read = %d, want 0", c.Len())
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewService(3, time.Minute, common.GetLogger())

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("câu %d", i), answer(fmt.Sprintf("trả lời %d", i)))
	}

	// Touch entry 0 so entry 1 becomes the eviction candidate
	c.Get("câu 0")
	c.Set("câu 3", answer("trả lời 3"))

	if c.Len() != 3 {
		t.Fatalf("Len = %d, want bounded at 3", c.Len())
	}
	if c.Get("câu 1") != nil {
		t.Error("least recently used entry should have been evicted")
	}
	if c.Get("câu 0") == nil || c.Get("câu 3") == nil {
		t.Error("recently used entries should survive eviction")
	}
}

func TestCacheSkipsErrorResults(t *testing.T) {
	c := NewService(10, time.Minute, common.GetLogger())

	c.Set("câu hỏi", &models.AnswerResult{Answer: "lỗi", Source: models.AnswerSourceError})

	if c.Get("câu hỏi") != nil {
		t.Error("error-sourced results must not be cached")
	}
}

func TestCacheClear(t *testing.T) {
	c := NewService(10, time.Minute, common.GetLogger())

	c.Set("a", answer("1"))
	c.Set("b", answer("2"))
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
}
