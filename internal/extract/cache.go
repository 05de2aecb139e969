package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/Veraticus/show-me-the-data/internal/common"
	"github.com/Veraticus/show-me-the-data/internal/model"
)

// maxCacheEntries bounds the cache; expired entries are pruned when it fills.
const maxCacheEntries = 1024

type cacheEntry struct {
	expiry     time.Time
	extraction Extraction
}

// extractionCache remembers successful extractions of identical text so a
// resubmitted message does not cost another model call.
type extractionCache struct {
	next    Extractor
	entries map[string]cacheEntry
	now     func() time.Time
	ttl     time.Duration
	mu      sync.Mutex
}

// WithCache caches ex's successful results for ttl, keyed by category and text.
func WithCache(ex Extractor, ttl time.Duration) Extractor {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &extractionCache{
		next:    ex,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
		ttl:     ttl,
	}
}

func (c *extractionCache) Name() string {
	return c.next.Name()
}

func (c *extractionCache) Extract(ctx context.Context, category model.Category, text string) (Extraction, error) {
	key := cacheKey(category, text)
	if ex, ok := c.get(key); ok {
		common.LogDebug("extraction cache hit", common.Fields{
			"extractor": c.next.Name(),
			"category":  string(category),
		})
		return ex, nil
	}

	ex, err := c.next.Extract(ctx, category, text)
	if err != nil {
		return Extraction{}, err
	}
	c.set(key, ex)
	return ex, nil
}

func (c *extractionCache) get(key string) (Extraction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return Extraction{}, false
	}
	if c.now().After(entry.expiry) {
		delete(c.entries, key)
		return Extraction{}, false
	}
	return entry.extraction, true
}

func (c *extractionCache) set(key string, ex Extraction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.entries) >= maxCacheEntries {
		for k, entry := range c.entries {
			if now.After(entry.expiry) {
				delete(c.entries, k)
			}
		}
	}
	if len(c.entries) >= maxCacheEntries {
		// Still full of live entries: start over.
		c.entries = make(map[string]cacheEntry)
	}

	c.entries[key] = cacheEntry{
		extraction: ex,
		expiry:     now.Add(c.ttl),
	}
}

func (c *extractionCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cacheKey(category model.Category, text string) string {
	sum := sha256.Sum256([]byte(string(category) + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
