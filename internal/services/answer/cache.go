// cache.go is an in-process answer cache.
//
// Repeating a question about the same document returns the stored answer
// without another provider call, and without consuming trial quota.
package answer

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// Cache stores recent answers keyed by document + question.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	answer    string
	modelUsed string
	storedAt  time.Time
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}

	// Background sweep so abandoned sessions don't pin memory forever.
	go c.cleanup()

	return c
}

// Key builds the cache key for a document/question pair.
func Key(documentID, question string) string {
	hash := sha256.Sum256([]byte(documentID + "\x00" + question))
	return fmt.Sprintf("%x", hash)
}

// Get returns the cached answer and model, if present and fresh.
func (c *Cache) Get(key string) (string, string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Since(e.storedAt) > c.ttl {
		return "", "", false
	}
	return e.answer, e.modelUsed, true
}

// Set stores an answer.
func (c *Cache) Set(key, answer, modelUsed string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		answer:    answer,
		modelUsed: modelUsed,
		storedAt:  time.Now(),
	}
}

// cleanup periodically removes expired entries.
func (c *Cache) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		for key, e := range c.entries {
			if time.Since(e.storedAt) > c.ttl {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}
