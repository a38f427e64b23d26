package index

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Entry is one rendered page.
type Entry struct {
	Key       string    `json:"key"`
	Revision  string    `json:"revision"`
	Status    int       `json:"status"`
	Body      []byte    `json:"body"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its TTL at now.
func (e *Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Key builds the cache key of a rendered page. Every input that changes the
// markup is part of it.
func Key(revision, path string, menuOpen, videoOpen bool) string {
	var b strings.Builder
	b.WriteString(revision)
	b.WriteByte('|')
	b.WriteString(path)
	b.WriteString("|m=")
	b.WriteString(strconv.FormatBool(menuOpen))
	b.WriteString("|v=")
	b.WriteString(strconv.FormatBool(videoOpen))
	return b.String()
}

// Stats is a point-in-time view of cache counters.
type Stats struct {
	Entries    int       `json:"entries"`
	Hits       uint64    `json:"hits"`
	Misses     uint64    `json:"misses"`
	Revision   string    `json:"revision"`
	LastReload time.Time `json:"last_reload"`
}

// PageCache provides in-memory storage for rendered pages.
// It is always present; Redis only adds a shared second level.
type PageCache struct {
	mu         sync.RWMutex
	entries    map[string]*Entry // Key -> Entry
	revision   string            // content revision currently served
	lastReload time.Time         // Timestamp of last content swap
	hits       uint64
	misses     uint64
	now        func() time.Time
}

// NewPageCache creates a new page cache
func NewPageCache() *PageCache {
	return &PageCache{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

// SetRevision records a content swap. Entries of older revisions become
// unreachable and are dropped by EvictStale.
func (c *PageCache) SetRevision(rev string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.revision = rev
	c.lastReload = c.now()
}

// Revision returns the content revision currently served
func (c *PageCache) Revision() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.revision
}

// GetLastReload returns the timestamp of the last content swap
func (c *PageCache) GetLastReload() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastReload
}

// Get retrieves a live entry by key
func (c *PageCache) Get(key string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.Expired(c.now()) {
		c.misses++
		return nil, false
	}
	c.hits++
	return e, true
}

// Put adds or replaces an entry
func (c *PageCache) Put(e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[e.Key] = e
}

// PutAll adds entries in bulk, skipping those already expired
func (c *PageCache) PutAll(entries []*Entry) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	added := 0
	for _, e := range entries {
		if e.Expired(now) {
			continue
		}
		c.entries[e.Key] = e
		added++
	}
	return added
}

// Count returns the number of entries in the cache
func (c *PageCache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// EvictStale removes expired entries and entries of other revisions.
// It returns how many were removed.
func (c *PageCache) EvictStale() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if e.Revision != c.revision || e.Expired(now) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Stats returns the current counters
func (c *PageCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Entries:    len(c.entries),
		Hits:       c.hits,
		Misses:     c.misses,
		Revision:   c.revision,
		LastReload: c.lastReload,
	}
}
