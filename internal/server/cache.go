package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mj1618/axcore/internal/model"
	"github.com/mj1618/axcore/internal/platform"
)

// cacheKey identifies a unique tree read scope.
type cacheKey struct {
	PID   int
	At    string
	Child string
	Depth int
}

func newCacheKey(t platform.Target, depth int) cacheKey {
	k := cacheKey{PID: t.PID, Child: model.IndexPath(t.Child), Depth: depth}
	if t.At != nil {
		k.At = t.At.String()
	}
	return k
}

// treeSnapshot is one walked tree and the element it was taken from.
type treeSnapshot struct {
	Root string
	PID  int
	Tree model.Element
}

// cacheEntry holds a cached snapshot with its timestamp.
type cacheEntry struct {
	snapshot  treeSnapshot
	timestamp time.Time
}

// TreeCache provides a TTL-based cache of tree snapshots. Tools that change
// UI state invalidate it.
type TreeCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewTreeCache creates a new cache. A ttl of 0 disables caching.
func NewTreeCache(ttl time.Duration) *TreeCache {
	return &TreeCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Snapshot returns the cached snapshot for key if it is within the TTL,
// otherwise it calls read and stores the result. The caller must hold the
// client mutex.
func (c *TreeCache) Snapshot(key cacheKey, read func() (treeSnapshot, error)) (treeSnapshot, error) {
	if c.ttl == 0 {
		return read()
	}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		c.mu.Unlock()
		return entry.snapshot, nil
	}
	c.mu.Unlock()

	snap, err := read()
	if err != nil {
		return treeSnapshot{}, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{snapshot: snap, timestamp: c.now()}
	c.mu.Unlock()
	return snap, nil
}

// InvalidatePID removes all cache entries for an application. Entries
// rooted at the system-wide element are dropped too, since they may cover
// any application.
func (c *TreeCache) InvalidatePID(pid int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.PID == pid || k.PID == 0 {
			delete(c.entries, k)
		}
	}
}

// InvalidateAll clears the entire cache.
func (c *TreeCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// Len returns the number of cached snapshots.
func (c *TreeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (k cacheKey) String() string {
	return fmt.Sprintf("pid=%d at=%q child=%q depth=%d", k.PID, k.At, k.Child, k.Depth)
}
