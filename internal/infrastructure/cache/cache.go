// Package cache implements the engine's bounded local working set: a
// thread-safe map of (metadata, blob bytes) pairs with least-recently-uploaded
// eviction of blob bytes.
package cache

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/memberhub/media-api/internal/domain/media"
	"github.com/memberhub/media-api/internal/infrastructure/metrics"
)

// evictTarget is the hysteresis band: eviction runs until usage falls to this
// share of capacity, so repeated near-limit insertions don't thrash.
const evictTarget = 0.75

type entry struct {
	item        *media.MediaItem
	blob        []byte
	refreshedAt time.Time
	seq         uint64
}

// Cache is a bounded in-memory store. All mutations hold an exclusive lock;
// reads share a read lock. No I/O ever happens under either.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	order    []string // ids holding blob bytes, ascending refresh order
	capacity int64
	used     int64
	seq      uint64
	log      zerolog.Logger
}

// New creates a cache bounded to capacity bytes of blob data. Metadata-only
// entries are not counted toward the budget.
func New(capacity int64, log zerolog.Logger) *Cache {
	return &Cache{
		entries:  make(map[string]*entry),
		capacity: capacity,
		log:      log.With().Str("component", "media-cache").Logger(),
	}
}

// Get returns the cached metadata snapshot for id.
func (c *Cache) Get(id string) (*media.MediaItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	if !ok {
		metrics.RecordCacheLookup("metadata", false)
		return nil, false
	}
	metrics.RecordCacheLookup("metadata", true)
	item := *e.item
	return &item, true
}

// GetBlob returns a copy of the cached blob bytes for id. Callers own the
// returned slice; the cached bytes are never aliased out.
func (c *Cache) GetBlob(id string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	if !ok || e.blob == nil {
		metrics.RecordCacheLookup("blob", false)
		return nil, false
	}
	metrics.RecordCacheLookup("blob", true)
	out := make([]byte, len(e.blob))
	copy(out, e.blob)
	return out, true
}

// Put inserts or overwrites the entry for item. The byte budget is adjusted
// by the delta against any previous blob, never by blind addition. A nil blob
// refreshes metadata and leaves previously cached bytes in place.
func (c *Cache) Put(item *media.MediaItem, blob []byte) {
	if item == nil {
		return
	}
	snapshot := *item

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[item.ID]
	if !ok {
		e = &entry{}
		c.entries[item.ID] = e
	}
	e.item = &snapshot

	if blob != nil || e.blob == nil {
		delta := int64(len(blob)) - int64(len(e.blob))
		c.used += delta
		e.blob = blob
	}
	e.refreshedAt = time.Now()
	c.seq++
	e.seq = c.seq

	c.removeFromOrder(item.ID)
	if e.blob != nil {
		c.order = append(c.order, item.ID)
	}

	c.evictLocked()
	metrics.SetCacheBytes(c.used)
}

// Remove drops the entry for id entirely.
func (c *Cache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return
	}
	c.used -= int64(len(e.blob))
	delete(c.entries, id)
	c.removeFromOrder(id)
	metrics.SetCacheBytes(c.used)
}

// Clear drops everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.order = nil
	c.used = 0
	metrics.SetCacheBytes(0)
}

// UsedBytes reports the tracked blob byte total.
func (c *Cache) UsedBytes() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.used
}

// Len reports the number of entries, including metadata-only ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictLocked drops blob bytes in ascending refresh order until usage falls
// to the hysteresis band. Metadata stays cached. Caller holds the write lock.
func (c *Cache) evictLocked() {
	if c.capacity <= 0 || c.used <= c.capacity {
		return
	}
	target := int64(float64(c.capacity) * evictTarget)
	for c.used > target && len(c.order) > 0 {
		id := c.order[0]
		c.order = c.order[1:]
		e, ok := c.entries[id]
		if !ok || e.blob == nil {
			continue
		}
		c.used -= int64(len(e.blob))
		e.blob = nil
		metrics.RecordCacheEviction()
		c.log.Debug().Str("media_id", id).Int64("used_bytes", c.used).Msg("evicted cached blob")
	}
}

func (c *Cache) removeFromOrder(id string) {
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
