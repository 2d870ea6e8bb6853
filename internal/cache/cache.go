// Package cache memoizes rendered charts so unchanged data is not laid out
// and serialised again on every request or file event.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/simplelru"

	"github.com/recera/vangochart/pkg/barchart"
	"github.com/recera/vangochart/pkg/vango/vdom"
)

// Entry is one rendered chart
type Entry struct {
	Node    *vdom.VNode
	Markup  string
	Created time.Time
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits       int64 `json:"hits"`
	Misses     int64 `json:"misses"`
	Evictions  int64 `json:"evictions"`
	EntryCount int   `json:"entry_count"`
}

// HitRate returns hits / (hits + misses), or 0 before any lookup
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a fixed-size LRU of rendered charts, safe for concurrent use
type Cache struct {
	mu    sync.Mutex
	lru   *simplelru.LRU
	stats Stats
}

// New returns a Cache holding at most size entries
func New(size int) (*Cache, error) {
	c := &Cache{}
	lru, err := simplelru.NewLRU(size, func(key, value interface{}) {
		c.stats.Evictions++
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	c.lru = lru
	return c, nil
}

// Get retrieves an entry from the cache
func (c *Cache) Get(key string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Get(key)
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return v.(*Entry), true
}

// Put stores an entry, evicting the least recently used one when full
func (c *Cache) Put(key string, e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.Created.IsZero() {
		e.Created = time.Now()
	}
	c.lru.Add(key, e)
}

// GetOrRender returns the cached entry for key, calling render on a miss
// and caching its result. Errors are not cached.
func (c *Cache) GetOrRender(key string, render func() (*Entry, error)) (*Entry, bool, error) {
	if e, ok := c.Get(key); ok {
		return e, true, nil
	}
	e, err := render()
	if err != nil {
		return nil, false, err
	}
	c.Put(key, e)
	return e, false, nil
}

// Delete removes an entry from the cache
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	evictions := c.stats.Evictions
	ok := c.lru.Remove(key)
	c.stats.Evictions = evictions
	return ok
}

// Clear removes all entries. Only capacity evictions are counted in Stats.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	evictions := c.stats.Evictions
	c.lru.Purge()
	c.stats.Evictions = evictions
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// GetStats returns cache statistics
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.EntryCount = c.lru.Len()
	return s
}

// Key generates a cache key from chart inputs and the options they are
// rendered with
func Key(values []float64, labels []string, opts barchart.Options) string {
	h := sha256.New()
	var buf [8]byte

	binary.BigEndian.PutUint64(buf[:], uint64(len(values)))
	h.Write(buf[:])
	for _, v := range values {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}

	// Length-prefix labels so ["ab"] and ["a", "b"] differ.
	binary.BigEndian.PutUint64(buf[:], uint64(len(labels)))
	h.Write(buf[:])
	for _, l := range labels {
		binary.BigEndian.PutUint64(buf[:], uint64(len(l)))
		h.Write(buf[:])
		h.Write([]byte(l))
	}

	fmt.Fprintf(h, "%+v", opts)
	return hex.EncodeToString(h.Sum(nil))
}
