// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cache provides the typed read cache used by the state layer.
package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// LRU is a typed, size bounded cache that tracks lookup statistics.
type LRU[K comparable, V any] struct {
	inner   *lru.Cache
	hits    atomic.Int64
	misses  atomic.Int64
	lastPPM atomic.Int32
}

// NewLRU creates an LRU holding at most maxSize entries.
// maxSize must be positive.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	inner, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{inner: inner}, nil
}

// Get returns the cached value of key.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	if v, ok := c.inner.Get(key); ok {
		return v.(V), true
	}
	var zero V
	return zero, false
}

// Add sets the value of key, evicting the oldest entry when full.
func (c *LRU[K, V]) Add(key K, value V) {
	c.inner.Add(key, value)
}

// Contains reports whether key is cached without touching its recency.
func (c *LRU[K, V]) Contains(key K) bool {
	return c.inner.Contains(key)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.inner.Len()
}

// GetOrLoad returns the cached value of key, calling load on a miss.
// Failed loads are not cached.
func (c *LRU[K, V]) GetOrLoad(key K, load func(K) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		c.hits.Add(1)
		return v, nil
	}
	c.misses.Add(1)
	v, err := load(key)
	if err != nil {
		var zero V
		return zero, err
	}
	c.inner.Add(key, v)
	return v, nil
}

// Stats is a point-in-time view of GetOrLoad lookups.
type Stats struct {
	Hits   int64
	Misses int64
}

// HitRate returns hits over lookups, zero when nothing was looked up.
func (s Stats) HitRate() float64 {
	if total := s.Hits + s.Misses; total > 0 {
		return float64(s.Hits) / float64(total)
	}
	return 0
}

// Stats returns the current lookup statistics and whether the hit rate,
// in per mille, moved since the previous call.
func (c *LRU[K, V]) Stats() (Stats, bool) {
	s := Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
	ppm := int32(s.HitRate() * 1000)
	return s, c.lastPPM.Swap(ppm) != ppm
}
