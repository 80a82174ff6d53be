// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

// Package cache provides the small in-memory data structures shared by the
// storefront: a TTL-bounded LRU used to memoize recommendation lists and an
// Aho-Corasick matcher used by the FAQ keyword scan.
package cache

import (
	"sync"
	"time"
)

type lruEntry[V any] struct {
	key       string
	value     V
	prev      *lruEntry[V]
	next      *lruEntry[V]
	expiresAt time.Time
}

// LRU is a goroutine-safe least recently used cache with lazy TTL expiry.
// Get, Add and eviction are O(1): a map for lookup plus a doubly linked list
// between two sentinels for recency order.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time
	items    map[string]*lruEntry[V]
	head     *lruEntry[V] // head.next is the most recently used
	tail     *lruEntry[V] // tail.prev is the least recently used
	hits     int64
	misses   int64
}

// NewLRU creates a cache. Non-positive capacity defaults to 1024 and
// non-positive ttl to five minutes.
func NewLRU[V any](capacity int, ttl time.Duration) *LRU[V] {
	if capacity <= 0 {
		capacity = 1024
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*lruEntry[V], capacity),
		head:     &lruEntry[V]{},
		tail:     &lruEntry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key if present and not expired, marking it as
// most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if c.now().After(entry.expiresAt) {
		c.unlink(entry)
		c.misses++
		return zero, false
	}
	c.unlinkList(entry)
	c.pushFront(entry)
	c.hits++
	return entry.value, true
}

// Add inserts or refreshes key, evicting the least recently used entry when
// over capacity.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		c.unlinkList(entry)
		c.pushFront(entry)
		return
	}

	entry := &lruEntry[V]{key: key, value: value, expiresAt: expiresAt}
	c.pushFront(entry)
	c.items[key] = entry
	for len(c.items) > c.capacity {
		if oldest := c.tail.prev; oldest != c.head {
			c.unlink(oldest)
		}
	}
}

// Remove deletes key and reports whether it was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[key]
	if ok {
		c.unlink(entry)
	}
	return ok
}

// Len returns the number of entries, expired ones included.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Purge removes every entry.
func (c *LRU[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*lruEntry[V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Stats returns hit and miss counts and the current size.
func (c *LRU[V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

func (c *LRU[V]) pushFront(e *lruEntry[V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU[V]) unlinkList(e *lruEntry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
}

func (c *LRU[V]) unlink(e *lruEntry[V]) {
	c.unlinkList(e)
	delete(c.items, e.key)
}
