// Package cache stores encoded projections keyed by normalized inputs.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a byte cache. A miss is (nil, false, nil); err is reserved for
// backend failures, which callers treat as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Memory is a TTL + LRU cache held in process.
type Memory struct {
	ttl  time.Duration
	size int
	now  func() time.Time

	mu    sync.Mutex
	items map[string]entry
	order []string // LRU order, oldest at index 0
}

type entry struct {
	at  time.Time
	val []byte
}

// NewMemory keeps at most size entries for ttl each. ttl <= 0 never expires.
func NewMemory(ttl time.Duration, size int) *Memory {
	if size <= 0 {
		size = 1
	}
	return &Memory{ttl: ttl, size: size, now: time.Now, items: make(map[string]entry)}
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if c.ttl > 0 && c.now().Sub(ent.at) > c.ttl {
		delete(c.items, key)
		c.removeFromOrderLocked(key)
		return nil, false, nil
	}
	c.touchLocked(key)
	return ent.val, true, nil
}

func (c *Memory) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; ok {
		c.touchLocked(key)
	} else {
		c.order = append(c.order, key)
	}
	c.items[key] = entry{at: c.now(), val: value}

	for len(c.items) > c.size && len(c.order) > 0 {
		old := c.order[0]
		c.order = c.order[1:]
		delete(c.items, old)
	}
	return nil
}

// Len is the number of live and not-yet-evicted entries.
func (c *Memory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Memory) touchLocked(k string) {
	c.removeFromOrderLocked(k)
	c.order = append(c.order, k)
}

func (c *Memory) removeFromOrderLocked(k string) {
	for i, v := range c.order {
		if v == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
