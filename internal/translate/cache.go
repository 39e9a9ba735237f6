package translate

import (
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheCapacity is the number of results kept per engine.
const DefaultCacheCapacity = 1000

// Cache policies accepted by NewCache.
const (
	PolicyFIFO = "fifo"
	PolicyLRU  = "lru"
)

// ErrUnknownCachePolicy is returned by NewCache for an unsupported policy name.
var ErrUnknownCachePolicy = errors.New("translate: unknown cache policy")

// Cache stores results keyed by the exact (command, output) pair.
// Implementations are safe for concurrent use and never hold more than their capacity.
type Cache interface {
	// Get returns a copy of the stored result with Source set to SourceCache.
	Get(command, output string) (Result, bool)
	Put(command, output string, result Result)
	Clear()
	Len() int
}

// cacheKey compares the full pair, so distinct inputs never collide.
type cacheKey struct {
	command string
	output  string
}

// NewCache builds a cache for the named policy. An empty policy means PolicyFIFO.
func NewCache(policy string, capacity int) (Cache, error) {
	switch policy {
	case "", PolicyFIFO:
		return NewFractionCache(capacity), nil
	case PolicyLRU:
		return NewLRUCache(capacity)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCachePolicy, policy)
	}
}

// FractionCache evicts a quarter of its entries, oldest inserted first, when full.
// Reads do not affect eviction order.
type FractionCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[cacheKey]Result
	order    []cacheKey // insertion order of live keys
}

// NewFractionCache creates a cache holding at most capacity results.
// A non-positive capacity selects DefaultCacheCapacity.
func NewFractionCache(capacity int) *FractionCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &FractionCache{
		capacity: capacity,
		entries:  make(map[cacheKey]Result, capacity),
		order:    make([]cacheKey, 0, capacity),
	}
}

func (c *FractionCache) Get(command, output string) (Result, bool) {
	c.mu.Lock()
	result, ok := c.entries[cacheKey{command, output}]
	c.mu.Unlock()
	if !ok {
		return Result{}, false
	}
	result.Source = SourceCache
	return result, true
}

func (c *FractionCache) Put(command, output string, result Result) {
	key := cacheKey{command, output}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.capacity {
		c.evict(max(c.capacity/4, 1))
	}
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = result
}

// evict removes the n oldest entries. Caller holds c.mu.
func (c *FractionCache) evict(n int) {
	n = min(n, len(c.order))
	for _, key := range c.order[:n] {
		delete(c.entries, key)
	}
	c.order = append(c.order[:0:0], c.order[n:]...)
}

func (c *FractionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.order = c.order[:0]
}

func (c *FractionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// LRUCache evicts the least recently used entry when full.
type LRUCache struct {
	entries *lru.Cache[cacheKey, Result]
}

// NewLRUCache creates an LRU cache. A non-positive capacity selects DefaultCacheCapacity.
func NewLRUCache(capacity int) (*LRUCache, error) {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	entries, err := lru.New[cacheKey, Result](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &LRUCache{entries: entries}, nil
}

func (c *LRUCache) Get(command, output string) (Result, bool) {
	result, ok := c.entries.Get(cacheKey{command, output})
	if !ok {
		return Result{}, false
	}
	result.Source = SourceCache
	return result, true
}

func (c *LRUCache) Put(command, output string, result Result) {
	c.entries.Add(cacheKey{command, output}, result)
}

func (c *LRUCache) Clear() {
	c.entries.Purge()
}

func (c *LRUCache) Len() int {
	return c.entries.Len()
}
