package blscache

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/cometbft/cometbft-blscache/crypto/bls12381"
)

// CacheEntry is a single cached pairing.
type CacheEntry struct {
	Key   CacheKey
	Value bls12381.GTElement
}

// PairingCache is a bounded CacheKey -> GT element map with least recently
// used eviction. Len never exceeds the capacity given at construction.
//
// PairingCache is not safe for concurrent use; see SyncBLSCache.
type PairingCache struct {
	capacity int
	lru      *simplelru.LRU[CacheKey, bls12381.GTElement]
}

// NewPairingCache returns an empty cache holding at most capacity entries.
func NewPairingCache(capacity int) (*PairingCache, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	lru, err := simplelru.NewLRU[CacheKey, bls12381.GTElement](capacity, nil)
	if err != nil {
		return nil, err
	}
	return &PairingCache{capacity: capacity, lru: lru}, nil
}

// Len returns the number of cached pairings.
func (c *PairingCache) Len() int {
	return c.lru.Len()
}

// IsEmpty reports whether nothing is cached.
func (c *PairingCache) IsEmpty() bool {
	return c.lru.Len() == 0
}

// Capacity returns the maximum number of entries.
func (c *PairingCache) Capacity() int {
	return c.capacity
}

// Get returns the pairing stored under key and marks it most recently used.
func (c *PairingCache) Get(key CacheKey) (bls12381.GTElement, bool) {
	return c.lru.Get(key)
}

// Contains reports whether key is cached. Checking for presence is not
// treated as an access of the value.
func (c *PairingCache) Contains(key CacheKey) bool {
	return c.lru.Contains(key)
}

// Put stores value under key as the most recently used entry. If the cache is
// full the least recently used entry is evicted first and true is returned.
func (c *PairingCache) Put(key CacheKey, value bls12381.GTElement) (evicted bool) {
	return c.lru.Add(key, value)
}

// Entries returns the cached pairings from least to most recently used.
// Recency is not affected.
func (c *PairingCache) Entries() []CacheEntry {
	keys := c.lru.Keys()
	entries := make([]CacheEntry, 0, len(keys))
	for _, key := range keys {
		value, ok := c.lru.Peek(key)
		if !ok {
			continue
		}
		entries = append(entries, CacheEntry{Key: key, Value: value})
	}
	return entries
}

// Clone returns an independent copy with the same capacity, contents and
// recency order.
func (c *PairingCache) Clone() *PairingCache {
	clone, err := NewPairingCache(c.capacity)
	if err != nil {
		// capacity was validated when c was built
		panic(err)
	}
	for _, entry := range c.Entries() {
		clone.lru.Add(entry.Key, entry.Value)
	}
	return clone
}
