package blscache

import (
	"github.com/cometbft/cometbft-blscache/crypto/bls12381"
	cmtsync "github.com/cometbft/cometbft-blscache/libs/sync"
)

// SyncBLSCache guards a BLSCache with a mutex so that a single cache can be
// shared by the goroutines of one validation context, e.g. a mempool and the
// block executor. Pairings are computed while holding the lock.
type SyncBLSCache struct {
	mtx   cmtsync.Mutex
	cache *BLSCache
}

// NewSyncBLSCache takes ownership of cache. It must not be used directly
// afterwards.
func NewSyncBLSCache(cache *BLSCache) *SyncBLSCache {
	return &SyncBLSCache{cache: cache}
}

// Len returns the number of cached pairings.
func (c *SyncBLSCache) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.cache.Len()
}

// IsEmpty reports whether the cache holds no pairings.
func (c *SyncBLSCache) IsEmpty() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.cache.IsEmpty()
}

// AggregateVerify is BLSCache.AggregateVerify under the lock.
func (c *SyncBLSCache) AggregateVerify(pks []bls12381.PubKey, msgs [][]byte, sig bls12381.Signature) (bool, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.cache.AggregateVerify(pks, msgs, sig)
}

// AggregateVerifyBytes is BLSCache.AggregateVerifyBytes under the lock.
func (c *SyncBLSCache) AggregateVerifyBytes(pubKeys [][]byte, msgs [][]byte, sig []byte) (bool, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.cache.AggregateVerifyBytes(pubKeys, msgs, sig)
}

// ExportAll returns the cached pairings, least recently used first.
func (c *SyncBLSCache) ExportAll() []Entry {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.cache.ExportAll()
}

// ImportAll loads pairings previously returned by ExportAll.
func (c *SyncBLSCache) ImportAll(entries []Entry) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.cache.ImportAll(entries)
}

// Snapshot returns an independent copy of the guarded cache.
func (c *SyncBLSCache) Snapshot() *BLSCache {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.cache.Clone()
}
