package blscache

import (
	"fmt"

	"github.com/cometbft/cometbft-blscache/crypto/bls12381"
)

// Entry is the persisted form of a cached pairing: a KeySize-byte cache key
// and the canonical encoding of the GT element.
type Entry struct {
	Key   []byte
	Value []byte
}

// ExportAll returns every cached pairing from least to most recently used.
// Importing the result into an empty cache restores the same recency order.
func (c *PairingCache) ExportAll() []Entry {
	cached := c.Entries()
	entries := make([]Entry, len(cached))
	for i, e := range cached {
		key := e.Key
		entries[i] = Entry{Key: key[:], Value: e.Value.Bytes()}
	}
	return entries
}

// ImportAll validates every entry and then inserts them in order through
// Put, so importing more entries than the capacity keeps only the last ones.
// The first malformed entry aborts the import with an ErrFormat before
// anything is inserted.
func (c *PairingCache) ImportAll(entries []Entry) error {
	_, err := c.importEntries(entries)
	return err
}

// importEntries is ImportAll that also reports how many entries Put evicted.
func (c *PairingCache) importEntries(entries []Entry) (evicted int, err error) {
	decoded, err := decodeEntries(entries)
	if err != nil {
		return 0, err
	}
	for _, e := range decoded {
		if c.Put(e.Key, e.Value) {
			evicted++
		}
	}
	return evicted, nil
}

func decodeEntries(entries []Entry) ([]CacheEntry, error) {
	decoded := make([]CacheEntry, len(entries))
	for i, e := range entries {
		if len(e.Key) != KeySize {
			return nil, ErrFormat{Index: i, Err: fmt.Errorf("%w: got %d", ErrKeyLength, len(e.Key))}
		}
		gt, err := bls12381.GTElementFromBytes(e.Value)
		if err != nil {
			return nil, ErrFormat{Index: i, Err: err}
		}
		copy(decoded[i].Key[:], e.Key)
		decoded[i].Value = gt
	}
	return decoded, nil
}

// ExportAll returns the cached pairings for persistence, least recently used
// first.
func (c *BLSCache) ExportAll() []Entry {
	return c.cache.ExportAll()
}

// ImportAll loads pairings previously returned by ExportAll, typically to
// carry a warmed cache from mempool validation over to block validation.
func (c *BLSCache) ImportAll(entries []Entry) error {
	before := c.cache.Len()
	evicted, err := c.cache.importEntries(entries)
	if err != nil {
		c.logger.Error("Rejected pairing cache snapshot", "entries", len(entries), "err", err)
		return err
	}

	c.metrics.ImportedEntries.Add(float64(len(entries)))
	c.metrics.Evictions.Add(float64(evicted))
	c.metrics.Size.Set(float64(c.cache.Len()))
	c.logger.Info("Imported pairing cache snapshot",
		"entries", len(entries),
		"size_before", before,
		"size", c.cache.Len(),
		"evicted", evicted,
	)
	return nil
}
