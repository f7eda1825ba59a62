package store

import (
	"time"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/pkg/errors"

	"github.com/cometbft/cometbft-blscache/blscache"
	cmtsync "github.com/cometbft/cometbft-blscache/libs/sync"
)

/*
SnapshotStore persists pairing cache snapshots so a node can restart with a
warm cache.

An entry is stored under (prefixSnapshotEntry, seq) where seq is its position
in the exported sequence, least recently used first. The value is the cache
key followed by the encoded GT element. A meta record holds the entry count
and is written in the same batch as the entries, so a snapshot is either
fully saved or not at all.

Only one snapshot is kept: saving replaces the previous one.
*/
type SnapshotStore struct {
	db dbm.DB

	mtx     cmtsync.RWMutex
	metrics *Metrics
}

type StoreOption func(*SnapshotStore)

// WithMetrics sets the metrics.
func WithMetrics(metrics *Metrics) StoreOption {
	return func(ss *SnapshotStore) { ss.metrics = metrics }
}

// NewSnapshotStore returns a new SnapshotStore with the given DB.
func NewSnapshotStore(db dbm.DB, options ...StoreOption) *SnapshotStore {
	ss := &SnapshotStore{
		db:      db,
		metrics: NopMetrics(),
	}
	for _, option := range options {
		option(ss)
	}
	return ss
}

func (ss *SnapshotStore) observe(method string, start time.Time) {
	ss.metrics.AccessDurationSeconds.With("method", method).Observe(time.Since(start).Seconds())
}

// Size returns the number of entries in the saved snapshot, 0 if there is
// none.
func (ss *SnapshotStore) Size() (int, error) {
	defer ss.observe("size", time.Now())
	ss.mtx.RLock()
	defer ss.mtx.RUnlock()

	n, err := ss.size()
	return int(n), err
}

func (ss *SnapshotStore) size() (int64, error) {
	bz, err := ss.db.Get(calcSnapshotMetaKey())
	if err != nil {
		return 0, ErrDBOpt{Err: err}
	}
	if len(bz) == 0 {
		return 0, nil
	}
	n, err := decodeCount(bz)
	if err != nil {
		return 0, errors.Wrap(err, "decoding snapshot size")
	}
	if n < 0 {
		return 0, errors.Errorf("negative snapshot size %d", n)
	}
	return n, nil
}

// SaveSnapshot replaces the saved snapshot with entries, keeping their order.
func (ss *SnapshotStore) SaveSnapshot(entries []blscache.Entry) error {
	defer ss.observe("save_snapshot", time.Now())
	ss.mtx.Lock()
	defer ss.mtx.Unlock()

	batch := ss.db.NewBatch()
	defer batch.Close()

	if err := ss.deleteEntries(batch); err != nil {
		return err
	}
	for i, e := range entries {
		if len(e.Key) != blscache.KeySize {
			return errors.Wrapf(blscache.ErrKeyLength, "entry %d has a %d byte key", i, len(e.Key))
		}
		value := make([]byte, 0, len(e.Key)+len(e.Value))
		value = append(value, e.Key...)
		value = append(value, e.Value...)
		if err := batch.Set(calcSnapshotEntryKey(int64(i)), value); err != nil {
			return ErrDBOpt{Err: err}
		}
	}
	if err := batch.Set(calcSnapshotMetaKey(), encodeCount(int64(len(entries)))); err != nil {
		return ErrDBOpt{Err: err}
	}
	if err := batch.WriteSync(); err != nil {
		return ErrDBOpt{Err: err}
	}

	ss.metrics.Entries.Set(float64(len(entries)))
	return nil
}

// LoadSnapshot returns the saved entries in the order they were saved. It
// returns nil if no snapshot was saved. GT values are not decoded here;
// blscache.BLSCache.ImportAll validates them.
func (ss *SnapshotStore) LoadSnapshot() ([]blscache.Entry, error) {
	defer ss.observe("load_snapshot", time.Now())
	ss.mtx.RLock()
	defer ss.mtx.RUnlock()

	n, err := ss.size()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	start, end := snapshotEntryRange()
	it, err := ss.db.Iterator(start, end)
	if err != nil {
		return nil, ErrDBOpt{Err: err}
	}
	defer it.Close()

	var entries []blscache.Entry
	for ; it.Valid(); it.Next() {
		seq, err := parseSnapshotEntryKey(it.Key())
		if err != nil {
			return nil, err
		}
		value := it.Value()
		if len(value) < blscache.KeySize {
			return nil, ErrCorruptEntry{Seq: seq, Size: len(value)}
		}
		bz := make([]byte, len(value))
		copy(bz, value)
		entries = append(entries, blscache.Entry{
			Key:   bz[:blscache.KeySize],
			Value: bz[blscache.KeySize:],
		})
	}
	if err := it.Error(); err != nil {
		return nil, ErrDBOpt{Err: err}
	}
	if int64(len(entries)) != n {
		return nil, ErrCountMismatch{Expected: n, Actual: int64(len(entries))}
	}

	ss.metrics.Entries.Set(float64(len(entries)))
	return entries, nil
}

// Clear removes the saved snapshot.
func (ss *SnapshotStore) Clear() error {
	defer ss.observe("clear", time.Now())
	ss.mtx.Lock()
	defer ss.mtx.Unlock()

	batch := ss.db.NewBatch()
	defer batch.Close()

	if err := ss.deleteEntries(batch); err != nil {
		return err
	}
	if err := batch.Delete(calcSnapshotMetaKey()); err != nil {
		return ErrDBOpt{Err: err}
	}
	if err := batch.WriteSync(); err != nil {
		return ErrDBOpt{Err: err}
	}

	ss.metrics.Entries.Set(0)
	return nil
}

// Close closes the underlying DB.
func (ss *SnapshotStore) Close() error {
	return ss.db.Close()
}

// deleteEntries adds a delete of every entry key to batch. Keys are collected
// before deleting so the iterator is never invalidated.
func (ss *SnapshotStore) deleteEntries(batch dbm.Batch) error {
	start, end := snapshotEntryRange()
	it, err := ss.db.Iterator(start, end)
	if err != nil {
		return ErrDBOpt{Err: err}
	}
	var keys [][]byte
	for ; it.Valid(); it.Next() {
		key := make([]byte, len(it.Key()))
		copy(key, it.Key())
		keys = append(keys, key)
	}
	if err := it.Error(); err != nil {
		it.Close()
		return ErrDBOpt{Err: err}
	}
	if err := it.Close(); err != nil {
		return ErrDBOpt{Err: err}
	}

	for _, key := range keys {
		if err := batch.Delete(key); err != nil {
			return ErrDBOpt{Err: err}
		}
	}
	return nil
}
