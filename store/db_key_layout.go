package store

import (
	"github.com/google/orderedcode"
)

// key prefixes.
const (
	// prefixes are unique across the snapshot db.
	prefixSnapshotMeta  = int64(0)
	prefixSnapshotEntry = int64(1)
)

// calcSnapshotMetaKey returns the key of the record holding the number of
// persisted entries.
func calcSnapshotMetaKey() []byte {
	key, err := orderedcode.Append(nil, prefixSnapshotMeta)
	if err != nil {
		panic(err)
	}
	return key
}

// calcSnapshotEntryKey returns the key of the seq-th persisted entry. Keys
// sort by seq, so iterating the prefix yields entries in export order.
func calcSnapshotEntryKey(seq int64) []byte {
	key, err := orderedcode.Append(nil, prefixSnapshotEntry, seq)
	if err != nil {
		panic(err)
	}
	return key
}

// snapshotEntryRange returns the [start, end) range covering every entry key.
func snapshotEntryRange() (start, end []byte) {
	start, err := orderedcode.Append(nil, prefixSnapshotEntry)
	if err != nil {
		panic(err)
	}
	end, err = orderedcode.Append(nil, prefixSnapshotEntry+1)
	if err != nil {
		panic(err)
	}
	return start, end
}

func parseSnapshotEntryKey(key []byte) (int64, error) {
	var prefix, seq int64
	remaining, err := orderedcode.Parse(string(key), &prefix, &seq)
	if err != nil {
		return 0, err
	}
	if len(remaining) != 0 || prefix != prefixSnapshotEntry {
		return 0, ErrUnexpectedKey{Key: key}
	}
	return seq, nil
}

func encodeCount(n int64) []byte {
	bz, err := orderedcode.Append(nil, n)
	if err != nil {
		panic(err)
	}
	return bz
}

func decodeCount(bz []byte) (int64, error) {
	var n int64
	if _, err := orderedcode.Parse(string(bz), &n); err != nil {
		return 0, err
	}
	return n, nil
}
