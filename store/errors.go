package store

import (
	"fmt"
)

// ErrCorruptEntry is returned when a persisted entry is too short to hold a
// cache key.
type ErrCorruptEntry struct {
	Seq  int64
	Size int
}

func (e ErrCorruptEntry) Error() string {
	return fmt.Sprintf("snapshot entry %d is corrupted: %d bytes", e.Seq, e.Size)
}

// ErrCountMismatch is returned when the number of persisted entries does not
// match the recorded snapshot size.
type ErrCountMismatch struct {
	Expected int64
	Actual   int64
}

func (e ErrCountMismatch) Error() string {
	return fmt.Sprintf("snapshot should hold %d entries, found %d", e.Expected, e.Actual)
}

// ErrUnexpectedKey is returned when a key inside the entry range cannot be
// parsed as an entry key.
type ErrUnexpectedKey struct {
	Key []byte
}

func (e ErrUnexpectedKey) Error() string {
	return fmt.Sprintf("unexpected key %X in snapshot range", e.Key)
}

type ErrDBOpt struct {
	Err error
}

func (e ErrDBOpt) Error() string {
	return e.Err.Error()
}

func (e ErrDBOpt) Unwrap() error {
	return e.Err
}
