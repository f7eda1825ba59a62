package blscache

import (
	"errors"
	"fmt"
)

// ErrInvalidCapacity is returned when a cache is constructed with a capacity
// below one.
var ErrInvalidCapacity = errors.New("cache capacity must be at least one")

// ErrKeyLength is returned for a snapshot entry whose key is not KeySize
// bytes long.
var ErrKeyLength = fmt.Errorf("cache key must be %d bytes", KeySize)

// ErrLengthMismatch is returned when the public keys and messages handed to
// AggregateVerify cannot be paired positionally.
type ErrLengthMismatch struct {
	PubKeys  int
	Messages int
}

func (e ErrLengthMismatch) Error() string {
	return fmt.Sprintf("got %d public keys but %d messages", e.PubKeys, e.Messages)
}

// ErrFormat defines an error where a snapshot entry cannot be imported. No
// entry of the batch has been applied when it is returned.
type ErrFormat struct {
	Index int
	Err   error
}

func (e ErrFormat) Error() string {
	return fmt.Sprintf("malformed snapshot entry %d: %v", e.Index, e.Err)
}

func (e ErrFormat) Unwrap() error {
	return e.Err
}
