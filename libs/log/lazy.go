package log

import (
	"encoding/hex"
)

// LazyHex defers hex encoding of a byte slice, typically a cache key, until
// the Stringer interface is invoked.
type LazyHex []byte

func (l LazyHex) String() string {
	return hex.EncodeToString(l)
}

// MarshalText makes structured handlers render the value as hex as well.
func (l LazyHex) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
