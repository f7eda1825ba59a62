package bls12381

import (
	"errors"
	"fmt"
)

// ErrDecode is returned when a public key, signature, private key or GT
// element cannot be decoded from its byte representation.
var ErrDecode = errors.New("bls12381: deserialization error")

// ErrSeedTooShort is returned by GenPrivKeyFromSecret when less than
// MinSeedLen bytes of key material are supplied.
var ErrSeedTooShort = fmt.Errorf("bls12381: seed must be at least %d bytes", MinSeedLen)

// ErrInvalidLength is returned when an encoding has the wrong size for its
// type.
type ErrInvalidLength struct {
	Kind     string
	Expected int
	Actual   int
}

func (e ErrInvalidLength) Error() string {
	return fmt.Sprintf("bls12381: %s must be %d bytes, got %d", e.Kind, e.Expected, e.Actual)
}

// Unwrap makes every length failure match ErrDecode.
func (ErrInvalidLength) Unwrap() error {
	return ErrDecode
}

func decodeErr(kind string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrDecode, kind, err)
}
