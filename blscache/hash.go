package blscache

import (
	"encoding/hex"

	"github.com/minio/sha256-simd"

	"github.com/cometbft/cometbft-blscache/crypto/bls12381"
)

// KeySize is the length of a CacheKey.
const KeySize = sha256.Size

// CacheKey identifies a (public key, message) pair: SHA-256 of the
// compressed public key followed by the raw message.
type CacheKey [KeySize]byte

// String returns the hex encoded key.
func (k CacheKey) String() string {
	return hex.EncodeToString(k[:])
}

// ComputeCacheKey returns SHA256(pubKeyBytes || msg).
func ComputeCacheKey(pubKeyBytes, msg []byte) CacheKey {
	var key CacheKey
	h := sha256.New()
	h.Write(pubKeyBytes)
	h.Write(msg)
	h.Sum(key[:0])
	return key
}

// ComputeAugmentedPoint hashes pubKeyBytes || msg onto G2. Because the point
// depends on the claimed public key, a signature share is bound to its
// signer.
func ComputeAugmentedPoint(pubKeyBytes, msg []byte) bls12381.G2Element {
	return bls12381.HashToG2Augmented(bls12381.AugmentMessage(pubKeyBytes, msg))
}

// augmented holds the shared input of the key hash and the curve hash.
type augmented []byte

func augment(pubKeyBytes, msg []byte) augmented {
	return bls12381.AugmentMessage(pubKeyBytes, msg)
}

func (a augmented) key() CacheKey {
	return sha256.Sum256(a)
}

func (a augmented) point() bls12381.G2Element {
	return bls12381.HashToG2Augmented(a)
}
