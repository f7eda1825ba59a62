package blscache

import (
	stdsha256 "crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCacheKey(t *testing.T) {
	pk := []byte{1, 2, 3}
	msg := []byte{4, 5}

	want := stdsha256.Sum256([]byte{1, 2, 3, 4, 5})
	assert.Equal(t, CacheKey(want), ComputeCacheKey(pk, msg))

	// key bytes come first
	assert.NotEqual(t, ComputeCacheKey(pk, msg), ComputeCacheKey(msg, pk))
	assert.Equal(t, ComputeCacheKey(pk, msg), ComputeCacheKey(pk, msg))
}

func TestAugmentedSharesInput(t *testing.T) {
	s := newSigner(t, 1)
	msg := msg32(106)

	aug := augment(s.pubKey.Bytes(), msg)
	assert.Equal(t, ComputeCacheKey(s.pubKey.Bytes(), msg), aug.key())
	assert.Equal(t, ComputeAugmentedPoint(s.pubKey.Bytes(), msg).Bytes(), aug.point().Bytes())
}

func TestCacheKeyString(t *testing.T) {
	k := keyOf(0xab)
	assert.Len(t, k.String(), 2*KeySize)
	assert.Equal(t, "ab", k.String()[:2])
}
