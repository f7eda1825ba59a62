package blscache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPairingCacheInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := NewPairingCache(capacity)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	}
}

func TestPairingCacheEvictsLeastRecentlyUsed(t *testing.T) {
	gts := distinctGTs(t, 3)
	cache, err := NewPairingCache(2)
	require.NoError(t, err)
	assert.True(t, cache.IsEmpty())

	assert.False(t, cache.Put(keyOf(1), gts[0]))
	assert.False(t, cache.Put(keyOf(2), gts[1]))

	// Touch 1 so that 2 becomes the oldest.
	got, ok := cache.Get(keyOf(1))
	require.True(t, ok)
	assert.True(t, got.Equal(gts[0]))

	assert.True(t, cache.Put(keyOf(3), gts[2]))
	assert.Equal(t, 2, cache.Len())
	assert.True(t, cache.Contains(keyOf(1)))
	assert.False(t, cache.Contains(keyOf(2)))
	assert.True(t, cache.Contains(keyOf(3)))

	_, ok = cache.Get(keyOf(2))
	assert.False(t, ok)
}

func TestPairingCacheContainsDoesNotPromote(t *testing.T) {
	gts := distinctGTs(t, 3)
	cache, err := NewPairingCache(2)
	require.NoError(t, err)

	cache.Put(keyOf(1), gts[0])
	cache.Put(keyOf(2), gts[1])
	require.True(t, cache.Contains(keyOf(1)))

	cache.Put(keyOf(3), gts[2])
	assert.False(t, cache.Contains(keyOf(1)))
}

func TestPairingCachePutExistingKey(t *testing.T) {
	gts := distinctGTs(t, 2)
	cache, err := NewPairingCache(2)
	require.NoError(t, err)

	cache.Put(keyOf(1), gts[0])
	assert.False(t, cache.Put(keyOf(1), gts[1]))
	assert.Equal(t, 1, cache.Len())

	got, ok := cache.Get(keyOf(1))
	require.True(t, ok)
	assert.True(t, got.Equal(gts[1]))
}

func TestPairingCacheEntriesOrder(t *testing.T) {
	gts := distinctGTs(t, 3)
	cache, err := NewPairingCache(3)
	require.NoError(t, err)

	for i := byte(0); i < 3; i++ {
		cache.Put(keyOf(i), gts[i])
	}
	cache.Get(keyOf(0))

	entries := cache.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, keyOf(1), entries[0].Key)
	assert.Equal(t, keyOf(2), entries[1].Key)
	assert.Equal(t, keyOf(0), entries[2].Key)
	assert.True(t, entries[2].Value.Equal(gts[0]))

	// Listing entries is not an access.
	cache.Put(keyOf(3), gts[0])
	assert.False(t, cache.Contains(keyOf(1)))
}

func TestPairingCacheCloneIsIndependent(t *testing.T) {
	gts := distinctGTs(t, 3)
	cache, err := NewPairingCache(2)
	require.NoError(t, err)
	cache.Put(keyOf(1), gts[0])
	cache.Put(keyOf(2), gts[1])

	clone := cache.Clone()
	assert.Equal(t, cache.Entries(), clone.Entries())
	assert.Equal(t, cache.Capacity(), clone.Capacity())

	clone.Put(keyOf(3), gts[2])
	assert.True(t, cache.Contains(keyOf(1)))
	assert.False(t, cache.Contains(keyOf(3)))
	assert.False(t, clone.Contains(keyOf(1)))
}
