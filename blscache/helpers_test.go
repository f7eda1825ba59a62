package blscache

import (
	"bytes"
	"testing"

	"github.com/go-kit/kit/metrics/generic"
	"github.com/stretchr/testify/require"

	"github.com/cometbft/cometbft-blscache/crypto/bls12381"
)

type signer struct {
	privKey *bls12381.PrivKey
	pubKey  bls12381.PubKey
}

func newSigner(t *testing.T, seed byte) signer {
	t.Helper()
	privKey, err := bls12381.GenPrivKeyFromSecret(bytes.Repeat([]byte{seed}, 32))
	require.NoError(t, err)
	return signer{privKey: privKey, pubKey: privKey.PubKey()}
}

func msg32(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

type testStats struct {
	hits      *generic.Counter
	misses    *generic.Counter
	evictions *generic.Counter
	imported  *generic.Counter
	size      *generic.Gauge
}

func testMetrics() (*Metrics, testStats) {
	stats := testStats{
		hits:      generic.NewCounter("hits"),
		misses:    generic.NewCounter("misses"),
		evictions: generic.NewCounter("evictions"),
		imported:  generic.NewCounter("imported_entries"),
		size:      generic.NewGauge("size"),
	}
	m := NopMetrics()
	m.Hits = stats.hits
	m.Misses = stats.misses
	m.Evictions = stats.evictions
	m.ImportedEntries = stats.imported
	m.Size = stats.size
	return m, stats
}

// distinctGTs returns n distinct GT elements: g, g², g³...
func distinctGTs(t *testing.T, n int) []bls12381.GTElement {
	t.Helper()
	s := newSigner(t, 200)
	g := bls12381.Pair(s.pubKey, ComputeAugmentedPoint(s.pubKey.Bytes(), []byte("gt")))

	gts := make([]bls12381.GTElement, n)
	acc := g
	for i := range gts {
		gts[i] = acc
		acc = acc.Mul(g)
	}
	return gts
}

func keyOf(b byte) CacheKey {
	var k CacheKey
	k[0] = b
	return k
}
