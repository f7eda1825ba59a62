package blscache

import (
	"time"

	"github.com/cometbft/cometbft-blscache/crypto/bls12381"
	"github.com/cometbft/cometbft-blscache/libs/log"
)

// DefaultCacheSize is the capacity used by NewDefaultBLSCache.
const DefaultCacheSize = 50000

// BLSCache memoizes the pairings e(pk, H(pk || msg)) computed while verifying
// augmented-scheme aggregate signatures. A transaction validated once when it
// enters the mempool is then cheap to re-validate when it shows up in a block.
//
// When none of the pairings are expected to be cached, e.g. while catching up
// on old blocks, bls12381.AggregateVerify is faster.
//
// BLSCache is not safe for concurrent use; see SyncBLSCache.
type BLSCache struct {
	cache   *PairingCache
	logger  log.Logger
	metrics *Metrics
}

// Option sets an optional parameter on the BLSCache.
type Option func(*BLSCache)

// WithMetrics sets the metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(c *BLSCache) { c.metrics = metrics }
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(c *BLSCache) { c.logger = logger }
}

// NewBLSCache returns an empty cache holding at most capacity pairings.
func NewBLSCache(capacity int, options ...Option) (*BLSCache, error) {
	cache, err := NewPairingCache(capacity)
	if err != nil {
		return nil, err
	}

	c := &BLSCache{
		cache:   cache,
		logger:  log.NewNopLogger(),
		metrics: NopMetrics(),
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// NewDefaultBLSCache returns an empty cache of DefaultCacheSize.
func NewDefaultBLSCache(options ...Option) *BLSCache {
	c, err := NewBLSCache(DefaultCacheSize, options...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of cached pairings.
func (c *BLSCache) Len() int {
	return c.cache.Len()
}

// IsEmpty reports whether nothing is cached.
func (c *BLSCache) IsEmpty() bool {
	return c.cache.IsEmpty()
}

// Capacity returns the maximum number of cached pairings.
func (c *BLSCache) Capacity() int {
	return c.cache.Capacity()
}

// Contains reports whether the pairing for (pk, msg) is cached, without
// affecting its recency.
func (c *BLSCache) Contains(pk bls12381.PubKey, msg []byte) bool {
	return c.cache.Contains(ComputeCacheKey(pk.Bytes(), msg))
}

// ResolvePairing returns e(pk, H(pk || msg)), from the cache when possible.
// On a miss the pairing is computed and stored. Both paths return the same
// value bit for bit.
func (c *BLSCache) ResolvePairing(pk bls12381.PubKey, msg []byte) bls12381.GTElement {
	aug := augment(pk.Bytes(), msg)
	key := aug.key()

	if gt, ok := c.cache.Get(key); ok {
		c.metrics.Hits.Add(1)
		return gt
	}
	c.metrics.Misses.Add(1)

	start := time.Now()
	gt := bls12381.Pair(pk, aug.point())
	c.metrics.PairingDurationSeconds.Observe(time.Since(start).Seconds())

	if c.cache.Put(key, gt) {
		c.metrics.Evictions.Add(1)
		c.logger.Debug("Evicted least recently used pairing", "inserted", log.LazyHex(key[:]))
	}
	c.metrics.Size.Set(float64(c.cache.Len()))
	return gt
}

// AggregateVerify verifies sig as the aggregate of augmented-scheme
// signatures by pks[i] over msgs[i]. A public key may appear several times;
// every (key, message) pair is cached on its own. With no pairs, only the
// identity signature verifies.
//
// An invalid signature is reported as false with a nil error. pks and msgs
// of different lengths yield ErrLengthMismatch.
func (c *BLSCache) AggregateVerify(pks []bls12381.PubKey, msgs [][]byte, sig bls12381.Signature) (bool, error) {
	if len(pks) != len(msgs) {
		return false, ErrLengthMismatch{PubKeys: len(pks), Messages: len(msgs)}
	}

	gts := make([]bls12381.GTElement, len(pks))
	for i, pk := range pks {
		gts[i] = c.ResolvePairing(pk, msgs[i])
	}

	ok := bls12381.AggregateVerifyGT(sig, gts)
	if ok {
		c.metrics.Verifications.With("result", "valid").Add(1)
	} else {
		c.metrics.Verifications.With("result", "invalid").Add(1)
	}
	return ok, nil
}

// AggregateVerifyBytes is AggregateVerify over encoded public keys and
// signature. Malformed encodings are returned as bls12381.ErrDecode errors.
func (c *BLSCache) AggregateVerifyBytes(pubKeys [][]byte, msgs [][]byte, sig []byte) (bool, error) {
	if len(pubKeys) != len(msgs) {
		return false, ErrLengthMismatch{PubKeys: len(pubKeys), Messages: len(msgs)}
	}

	pks := make([]bls12381.PubKey, len(pubKeys))
	for i, bz := range pubKeys {
		pk, err := bls12381.NewPublicKeyFromBytes(bz)
		if err != nil {
			return false, err
		}
		pks[i] = pk
	}

	signature, err := bls12381.NewSignatureFromBytes(sig)
	if err != nil {
		return false, err
	}

	return c.AggregateVerify(pks, msgs, signature)
}

// Clone returns an independent deep copy sharing the logger and metrics.
func (c *BLSCache) Clone() *BLSCache {
	return &BLSCache{
		cache:   c.cache.Clone(),
		logger:  c.logger,
		metrics: c.metrics,
	}
}
