package commands

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/minio/sha256-simd"
	"github.com/spf13/cobra"

	"github.com/cometbft/cometbft-blscache/blscache"
	"github.com/cometbft/cometbft-blscache/crypto/bls12381"
)

var (
	benchPairs  int
	benchRounds int
)

// BenchCmd compares cached and uncached aggregate verification.
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare cached and uncached aggregate verification",
	Long: `Sign --pairs distinct messages with as many keys and verify the aggregate
signature --rounds times: once without the cache, once against a cold cache
and then against the warm cache.`,
	RunE: bench,
}

func init() {
	BenchCmd.Flags().IntVar(&benchPairs, "pairs", 50, "number of (public key, message) pairs")
	BenchCmd.Flags().IntVar(&benchRounds, "rounds", 3, "number of warm cache verifications")
}

// benchInput is a deterministic aggregate signature over pairs distinct
// messages.
type benchInput struct {
	pks  []bls12381.PubKey
	msgs [][]byte
	sig  bls12381.Signature
}

func newBenchInput(pairs int) (*benchInput, error) {
	in := &benchInput{
		pks:  make([]bls12381.PubKey, pairs),
		msgs: make([][]byte, pairs),
	}
	sigs := make([]bls12381.Signature, pairs)
	for i := 0; i < pairs; i++ {
		var idx [8]byte
		binary.BigEndian.PutUint64(idx[:], uint64(i))
		seed := sha256.Sum256(append([]byte("blscache bench key"), idx[:]...))

		privKey, err := bls12381.GenPrivKeyFromSecret(seed[:])
		if err != nil {
			return nil, err
		}
		msg := sha256.Sum256(append([]byte("blscache bench msg"), idx[:]...))

		in.pks[i] = privKey.PubKey()
		in.msgs[i] = msg[:]
		sigs[i] = privKey.Sign(msg[:])
	}
	in.sig = bls12381.AggregateSignatures(sigs...)
	return in, nil
}

// BenchResult is printed by the bench command.
type BenchResult struct {
	Pairs     int             `json:"pairs"`
	Uncached  time.Duration   `json:"uncached_ns"`
	ColdCache time.Duration   `json:"cold_cache_ns"`
	WarmCache []time.Duration `json:"warm_cache_ns"`
}

func bench(cmd *cobra.Command, _ []string) error {
	if benchPairs < 1 || benchRounds < 1 {
		return errors.New("--pairs and --rounds must be positive")
	}

	in, err := newBenchInput(benchPairs)
	if err != nil {
		return err
	}

	env, err := newCacheEnv(config, DefaultMetricsProvider(config.Instrumentation))
	if err != nil {
		return err
	}
	defer env.Close()

	res, err := runBench(env.cache, in, benchRounds)
	if err != nil {
		return err
	}
	logger.Info("Finished benchmark",
		"pairs", res.Pairs,
		"uncached", res.Uncached,
		"cold_cache", res.ColdCache,
	)

	if err := env.persist(); err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), res)
}

func runBench(cache *blscache.BLSCache, in *benchInput, rounds int) (*BenchResult, error) {
	res := &BenchResult{Pairs: len(in.pks)}

	start := time.Now()
	if !bls12381.AggregateVerify(in.pks, in.msgs, in.sig) {
		return nil, errors.New("uncached verification failed")
	}
	res.Uncached = time.Since(start)

	timed := func() (time.Duration, error) {
		start := time.Now()
		ok, err := cache.AggregateVerify(in.pks, in.msgs, in.sig)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, errors.New("cached verification failed")
		}
		return time.Since(start), nil
	}

	cold, err := timed()
	if err != nil {
		return nil, err
	}
	res.ColdCache = cold
	for i := 0; i < rounds; i++ {
		d, err := timed()
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}
		res.WarmCache = append(res.WarmCache, d)
	}
	return res, nil
}
