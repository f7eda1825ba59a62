package blscache

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	// MetricsSubsystem is a subsystem shared by all metrics exposed by this
	// package.
	MetricsSubsystem = "blscache"
)

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// Number of pairings currently cached.
	Size metrics.Gauge

	// Number of pairings served from the cache.
	Hits metrics.Counter

	// Number of pairings that had to be computed.
	Misses metrics.Counter

	// Number of least recently used pairings dropped to make room.
	Evictions metrics.Counter

	// Number of entries loaded from snapshots.
	ImportedEntries metrics.Counter

	// Time spent hashing to G2 and evaluating one pairing on a miss.
	PairingDurationSeconds metrics.Histogram `metrics_bucketsizes:"0.0001, 2, 10" metrics_buckettype:"exp"`

	// Number of aggregate verifications labeled by outcome.
	Verifications metrics.Counter `metrics_labels:"result"`
}

// PrometheusMetrics returns Metrics build using Prometheus client library.
// Optionally, labels can be provided along with their values ("foo",
// "fooValue").
func PrometheusMetrics(namespace string, labelsAndValues ...string) *Metrics {
	labels := []string{}
	for i := 0; i < len(labelsAndValues); i += 2 {
		labels = append(labels, labelsAndValues[i])
	}
	return &Metrics{
		Size: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "size",
			Help:      "Number of pairings currently cached.",
		}, labels).With(labelsAndValues...),
		Hits: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "hits",
			Help:      "Number of pairings served from the cache.",
		}, labels).With(labelsAndValues...),
		Misses: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "misses",
			Help:      "Number of pairings that had to be computed.",
		}, labels).With(labelsAndValues...),
		Evictions: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "evictions",
			Help:      "Number of least recently used pairings dropped to make room.",
		}, labels).With(labelsAndValues...),
		ImportedEntries: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "imported_entries",
			Help:      "Number of entries loaded from snapshots.",
		}, labels).With(labelsAndValues...),
		PairingDurationSeconds: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "pairing_duration_seconds",
			Help:      "Time spent hashing to G2 and evaluating one pairing on a miss.",

			Buckets: stdprometheus.ExponentialBuckets(0.0001, 2, 10),
		}, labels).With(labelsAndValues...),
		Verifications: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "verifications",
			Help:      "Number of aggregate verifications labeled by outcome.",
		}, append(labels, "result")).With(labelsAndValues...),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		Size:                   discard.NewGauge(),
		Hits:                   discard.NewCounter(),
		Misses:                 discard.NewCounter(),
		Evictions:              discard.NewCounter(),
		ImportedEntries:        discard.NewCounter(),
		PairingDurationSeconds: discard.NewHistogram(),
		Verifications:          discard.NewCounter(),
	}
}
