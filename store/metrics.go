package store

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	// MetricsSubsystem is a subsystem shared by all metrics exposed by this
	// package.
	MetricsSubsystem = "snapshot_store"
)

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// The duration of accesses to the snapshot store labeled by which method
	// was called on the store.
	AccessDurationSeconds metrics.Histogram `metrics_bucketsizes:"0.0002, 10, 5" metrics_buckettype:"exp" metrics_labels:"method"`

	// Number of entries in the last saved or loaded snapshot.
	Entries metrics.Gauge
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
		AccessDurationSeconds: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "access_duration_seconds",
			Help:      "The duration of accesses to the snapshot store labeled by which method was called on the store.",

			Buckets: stdprometheus.ExponentialBuckets(0.0002, 10, 5),
		}, append(labels, "method")).With(labelsAndValues...),
		Entries: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "entries",
			Help:      "Number of entries in the last saved or loaded snapshot.",
		}, labels).With(labelsAndValues...),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		AccessDurationSeconds: discard.NewHistogram(),
		Entries:               discard.NewGauge(),
	}
}
