package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cometbft/cometbft-blscache/blscache"
	cfg "github.com/cometbft/cometbft-blscache/config"
	"github.com/cometbft/cometbft-blscache/store"
)

const readHeaderTimeout = 10 * time.Second

// MetricsProvider returns the metrics used by the cache and the snapshot
// store.
type MetricsProvider func() (*blscache.Metrics, *store.Metrics)

// DefaultMetricsProvider returns Metrics build using Prometheus client library
// if Prometheus is enabled. Otherwise, it returns no-op Metrics.
func DefaultMetricsProvider(config *cfg.InstrumentationConfig) MetricsProvider {
	return func() (*blscache.Metrics, *store.Metrics) {
		if config.Prometheus {
			return blscache.PrometheusMetrics(config.Namespace), store.PrometheusMetrics(config.Namespace)
		}
		return blscache.NopMetrics(), store.NopMetrics()
	}
}

// cacheEnv is a pairing cache with the snapshot store it was restored from.
type cacheEnv struct {
	cache      *blscache.BLSCache
	store      *store.SnapshotStore
	prometheus *http.Server
}

func openSnapshotStore(conf *cfg.Config, metrics *store.Metrics) (*store.SnapshotStore, error) {
	db, err := cfg.DefaultDBProvider(&cfg.DBContext{ID: conf.BLSCache.SnapshotDB, Config: conf})
	if err != nil {
		return nil, err
	}
	return store.NewSnapshotStore(db, store.WithMetrics(metrics)), nil
}

// newCacheEnv builds a cache as configured. When snapshots are persisted the
// saved snapshot is imported; a snapshot that can't be used is logged and
// the cache starts cold.
func newCacheEnv(conf *cfg.Config, metricsProvider MetricsProvider) (*cacheEnv, error) {
	cacheMetrics, storeMetrics := metricsProvider()

	cache, err := blscache.NewBLSCache(conf.BLSCache.Size,
		blscache.WithLogger(logger.With("module", "blscache")),
		blscache.WithMetrics(cacheMetrics),
	)
	if err != nil {
		return nil, err
	}

	env := &cacheEnv{cache: cache}
	if conf.Instrumentation.IsPrometheusEnabled() {
		env.prometheus = startPrometheusServer(conf.Instrumentation)
	}
	if !conf.BLSCache.PersistSnapshot {
		return env, nil
	}

	env.store, err = openSnapshotStore(conf, storeMetrics)
	if err != nil {
		env.Close()
		return nil, err
	}

	entries, err := env.store.LoadSnapshot()
	if err != nil {
		logger.Error("Can't load pairing cache snapshot, starting cold", "err", err)
		return env, nil
	}
	if err := cache.ImportAll(entries); err != nil {
		logger.Error("Can't restore pairing cache snapshot, starting cold", "err", err)
	}
	return env, nil
}

// persist saves the cache to the snapshot store, if there is one.
func (env *cacheEnv) persist() error {
	if env.store == nil {
		return nil
	}
	entries := env.cache.ExportAll()
	if err := env.store.SaveSnapshot(entries); err != nil {
		return err
	}
	logger.With("module", "store").Info("Saved pairing cache snapshot", "entries", len(entries))
	return nil
}

func (env *cacheEnv) Close() {
	if env.prometheus != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := env.prometheus.Shutdown(ctx); err != nil {
			logger.Error("Prometheus HTTP server Shutdown", "err", err)
		}
	}
	if env.store != nil {
		if err := env.store.Close(); err != nil {
			logger.Error("Error closing snapshot store", "err", err)
		}
	}
}

// startPrometheusServer starts a Prometheus HTTP server, listening for
// metrics collectors on the configured address.
func startPrometheusServer(config *cfg.InstrumentationConfig) *http.Server {
	srv := &http.Server{
		Addr: config.PrometheusListenAddr,
		Handler: promhttp.InstrumentMetricHandler(
			prometheus.DefaultRegisterer, promhttp.HandlerFor(
				prometheus.DefaultGatherer,
				promhttp.HandlerOpts{MaxRequestsInFlight: config.MaxOpenConnections},
			),
		),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			// Error starting or closing listener:
			logger.Error("Prometheus HTTP server ListenAndServe", "err", err)
		}
	}()
	return srv
}
