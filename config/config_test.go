package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cometbft/cometbft-blscache/blscache"
	"github.com/cometbft/cometbft-blscache/config"
)

func TestDefaultConfig(t *testing.T) {
	assert := assert.New(t)

	// set up some defaults
	cfg := config.DefaultConfig()
	assert.NotNil(cfg.BLSCache)
	assert.NotNil(cfg.Instrumentation)
	assert.Equal(blscache.DefaultCacheSize, cfg.BLSCache.Size)

	// check the root dir stuff...
	cfg.SetRoot("/foo")
	assert.Equal("/foo/data", cfg.DBDir())
	assert.Equal("/foo/data/blscache.db", cfg.SnapshotDBFile())

	cfg.DBPath = "/opt/data"
	assert.Equal("/opt/data", cfg.DBDir())
}

func TestConfigValidateBasic(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.ValidateBasic())

	// tamper with the cache size
	cfg.BLSCache.Size = 0
	err := cfg.ValidateBasic()
	var inSection config.ErrInSection
	require.ErrorAs(t, err, &inSection)
	assert.Equal(t, "blscache", inSection.Section)
	assert.ErrorAs(t, err, &config.ErrNotPositive{})
}

func TestBaseConfigValidateBasic(t *testing.T) {
	cfg := config.TestBaseConfig()
	require.NoError(t, cfg.ValidateBasic())

	// tamper with log format
	cfg.LogFormat = "invalid"
	require.ErrorIs(t, cfg.ValidateBasic(), config.ErrUnknownLogFormat)
	cfg.LogFormat = config.LogFormatJSON

	cfg.DBBackend = "rocksdb"
	require.ErrorAs(t, cfg.ValidateBasic(), &config.ErrUnknownDBBackend{})
}

func TestBLSCacheConfigValidateBasic(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(*config.BLSCacheConfig)
		wantErr bool
	}{
		{"default", func(*config.BLSCacheConfig) {}, false},
		{"size 1", func(c *config.BLSCacheConfig) { c.Size = 1 }, false},
		{"negative size", func(c *config.BLSCacheConfig) { c.Size = -1 }, true},
		{"empty snapshot db", func(c *config.BLSCacheConfig) { c.SnapshotDB = "" }, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.TestBLSCacheConfig()
			tc.modify(cfg)
			if tc.wantErr {
				assert.Error(t, cfg.ValidateBasic())
			} else {
				assert.NoError(t, cfg.ValidateBasic())
			}
		})
	}
}

func TestInstrumentationConfigValidateBasic(t *testing.T) {
	cfg := config.TestInstrumentationConfig()
	require.NoError(t, cfg.ValidateBasic())
	assert.False(t, cfg.IsPrometheusEnabled())

	cfg.Prometheus = true
	assert.True(t, cfg.IsPrometheusEnabled())

	cfg.PrometheusListenAddr = ""
	assert.Error(t, cfg.ValidateBasic())
}
