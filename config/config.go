package config

import (
	"errors"
	"path/filepath"

	dbm "github.com/cometbft/cometbft-db"

	"github.com/cometbft/cometbft-blscache/blscache"
)

const (
	// LogFormatPlain is a format for colored text.
	LogFormatPlain = "plain"
	// LogFormatJSON is a format for json output.
	LogFormatJSON = "json"

	// DefaultLogLevel defines a default log level as INFO.
	DefaultLogLevel = "info"

	DefaultConfigDir = "config"
	DefaultDataDir   = "data"

	DefaultConfigFileName = "config.toml"

	// DefaultSnapshotDBName is the name of the database holding pairing cache
	// snapshots.
	DefaultSnapshotDBName = "blscache"
)

var defaultConfigFilePath = filepath.Join(DefaultConfigDir, DefaultConfigFileName)

// Config defines the top level configuration for the blscache tool.
type Config struct {
	// Top level options use an anonymous struct
	BaseConfig `mapstructure:",squash"`

	// Options for the pairing cache
	BLSCache *BLSCacheConfig `mapstructure:"blscache"`

	// Options for metrics
	Instrumentation *InstrumentationConfig `mapstructure:"instrumentation"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseConfig:      DefaultBaseConfig(),
		BLSCache:        DefaultBLSCacheConfig(),
		Instrumentation: DefaultInstrumentationConfig(),
	}
}

// TestConfig returns a configuration that can be used for testing.
func TestConfig() *Config {
	return &Config{
		BaseConfig:      TestBaseConfig(),
		BLSCache:        TestBLSCacheConfig(),
		Instrumentation: TestInstrumentationConfig(),
	}
}

// SetRoot sets the RootDir for all Config structs.
func (cfg *Config) SetRoot(root string) *Config {
	cfg.BaseConfig.RootDir = root
	return cfg
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *Config) ValidateBasic() error {
	if err := cfg.BaseConfig.ValidateBasic(); err != nil {
		return err
	}
	if err := cfg.BLSCache.ValidateBasic(); err != nil {
		return ErrInSection{Section: "blscache", Err: err}
	}
	if err := cfg.Instrumentation.ValidateBasic(); err != nil {
		return ErrInSection{Section: "instrumentation", Err: err}
	}
	return nil
}

// SnapshotDBFile returns the path of the snapshot database.
func (cfg *Config) SnapshotDBFile() string {
	return filepath.Join(cfg.DBDir(), cfg.BLSCache.SnapshotDB+".db")
}

// -----------------------------------------------------------------------------
// BaseConfig

// BaseConfig defines the base configuration for the blscache tool.
type BaseConfig struct {
	// The root directory for all data.
	// This should be set in viper so it can unmarshal into this struct
	RootDir string `mapstructure:"home"`

	// Database backend: goleveldb | memdb
	// * goleveldb (github.com/syndtr/goleveldb)
	//   - pure go
	//   - stable
	// * memdb
	//   - in memory, nothing survives a restart
	DBBackend string `mapstructure:"db_backend"`

	// Database directory
	DBPath string `mapstructure:"db_dir"`

	// Output level for logging
	LogLevel string `mapstructure:"log_level"`

	// Output format: 'plain' (colored text) or 'json'
	LogFormat string `mapstructure:"log_format"`
}

// DefaultBaseConfig returns a default base configuration.
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		DBBackend: string(dbm.GoLevelDBBackend),
		DBPath:    DefaultDataDir,
		LogLevel:  DefaultLogLevel,
		LogFormat: LogFormatPlain,
	}
}

// TestBaseConfig returns a base configuration for testing.
func TestBaseConfig() BaseConfig {
	cfg := DefaultBaseConfig()
	cfg.DBBackend = string(dbm.MemDBBackend)
	return cfg
}

// DBDir returns the full path to the database directory.
func (cfg BaseConfig) DBDir() string {
	return rootify(cfg.DBPath, cfg.RootDir)
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg BaseConfig) ValidateBasic() error {
	switch cfg.LogFormat {
	case LogFormatPlain, LogFormatJSON:
	default:
		return ErrUnknownLogFormat
	}
	switch dbm.BackendType(cfg.DBBackend) {
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return ErrUnknownDBBackend{Backend: cfg.DBBackend}
	}
	return nil
}

// -----------------------------------------------------------------------------
// BLSCacheConfig

// BLSCacheConfig defines the configuration of the pairing cache.
type BLSCacheConfig struct {
	// Maximum number of cached pairings. Each one costs about 600 bytes.
	Size int `mapstructure:"size"`

	// Save the cache to the snapshot database after each command and restore
	// it on startup.
	PersistSnapshot bool `mapstructure:"persist_snapshot"`

	// Name of the snapshot database inside the database directory.
	SnapshotDB string `mapstructure:"snapshot_db"`
}

// DefaultBLSCacheConfig returns a default configuration for the pairing cache.
func DefaultBLSCacheConfig() *BLSCacheConfig {
	return &BLSCacheConfig{
		Size:            blscache.DefaultCacheSize,
		PersistSnapshot: true,
		SnapshotDB:      DefaultSnapshotDBName,
	}
}

// TestBLSCacheConfig returns a configuration for testing the pairing cache.
func TestBLSCacheConfig() *BLSCacheConfig {
	cfg := DefaultBLSCacheConfig()
	cfg.Size = 100
	cfg.PersistSnapshot = false
	return cfg
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *BLSCacheConfig) ValidateBasic() error {
	if cfg.Size < 1 {
		return ErrNotPositive{Field: "size"}
	}
	if cfg.SnapshotDB == "" {
		return errors.New("snapshot_db can't be empty")
	}
	return nil
}

// -----------------------------------------------------------------------------
// InstrumentationConfig

// InstrumentationConfig defines the configuration for metrics reporting.
type InstrumentationConfig struct {
	// When true, Prometheus metrics are served under /metrics on
	// PrometheusListenAddr.
	Prometheus bool `mapstructure:"prometheus"`

	// Address to listen for Prometheus collector(s) connections.
	PrometheusListenAddr string `mapstructure:"prometheus_listen_addr"`

	// Maximum number of simultaneous connections.
	// If you want to accept a larger number than the default, make sure
	// you increase your OS limits.
	// 0 - unlimited.
	MaxOpenConnections int `mapstructure:"max_open_connections"`

	// Instrumentation namespace.
	Namespace string `mapstructure:"namespace"`
}

// DefaultInstrumentationConfig returns a default configuration for metrics
// reporting.
func DefaultInstrumentationConfig() *InstrumentationConfig {
	return &InstrumentationConfig{
		Prometheus:           false,
		PrometheusListenAddr: ":26660",
		MaxOpenConnections:   3,
		Namespace:            "blscache",
	}
}

// TestInstrumentationConfig returns a default configuration for metrics
// reporting.
func TestInstrumentationConfig() *InstrumentationConfig {
	return DefaultInstrumentationConfig()
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *InstrumentationConfig) ValidateBasic() error {
	if cfg.Prometheus && cfg.PrometheusListenAddr == "" {
		return errors.New("prometheus_listen_addr can't be empty when prometheus is enabled")
	}
	if cfg.MaxOpenConnections < 0 {
		return errors.New("max_open_connections can't be negative")
	}
	return nil
}

// IsPrometheusEnabled returns true if Prometheus metrics are enabled.
func (cfg *InstrumentationConfig) IsPrometheusEnabled() bool {
	return cfg.Prometheus && cfg.PrometheusListenAddr != ""
}

// -----------------------------------------------------------------------------
// Utils

// helper function to make config creation independent of root dir.
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
