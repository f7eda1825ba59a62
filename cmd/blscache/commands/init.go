package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	cfg "github.com/cometbft/cometbft-blscache/config"
	"github.com/cometbft/cometbft-blscache/store"
)

// InitFilesCmd initializes the home directory and the snapshot database.
var InitFilesCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the home directory",
	RunE:  initFiles,
}

func initFiles(*cobra.Command, []string) error {
	return initFilesWithConfig(config)
}

func initFilesWithConfig(config *cfg.Config) error {
	// config.toml is written by EnsureRoot while parsing the config
	logger.Info("Found config file", "path", filepath.Join(config.RootDir, cfg.DefaultConfigDir, cfg.DefaultConfigFileName))

	ss, err := openSnapshotStore(config, store.NopMetrics())
	if err != nil {
		return err
	}
	defer ss.Close()

	size, err := ss.Size()
	if err != nil {
		return err
	}
	if size > 0 {
		logger.Info("Found pairing cache snapshot", "path", config.SnapshotDBFile(), "entries", size)
	} else {
		logger.Info("Initialized snapshot database", "path", config.SnapshotDBFile())
	}
	return nil
}
