package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cometbft/cometbft-blscache/blscache"
	"github.com/cometbft/cometbft-blscache/store"
)

var (
	snapshotFile string
	showEntries  bool
)

// SnapshotEntry is the JSON form of a cached pairing.
type SnapshotEntry struct {
	Key   HexBytes `json:"key"`
	Value HexBytes `json:"value"`
}

// SnapshotCmd groups the commands working on the persisted snapshot.
var SnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the persisted pairing cache snapshot",
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the saved snapshot to a JSON file, least recently used first",
	RunE:  snapshotExport,
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Validate a JSON snapshot and save it, keeping at most blscache.size entries",
	RunE:  snapshotImport,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved snapshot",
	RunE:  snapshotShow,
}

var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved snapshot",
	RunE:  snapshotClear,
}

func init() {
	snapshotExportCmd.Flags().StringVar(&snapshotFile, "out", "", "path of the JSON file to write")
	snapshotImportCmd.Flags().StringVar(&snapshotFile, "in", "", "path of the JSON file to read")
	snapshotShowCmd.Flags().BoolVar(&showEntries, "entries", false, "list the cache keys")

	SnapshotCmd.AddCommand(
		snapshotExportCmd,
		snapshotImportCmd,
		snapshotShowCmd,
		snapshotClearCmd,
	)
}

func withSnapshotStore(fn func(*store.SnapshotStore) error) error {
	ss, err := openSnapshotStore(config, store.NopMetrics())
	if err != nil {
		return err
	}
	defer func() {
		if err := ss.Close(); err != nil {
			logger.Error("Error closing snapshot store", "err", err)
		}
	}()
	return fn(ss)
}

func snapshotExport(*cobra.Command, []string) error {
	if snapshotFile == "" {
		return errors.New("--out is required")
	}
	return withSnapshotStore(func(ss *store.SnapshotStore) error {
		entries, err := ss.LoadSnapshot()
		if err != nil {
			return err
		}

		out := make([]SnapshotEntry, len(entries))
		for i, e := range entries {
			out[i] = SnapshotEntry{Key: e.Key, Value: e.Value}
		}
		bz, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(snapshotFile, bz, 0o600); err != nil {
			return err
		}

		logger.Info("Exported pairing cache snapshot", "entries", len(entries), "file", snapshotFile)
		return nil
	})
}

func snapshotImport(*cobra.Command, []string) error {
	if snapshotFile == "" {
		return errors.New("--in is required")
	}
	bz, err := os.ReadFile(snapshotFile)
	if err != nil {
		return err
	}
	var in []SnapshotEntry
	if err := json.Unmarshal(bz, &in); err != nil {
		return fmt.Errorf("can't parse snapshot: %w", err)
	}

	entries := make([]blscache.Entry, len(in))
	for i, e := range in {
		entries[i] = blscache.Entry{Key: e.Key, Value: e.Value}
	}

	// Going through a cache validates every entry and applies the
	// configured capacity.
	cache, err := blscache.NewBLSCache(config.BLSCache.Size, blscache.WithLogger(logger.With("module", "blscache")))
	if err != nil {
		return err
	}
	if err := cache.ImportAll(entries); err != nil {
		return err
	}

	return withSnapshotStore(func(ss *store.SnapshotStore) error {
		return ss.SaveSnapshot(cache.ExportAll())
	})
}

func snapshotShow(cmd *cobra.Command, _ []string) error {
	return withSnapshotStore(func(ss *store.SnapshotStore) error {
		entries, err := ss.LoadSnapshot()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "path:     %s\n", config.SnapshotDBFile())
		fmt.Fprintf(w, "entries:  %d\n", len(entries))
		fmt.Fprintf(w, "capacity: %d\n", config.BLSCache.Size)
		if showEntries {
			for i, e := range entries {
				fmt.Fprintf(w, "%6d %v\n", i, HexBytes(e.Key))
			}
		}
		return nil
	})
}

func snapshotClear(*cobra.Command, []string) error {
	return withSnapshotStore(func(ss *store.SnapshotStore) error {
		if err := ss.Clear(); err != nil {
			return err
		}
		logger.Info("Removed pairing cache snapshot", "path", config.SnapshotDBFile())
		return nil
	})
}
