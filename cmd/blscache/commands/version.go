package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cometbft/cometbft-blscache/version"
)

var verbose bool

// VersionCmd ...
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version info",
	Run: func(cmd *cobra.Command, _ []string) {
		semVer := version.SemVer
		if version.GitCommitHash != "" {
			semVer += "+" + version.GitCommitHash
		}

		if verbose {
			values, err := json.MarshalIndent(struct {
				BLSCache       string `json:"blscache"`
				Scheme         string `json:"scheme"`
				SnapshotFormat uint64 `json:"snapshot_format"`
			}{
				BLSCache:       semVer,
				Scheme:         version.Scheme,
				SnapshotFormat: version.SnapshotFormat,
			}, "", "  ")
			if err != nil {
				panic(fmt.Sprintf("failed to marshal version info: %v", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(values))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), semVer)
		}
	},
}

func init() {
	VersionCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show scheme and snapshot format versions")
}
