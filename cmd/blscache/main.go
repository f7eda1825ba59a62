package main

import (
	"os"
	"path/filepath"

	cmd "github.com/cometbft/cometbft-blscache/cmd/blscache/commands"
	"github.com/cometbft/cometbft-blscache/libs/cli"
)

func main() {
	rootCmd := cmd.RootCmd
	rootCmd.AddCommand(
		cmd.InitFilesCmd,
		cmd.VerifyCmd,
		cmd.SnapshotCmd,
		cmd.BenchCmd,
		cmd.VersionCmd,
	)

	cmd := cli.PrepareBaseCmd(rootCmd, "BLSCACHE", os.ExpandEnv(filepath.Join("$HOME", ".blscache")))
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
