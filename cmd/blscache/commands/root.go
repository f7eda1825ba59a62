package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/cometbft/cometbft-blscache/config"
	"github.com/cometbft/cometbft-blscache/libs/cli"
	cmtflags "github.com/cometbft/cometbft-blscache/libs/cli/flags"
	"github.com/cometbft/cometbft-blscache/libs/log"
)

var (
	config = cfg.DefaultConfig()
	logger = log.NewLogger(os.Stdout)
)

func init() {
	registerFlagsRootCmd(RootCmd)
}

func registerFlagsRootCmd(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log_level", config.LogLevel, "log level")
}

// ConfigHome returns the home directory, preferring $BLSCACHEHOME over the
// --home flag.
func ConfigHome(cmd *cobra.Command) (string, error) {
	if home := os.Getenv("BLSCACHEHOME"); home != "" {
		return home, nil
	}
	// Default: $HOME/.blscache
	return cmd.Flags().GetString(cli.HomeFlag)
}

// ParseConfig retrieves the default environment configuration,
// sets up the root and ensures that the root exists.
func ParseConfig(cmd *cobra.Command) (*cfg.Config, error) {
	conf := cfg.DefaultConfig()
	err := viper.Unmarshal(conf)
	if err != nil {
		return nil, err
	}

	home, err := ConfigHome(cmd)
	if err != nil {
		return nil, err
	}

	conf.SetRoot(home)
	cfg.EnsureRoot(conf.RootDir)
	if err := conf.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("error in config file: %w", err)
	}
	return conf, nil
}

// RootCmd is the root command for the pairing cache tool.
var RootCmd = &cobra.Command{
	Use:   "blscache",
	Short: "Cached aggregate verification of augmented BLS signatures",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) (err error) {
		if cmd.Name() == VersionCmd.Name() {
			return nil
		}

		config, err = ParseConfig(cmd)
		if err != nil {
			return err
		}

		if config.LogFormat == cfg.LogFormatJSON {
			logger = log.NewJSONLogger(os.Stdout)
		}

		logger, err = cmtflags.ParseLogLevel(config.LogLevel, logger, cfg.DefaultLogLevel)
		if err != nil {
			return err
		}

		return nil
	},
}
