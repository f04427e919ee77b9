package commands

import (
	"github.com/mosaicnetworks/eoskeys/src/config"
	"github.com/spf13/cobra"
)

var (
	_config = config.NewDefaultConfig()
)

// NewRootCmd produces the root command of eoskeys with all its subcommands
// attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "eoskeys",
		Short:             "EOSIO key and signature codec",
		PersistentPreRunE: loadConfig,
		TraverseChildren:  true,
	}

	AddRootFlags(rootCmd)

	rootCmd.AddCommand(
		VersionCmd,
		NewKeygenCmd(),
		NewPubkeyCmd(),
		NewSignCmd(),
		NewVerifyCmd(),
		NewRecoverCmd(),
	)

	return rootCmd
}

// AddRootFlags adds the flags shared by every command
func AddRootFlags(cmd *cobra.Command) {
	defaults := config.NewDefaultConfig()

	cmd.PersistentFlags().String("datadir", defaults.DataDir, "Top-level directory for configuration and keyfiles")
	cmd.PersistentFlags().String("log", defaults.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.PersistentFlags().String("log-file", defaults.LogFile, "File receiving a copy of the logs")
	cmd.PersistentFlags().String("network", defaults.Network, "Network of generated keys: mainnet or testnet")
	cmd.PersistentFlags().Bool("compressed", defaults.Compressed, "Generate keys for compressed public points")
	cmd.PersistentFlags().String("keyfile", defaults.KeyfileName, "Name of the keyfile inside datadir, or absolute path")
}
