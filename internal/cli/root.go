// Package cli provides the command-line interface for pgpeek.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhath/pgpeek/internal/cli/commands"
	"github.com/nhath/pgpeek/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "pgpeek",
		Short: "pgpeek - PostgreSQL browser",
		Long: `pgpeek browses a PostgreSQL server: list databases and tables, page through
table data with sorting, and run ad-hoc queries.

"pgpeek serve" exposes the HTTP API; "pgpeek tui" is the terminal client for it.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/pgpeek/config.toml)")

	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit))
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewTUICommand(config.KeyringSealer))
	rootCmd.AddCommand(commands.NewProfileCommand(config.KeyringSealer))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
