// Package cmd provides the CLI commands of the ledger engine.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

var (
	debug bool

	appCfg *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledger_engine",
	Short: "Double-entry general ledger service",
	Long: `ledger_engine runs a double-entry general ledger: chart of accounts,
balanced journal posting, general ledger views and financial reports.

Configuration is read from the environment and an optional .env file.

Example:
  ledger_engine migrate up
  ledger_engine seed
  ledger_engine serve
  ledger_engine worker`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
		slog.SetDefault(logger)

		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Error("Failed to load config", slog.String("error", err.Error()))
			return err
		}
		appCfg = cfg
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(tokenCmd)
}
