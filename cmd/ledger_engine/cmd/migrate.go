package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or revert the database schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		if appCfg.LedgerStore != config.StorePostgres {
			return errors.New("migrate requires LEDGER_STORE=postgres")
		}
		return database.Migrate(appCfg.DatabaseURL, database.Direction(args[0]), logger)
	},
}
