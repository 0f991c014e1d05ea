package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/seed"
)

const seedUser = "system"

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the chart of accounts",
	Long: `Create every account of the chart that does not exist yet. Existing
accounts are left untouched, so seeding twice is harmless.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if appCfg.LedgerStore != config.StorePostgres {
			return errors.New("seed requires LEDGER_STORE=postgres; use serve --seed for the memory store")
		}
		b, err := openBackend(cmd.Context(), appCfg, true)
		if err != nil {
			return err
		}
		defer b.Close()

		created, skipped, err := seedChart(cmd.Context(), b.services(appCfg).Account, seedFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %d accounts, skipped %d existing\n", created, skipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "YAML chart of accounts (default: built-in chart)")
}

func seedChart(ctx context.Context, accounts portssvc.AccountWriterSvc, path string) (int, int, error) {
	var (
		chart []dto.CreateAccountRequest
		err   error
	)
	if path == "" {
		chart, err = seed.DefaultChart()
	} else {
		chart, err = seed.LoadFile(path)
	}
	if err != nil {
		logger.Error("Failed to load chart of accounts", slog.String("error", err.Error()))
		return 0, 0, err
	}
	return accounts.SeedChartOfAccounts(ctx, chart, seedUser)
}
