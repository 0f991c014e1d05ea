package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

const (
	// QueueDefault is the queue every ledger task runs on.
	QueueDefault = "default"
	// TaskLedgerIntegrity verifies stored balances against the ledger lines.
	TaskLedgerIntegrity = "ledger:integrity"
)

// NewLedgerIntegrityTask builds the integrity task. It carries no payload.
func NewLedgerIntegrityTask() *asynq.Task {
	return asynq.NewTask(TaskLedgerIntegrity, nil)
}

// IntegrityHandler runs the ledger integrity check for asynq.
type IntegrityHandler struct {
	svc    portssvc.IntegritySvc
	logger *slog.Logger
}

func NewIntegrityHandler(svc portssvc.IntegritySvc, logger *slog.Logger) *IntegrityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &IntegrityHandler{svc: svc, logger: logger}
}

// ProcessTask fails without retry when the ledger is inconsistent, since
// rerunning the check cannot repair it. Storage errors are retried.
func (h *IntegrityHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	report, err := h.svc.VerifyLedger(ctx)
	if err != nil {
		h.logger.Error("Ledger integrity check failed to run", slog.String("error", err.Error()))
		return err
	}

	if !report.OK {
		for _, m := range report.Mismatches {
			h.logger.Error("Account balance does not match its lines",
				slog.String("account_number", m.AccountNumber),
				slog.String("stored", m.Stored.StringFixed(2)),
				slog.String("computed", m.Computed.StringFixed(2)))
		}
		h.logger.Error("Ledger integrity check found problems",
			slog.Int("mismatches", len(report.Mismatches)),
			slog.Bool("trial_balanced", report.TrialBalanced))
		return fmt.Errorf("ledger integrity: %d mismatched accounts, trial balanced %t: %w",
			len(report.Mismatches), report.TrialBalanced, asynq.SkipRetry)
	}

	h.logger.Info("Ledger integrity check passed",
		slog.String("job", TaskLedgerIntegrity),
		slog.Int("checked_accounts", report.CheckedAccounts),
		slog.String("total_debits", report.TotalDebits.StringFixed(2)))
	return nil
}
