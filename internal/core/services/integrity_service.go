package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type integrityService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
}

// NewIntegrityService creates the ledger verification service.
func NewIntegrityService(ledgerRepo portsrepo.LedgerReader) portssvc.IntegritySvc {
	return &integrityService{ledgerRepo: ledgerRepo}
}

var _ portssvc.IntegritySvc = (*integrityService)(nil)

// VerifyLedger recomputes every account balance from its lines and checks the
// trial balance law, all from one snapshot.
func (s *integrityService) VerifyLedger(ctx context.Context) (*domain.IntegrityReport, error) {
	activity, err := s.ledgerRepo.AccountActivity(ctx, domain.DateRange{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load account activity for verification")
		return nil, fmt.Errorf("failed to load account activity: %w", err)
	}

	report := &domain.IntegrityReport{
		CheckedAccounts: len(activity),
		Mismatches:      []domain.BalanceMismatch{},
		TotalDebits:     decimal.Zero,
		TotalCredits:    decimal.Zero,
	}
	for _, a := range activity {
		computed := accounting.BalanceDelta(a.Account.NormalBalance, a.TotalDebit, a.TotalCredit)
		if !computed.Equal(a.Account.Balance) {
			report.Mismatches = append(report.Mismatches, domain.BalanceMismatch{
				AccountNumber: a.Account.Number,
				Stored:        a.Account.Balance,
				Computed:      computed,
			})
		}
		report.TotalDebits = report.TotalDebits.Add(a.TotalDebit)
		report.TotalCredits = report.TotalCredits.Add(a.TotalCredit)
	}
	report.TrialBalanced = accounting.WithinTolerance(report.TotalDebits, report.TotalCredits)
	report.OK = report.TrialBalanced && len(report.Mismatches) == 0

	if report.OK {
		s.LogInfo(ctx, "Ledger verified", slog.Int("accounts", report.CheckedAccounts))
	} else {
		s.LogError(ctx, fmt.Errorf("ledger integrity violated"), "Ledger verification failed",
			slog.Int("mismatches", len(report.Mismatches)),
			slog.Bool("trial_balanced", report.TrialBalanced))
	}
	return report, nil
}
