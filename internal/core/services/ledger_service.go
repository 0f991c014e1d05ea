package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

// ledgerService computes running balances over one account's lines.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
}

// NewLedgerService creates a new ledger reader.
func NewLedgerService(ledgerRepo portsrepo.LedgerReader) portssvc.LedgerReaderSvc {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerReaderSvc = (*ledgerService)(nil)

// GeneralLedger returns the account's lines annotated with a running balance
// that starts at zero for the first line in the range. With an open range the
// last running balance equals the account's stored balance.
func (s *ledgerService) GeneralLedger(ctx context.Context, accountNumber string, dateRange domain.DateRange) (*domain.GeneralLedger, error) {
	account, lines, err := s.ledgerRepo.LinesForAccount(ctx, accountNumber, dateRange)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account lines", slog.String("account_number", accountNumber))
		}
		return nil, err
	}

	running := accounting.RunningBalances(account.NormalBalance, lines)
	entries := make([]domain.GeneralLedgerEntry, len(lines))
	for i := range lines {
		entries[i] = domain.GeneralLedgerEntry{Line: lines[i], RunningBalance: running[i]}
	}

	if dateRange.IsOpen() && len(running) > 0 && !running[len(running)-1].Equal(account.Balance) {
		s.LogWarn(ctx, "Running balance disagrees with stored balance",
			slog.String("account_number", accountNumber),
			slog.String("running", running[len(running)-1].StringFixed(2)),
			slog.String("stored", account.Balance.StringFixed(2)))
	}

	return &domain.GeneralLedger{Account: *account, Entries: entries}, nil
}
