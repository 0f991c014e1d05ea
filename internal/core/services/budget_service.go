package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type budgetService struct {
	BaseService
	budgetRepo  portsrepo.BudgetRepositoryFacade
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerReader
}

// NewBudgetService creates the budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerReader) portssvc.BudgetSvc {
	return &budgetService{budgetRepo: budgetRepo, accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.BudgetSvc = (*budgetService)(nil)

func validFiscalMonth(month int) bool {
	return month >= 1 && month <= 12
}

// SetBudget inserts or replaces the allocation of one account for one month.
func (s *budgetService) SetBudget(ctx context.Context, req dto.SetBudgetRequest, userID string) (*domain.BudgetAllocation, error) {
	if !validFiscalMonth(req.FiscalMonth) || req.FiscalYear <= 0 {
		return nil, fmt.Errorf("%w: invalid fiscal period %d-%d", apperrors.ErrValidation, req.FiscalYear, req.FiscalMonth)
	}
	budgeted := accounting.RoundMoney(req.Budgeted)
	if budgeted.IsNegative() {
		return nil, fmt.Errorf("%w: budgeted amount must not be negative", apperrors.ErrValidation)
	}
	if _, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.UnknownAccountError{AccountNumber: req.AccountNumber}
		}
		return nil, fmt.Errorf("failed to check account: %w", err)
	}

	now := s.Now()
	userID = orSystem(userID)
	saved, err := s.budgetRepo.UpsertBudget(ctx, domain.BudgetAllocation{
		BudgetID:      uuid.NewString(),
		FiscalYear:    req.FiscalYear,
		FiscalMonth:   req.FiscalMonth,
		AccountNumber: req.AccountNumber,
		Budgeted:      budgeted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save budget allocation", slog.String("account_number", req.AccountNumber))
		return nil, err
	}
	s.LogInfo(ctx, "Budget allocation saved",
		slog.String("account_number", saved.AccountNumber),
		slog.Int("fiscal_year", saved.FiscalYear),
		slog.Int("fiscal_month", saved.FiscalMonth))
	return saved, nil
}

// BudgetAnalysis computes actual, variance and variance percentage for every
// allocation of the year (or of one month). Actual is the account's
// balance movement during the allocation's month.
func (s *budgetService) BudgetAnalysis(ctx context.Context, fiscalYear int, fiscalMonth *int) ([]domain.BudgetVariance, error) {
	if fiscalMonth != nil && !validFiscalMonth(*fiscalMonth) {
		return nil, fmt.Errorf("%w: invalid fiscal month %d", apperrors.ErrValidation, *fiscalMonth)
	}
	budgets, err := s.budgetRepo.ListBudgets(ctx, fiscalYear, fiscalMonth)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets")
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	// One activity snapshot per distinct month.
	activityByMonth := make(map[int]map[string]domain.AccountActivity)
	rows := make([]domain.BudgetVariance, 0, len(budgets))
	for _, b := range budgets {
		activity, ok := activityByMonth[b.FiscalMonth]
		if !ok {
			period := b.Period()
			list, err := s.ledgerRepo.AccountActivity(ctx, period)
			if err != nil {
				s.LogError(ctx, err, "Failed to load account activity for budget analysis")
				return nil, fmt.Errorf("failed to load account activity: %w", err)
			}
			activity = make(map[string]domain.AccountActivity, len(list))
			for _, a := range list {
				activity[a.Account.Number] = a
			}
			activityByMonth[b.FiscalMonth] = activity
		}

		row := domain.BudgetVariance{Allocation: b, Actual: decimal.Zero, VariancePct: decimal.Zero}
		if a, ok := activity[b.AccountNumber]; ok {
			row.AccountName = a.Account.Name
			row.Actual = accounting.BalanceDelta(a.Account.NormalBalance, a.TotalDebit, a.TotalCredit)
		}
		row.Variance = b.Budgeted.Sub(row.Actual)
		if !b.Budgeted.IsZero() {
			row.VariancePct = row.Variance.Div(b.Budgeted).Mul(hundred).Round(accounting.MoneyScale)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
