package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const reportDateKey = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accountRepo       portsrepo.AccountReader
	ledgerRepo        portsrepo.LedgerReader
	cashAccountNumber string
	cache             portsrepo.ReportCache
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithCashAccount sets the account the cash flow statement is derived from.
func WithCashAccount(number string) ReportingServiceOption {
	return func(s *reportingService) {
		s.cashAccountNumber = number
	}
}

// WithReportCache serves reports from cache until the next successful post.
func WithReportCache(cache portsrepo.ReportCache) ReportingServiceOption {
	return func(s *reportingService) {
		s.cache = cache
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		accountRepo:       accountRepo,
		ledgerRepo:        ledgerRepo,
		cashAccountNumber: domain.DefaultAccountRoles().Cash,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// cached returns the report stored under key, or builds and stores it.
// Cache failures are logged and the report is computed from the ledger.
func cached[T any](ctx context.Context, s *reportingService, key string, build func() (*T, error)) (*T, error) {
	var generation int64
	if s.cache != nil {
		var hit T
		gen, found, err := s.cache.Get(ctx, key, &hit)
		generation = gen
		if err != nil {
			s.LogWarn(ctx, "Report cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		} else if found {
			s.LogDebug(ctx, "Report served from cache", slog.String("key", key))
			return &hit, nil
		}
	}

	report, err := build()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, generation, key, report); err != nil {
			s.LogWarn(ctx, "Report cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return report, nil
}

func (s *reportingService) activeAccounts(ctx context.Context) ([]domain.Account, error) {
	active := true
	accounts, err := s.accountRepo.ListAccounts(ctx, domain.AccountFilter{Active: &active})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for report")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// TrialBalance places every active account's balance wholly in one column.
// The signed debit balance goes to the debit column when positive and to the
// credit column, as a positive amount, when negative.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	asOf = domain.StartOfDay(asOf)
	return cached(ctx, s, "trial-balance:"+asOf.Format(reportDateKey), func() (*domain.TrialBalance, error) {
		accounts, err := s.activeAccounts(ctx)
		if err != nil {
			return nil, err
		}

		tb := &domain.TrialBalance{
			AsOf:         asOf,
			Rows:         make([]domain.TrialBalanceRow, 0, len(accounts)),
			TotalDebits:  decimal.Zero,
			TotalCredits: decimal.Zero,
		}
		for _, acc := range accounts {
			row := domain.TrialBalanceRow{
				AccountNumber: acc.Number,
				AccountName:   acc.Name,
				AccountType:   acc.AccountType,
				NormalBalance: acc.NormalBalance,
				Debit:         decimal.Zero,
				Credit:        decimal.Zero,
			}
			signed := accounting.DebitBalance(acc)
			if signed.IsPositive() {
				row.Debit = signed
			} else {
				row.Credit = signed.Neg()
			}
			tb.TotalDebits = tb.TotalDebits.Add(row.Debit)
			tb.TotalCredits = tb.TotalCredits.Add(row.Credit)
			tb.Rows = append(tb.Rows, row)
		}
		tb.IsBalanced = accounting.WithinTolerance(tb.TotalDebits, tb.TotalCredits)

		s.LogInfo(ctx, "Trial balance report generated successfully",
			slog.String("asOf", asOf.Format(reportDateKey)),
			slog.Int("row_count", len(tb.Rows)),
			slog.Bool("balanced", tb.IsBalanced))
		return tb, nil
	})
}

// IncomeStatement sums revenue and expense accounts. The cumulative basis uses
// live balances, the period basis only lines dated inside [start, end].
func (s *reportingService) IncomeStatement(ctx context.Context, start, end time.Time, basis domain.IncomeBasis) (*domain.IncomeStatement, error) {
	start, end = domain.StartOfDay(start), domain.StartOfDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}
	if basis == "" {
		basis = domain.BasisCumulative
	}
	if basis != domain.BasisCumulative && basis != domain.BasisPeriod {
		return nil, fmt.Errorf("%w: unknown income statement basis %q", apperrors.ErrValidation, basis)
	}

	key := fmt.Sprintf("income-statement:%s:%s:%s", basis, start.Format(reportDateKey), end.Format(reportDateKey))
	return cached(ctx, s, key, func() (*domain.IncomeStatement, error) {
		activity, err := s.incomeActivity(ctx, start, end, basis)
		if err != nil {
			return nil, err
		}

		is := &domain.IncomeStatement{
			StartDate:     start,
			EndDate:       end,
			Basis:         basis,
			Revenue:       []domain.ReportLine{},
			Expenses:      []domain.ReportLine{},
			TotalRevenue:  decimal.Zero,
			TotalExpenses: decimal.Zero,
			ProfitMargin:  decimal.Zero,
		}
		for _, a := range activity {
			switch a.Account.AccountType {
			case domain.Revenue:
				amount := accounting.BalanceDelta(domain.Credit, a.TotalDebit, a.TotalCredit)
				is.Revenue = append(is.Revenue, reportLine(a.Account, amount))
				is.TotalRevenue = is.TotalRevenue.Add(amount)
			case domain.ExpenseType:
				amount := accounting.BalanceDelta(domain.Debit, a.TotalDebit, a.TotalCredit)
				is.Expenses = append(is.Expenses, reportLine(a.Account, amount))
				is.TotalExpenses = is.TotalExpenses.Add(amount)
			}
		}
		is.NetIncome = is.TotalRevenue.Sub(is.TotalExpenses)
		if !is.TotalRevenue.IsZero() {
			is.ProfitMargin = is.NetIncome.Div(is.TotalRevenue).Mul(hundred).Round(accounting.MoneyScale)
		}

		s.LogInfo(ctx, "Income statement generated successfully",
			slog.String("basis", string(basis)),
			slog.String("net_income", is.NetIncome.StringFixed(2)))
		return is, nil
	})
}

// incomeActivity returns revenue and expense accounts with their (debit,
// credit) totals for the requested basis.
func (s *reportingService) incomeActivity(ctx context.Context, start, end time.Time, basis domain.IncomeBasis) ([]domain.AccountActivity, error) {
	if basis == domain.BasisPeriod {
		activity, err := s.ledgerRepo.AccountActivity(ctx, domain.DateRange{From: &start, To: &end})
		if err != nil {
			s.LogError(ctx, err, "Failed to load account activity for income statement")
			return nil, fmt.Errorf("failed to load account activity: %w", err)
		}
		out := make([]domain.AccountActivity, 0, len(activity))
		for _, a := range activity {
			if a.Account.IsActive || !a.TotalDebit.Equal(a.TotalCredit) {
				out = append(out, a)
			}
		}
		return out, nil
	}

	accounts, err := s.activeAccounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AccountActivity, 0, len(accounts))
	for _, acc := range accounts {
		// A live balance is re-expressed as a one-sided total.
		debit, credit := decimal.Zero, decimal.Zero
		if acc.NormalBalance == domain.Debit {
			debit = acc.Balance
		} else {
			credit = acc.Balance
		}
		out = append(out, domain.AccountActivity{Account: acc, TotalDebit: debit, TotalCredit: credit})
	}
	return out, nil
}

func reportLine(acc domain.Account, amount decimal.Decimal) domain.ReportLine {
	return domain.ReportLine{AccountNumber: acc.Number, AccountName: acc.Name, Amount: amount}
}

func addToSection(section *domain.StatementSection, acc domain.Account, natural domain.NormalBalance) {
	amount := accounting.SectionAmount(acc, natural)
	section.Lines = append(section.Lines, reportLine(acc, amount))
	section.Total = section.Total.Add(amount)
}

func emptySection() domain.StatementSection {
	return domain.StatementSection{Lines: []domain.ReportLine{}, Total: decimal.Zero}
}

// BalanceSheet groups active accounts into assets, liabilities and equity.
// Contra accounts reduce their section. Unclosed revenue minus expense is
// carried as the computed current earnings line of equity, which keeps
// assets equal to liabilities plus equity before the books are closed.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	asOf = domain.StartOfDay(asOf)
	return cached(ctx, s, "balance-sheet:"+asOf.Format(reportDateKey), func() (*domain.BalanceSheet, error) {
		accounts, err := s.activeAccounts(ctx)
		if err != nil {
			return nil, err
		}

		bs := &domain.BalanceSheet{
			AsOf:            asOf,
			Assets:          emptySection(),
			Liabilities:     emptySection(),
			Equity:          emptySection(),
			CurrentEarnings: decimal.Zero,
		}
		for _, acc := range accounts {
			switch acc.AccountType {
			case domain.Asset, domain.ContraAsset:
				addToSection(&bs.Assets, acc, domain.Debit)
			case domain.Liability, domain.ContraLiability:
				addToSection(&bs.Liabilities, acc, domain.Credit)
			case domain.Equity:
				addToSection(&bs.Equity, acc, domain.Credit)
			case domain.Revenue:
				bs.CurrentEarnings = bs.CurrentEarnings.Add(accounting.SectionAmount(acc, domain.Credit))
			case domain.ExpenseType:
				bs.CurrentEarnings = bs.CurrentEarnings.Sub(accounting.SectionAmount(acc, domain.Debit))
			}
		}
		bs.TotalLiabilitiesAndEquity = bs.Liabilities.Total.Add(bs.Equity.Total).Add(bs.CurrentEarnings)
		bs.IsBalanced = accounting.WithinTolerance(bs.Assets.Total, bs.TotalLiabilitiesAndEquity)

		if !bs.IsBalanced {
			s.LogWarn(ctx, "Balance sheet does not balance",
				slog.String("assets", bs.Assets.Total.StringFixed(2)),
				slog.String("liabilities_and_equity", bs.TotalLiabilitiesAndEquity.StringFixed(2)))
		}
		s.LogInfo(ctx, "Balance sheet report generated successfully", slog.String("asOf", asOf.Format(reportDateKey)))
		return bs, nil
	})
}

// cashFlowBucket maps a reference type to its cash flow activity.
func cashFlowBucket(cf *domain.CashFlowStatement, refType domain.ReferenceType) *decimal.Decimal {
	switch refType {
	case domain.RefSale, domain.RefOrder, domain.RefExpense:
		return &cf.OperatingActivities
	case domain.RefAsset:
		return &cf.InvestingActivities
	case domain.RefLoan, domain.RefEquity:
		return &cf.FinancingActivities
	default:
		return &cf.Unclassified
	}
}

// CashFlowStatement buckets the cash account's movements in [start, end] by
// the reference type of their entry. Unclassified movements are reported but
// excluded from the net cash flow.
func (s *reportingService) CashFlowStatement(ctx context.Context, start, end time.Time) (*domain.CashFlowStatement, error) {
	start, end = domain.StartOfDay(start), domain.StartOfDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}

	key := fmt.Sprintf("cash-flow:%s:%s:%s", s.cashAccountNumber, start.Format(reportDateKey), end.Format(reportDateKey))
	return cached(ctx, s, key, func() (*domain.CashFlowStatement, error) {
		cash, lines, err := s.ledgerRepo.LinesForAccount(ctx, s.cashAccountNumber, domain.DateRange{From: &start, To: &end})
		if err != nil {
			s.LogError(ctx, err, "Failed to load cash account lines", slog.String("account_number", s.cashAccountNumber))
			return nil, fmt.Errorf("failed to load cash account %s: %w", s.cashAccountNumber, err)
		}

		cf := &domain.CashFlowStatement{
			StartDate:           start,
			EndDate:             end,
			CashAccountNumber:   cash.Number,
			OperatingActivities: decimal.Zero,
			InvestingActivities: decimal.Zero,
			FinancingActivities: decimal.Zero,
			Unclassified:        decimal.Zero,
			EndingCashBalance:   cash.Balance,
		}
		for _, l := range lines {
			bucket := cashFlowBucket(cf, l.ReferenceType)
			*bucket = bucket.Add(accounting.BalanceDelta(domain.Debit, l.DebitAmount, l.CreditAmount))
		}
		cf.NetCashFlow = cf.OperatingActivities.Add(cf.InvestingActivities).Add(cf.FinancingActivities)

		s.LogInfo(ctx, "Cash flow statement generated successfully",
			slog.String("net_cash_flow", cf.NetCashFlow.StringFixed(2)),
			slog.Int("line_count", len(lines)))
		return cf, nil
	})
}
