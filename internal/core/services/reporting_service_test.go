package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	accountRepo *MockAccountRepository
	ledgerRepo  *MockLedgerRepository
	cache       *MockReportCache
	service     portssvc.ReportingService
	asOf        time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.accountRepo = new(MockAccountRepository)
	suite.ledgerRepo = new(MockLedgerRepository)
	suite.cache = new(MockReportCache)
	suite.service = services.NewReportingService(suite.accountRepo, suite.ledgerRepo,
		services.WithCashAccount("1010"), services.WithReportCache(suite.cache))
	suite.asOf = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
}

func ledgerAccount(number string, typ domain.AccountType, normal domain.NormalBalance, balance int64) domain.Account {
	return domain.Account{
		AccountID:     "id-" + number,
		Number:        number,
		Name:          "Account " + number,
		AccountType:   typ,
		NormalBalance: normal,
		Balance:       decimal.NewFromInt(balance),
		IsActive:      true,
	}
}

func (suite *ReportingServiceTestSuite) expectActiveAccounts(accounts ...domain.Account) {
	suite.accountRepo.On("ListAccounts", suite.ctx, mock.MatchedBy(func(f domain.AccountFilter) bool {
		return f.Active != nil && *f.Active
	})).Return(accounts, nil).Once()
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_MissStoresUnderReadGeneration() {
	suite.cache.On("Get", suite.ctx, "trial-balance:2026-03-31", mock.Anything).Return(int64(7), false, nil).Once()
	suite.expectActiveAccounts(
		ledgerAccount("1010", domain.Asset, domain.Debit, 300),
		ledgerAccount("1210", domain.ContraAsset, domain.Credit, 50),
		ledgerAccount("3000", domain.Equity, domain.Credit, 250),
	)
	suite.cache.On("Set", suite.ctx, int64(7), "trial-balance:2026-03-31", mock.AnythingOfType("*domain.TrialBalance")).Return(nil).Once()

	tb, err := suite.service.TrialBalance(suite.ctx, suite.asOf)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), tb.IsBalanced)
	assert.True(suite.T(), tb.TotalDebits.Equal(decimal.NewFromInt(300)))
	assert.True(suite.T(), tb.TotalCredits.Equal(decimal.NewFromInt(300)))
	assert.True(suite.T(), tb.Rows[1].Credit.Equal(decimal.NewFromInt(50)))
	suite.cache.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_HitSkipsRepository() {
	suite.cache.On("Get", suite.ctx, "trial-balance:2026-03-31", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*domain.TrialBalance)
			*dest = domain.TrialBalance{AsOf: suite.asOf, IsBalanced: true, TotalDebits: decimal.NewFromInt(42)}
		}).
		Return(int64(3), true, nil).Once()

	tb, err := suite.service.TrialBalance(suite.ctx, suite.asOf)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), tb.TotalDebits.Equal(decimal.NewFromInt(42)))
	suite.accountRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
	suite.cache.AssertNotCalled(suite.T(), "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_CacheFailureFallsBackToLedger() {
	suite.cache.On("Get", suite.ctx, mock.Anything, mock.Anything).Return(int64(0), false, errors.New("redis down")).Once()
	suite.expectActiveAccounts(ledgerAccount("1010", domain.Asset, domain.Debit, 10), ledgerAccount("4000", domain.Revenue, domain.Credit, 10))
	suite.cache.On("Set", suite.ctx, int64(0), mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

	tb, err := suite.service.TrialBalance(suite.ctx, suite.asOf)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), tb.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_CurrentEarningsBalancesEquation() {
	suite.cache.On("Get", suite.ctx, "balance-sheet:2026-03-31", mock.Anything).Return(int64(1), false, nil).Once()
	suite.expectActiveAccounts(
		ledgerAccount("1010", domain.Asset, domain.Debit, 1000),
		ledgerAccount("2000", domain.Liability, domain.Credit, 200),
		ledgerAccount("3000", domain.Equity, domain.Credit, 500),
		ledgerAccount("4000", domain.Revenue, domain.Credit, 450),
		ledgerAccount("5000", domain.ExpenseType, domain.Debit, 150),
	)
	suite.cache.On("Set", suite.ctx, int64(1), "balance-sheet:2026-03-31", mock.Anything).Return(nil).Once()

	bs, err := suite.service.BalanceSheet(suite.ctx, suite.asOf)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), bs.CurrentEarnings.Equal(decimal.NewFromInt(300)))
	assert.True(suite.T(), bs.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_DebitNormalRevenueReducesRevenue() {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	key := "income-statement:cumulative:2026-01-01:2026-03-31"
	suite.cache.On("Get", suite.ctx, key, mock.Anything).Return(int64(2), false, nil).Once()
	suite.expectActiveAccounts(
		ledgerAccount("4000", domain.Revenue, domain.Credit, 300),
		ledgerAccount("4900", domain.Revenue, domain.Debit, 20),
		ledgerAccount("5000", domain.ExpenseType, domain.Debit, 100),
	)
	suite.cache.On("Set", suite.ctx, int64(2), key, mock.Anything).Return(nil).Once()

	is, err := suite.service.IncomeStatement(suite.ctx, start, suite.asOf, "")

	require.NoError(suite.T(), err)
	require.Len(suite.T(), is.Revenue, 2)
	assert.True(suite.T(), is.Revenue[1].Amount.Equal(decimal.NewFromInt(-20)))
	assert.True(suite.T(), is.TotalRevenue.Equal(decimal.NewFromInt(280)))
	assert.True(suite.T(), is.NetIncome.Equal(decimal.NewFromInt(180)))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_UnclassifiedExcludedFromNet() {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cash := ledgerAccount("1010", domain.Asset, domain.Debit, 545)
	cashLine := func(ref domain.ReferenceType, debit, credit int64) domain.LedgerLine {
		return domain.LedgerLine{AccountNumber: "1010", DebitAmount: decimal.NewFromInt(debit), CreditAmount: decimal.NewFromInt(credit), ReferenceType: ref}
	}
	suite.cache.On("Get", suite.ctx, "cash-flow:1010:2026-01-01:2026-03-31", mock.Anything).Return(int64(0), false, nil).Once()
	suite.ledgerRepo.On("LinesForAccount", suite.ctx, "1010", mock.Anything).Return(&cash, []domain.LedgerLine{
		cashLine(domain.RefSale, 300, 0),
		cashLine(domain.RefExpense, 0, 40),
		cashLine(domain.RefLoan, 200, 0),
		cashLine(domain.RefAsset, 0, 15),
		cashLine(domain.RefManual, 100, 0),
	}, nil).Once()
	suite.cache.On("Set", suite.ctx, int64(0), mock.Anything, mock.Anything).Return(nil).Once()

	cf, err := suite.service.CashFlowStatement(suite.ctx, start, suite.asOf)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), cf.OperatingActivities.Equal(decimal.NewFromInt(260)))
	assert.True(suite.T(), cf.InvestingActivities.Equal(decimal.NewFromInt(-15)))
	assert.True(suite.T(), cf.FinancingActivities.Equal(decimal.NewFromInt(200)))
	assert.True(suite.T(), cf.Unclassified.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), cf.NetCashFlow.Equal(decimal.NewFromInt(445)))
	assert.True(suite.T(), cf.EndingCashBalance.Equal(decimal.NewFromInt(545)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func TestVerifyLedgerReportsMismatch(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLedgerRepository)
	cash := ledgerAccount("1010", domain.Asset, domain.Debit, 120)
	revenue := ledgerAccount("4000", domain.Revenue, domain.Credit, 100)
	repo.On("AccountActivity", ctx, domain.DateRange{}).Return([]domain.AccountActivity{
		{Account: cash, TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.Zero},
		{Account: revenue, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(100)},
	}, nil).Once()

	report, err := services.NewIntegrityService(repo).VerifyLedger(ctx)

	require.NoError(t, err)
	assert.False(t, report.OK)
	assert.True(t, report.TrialBalanced)
	require.Len(t, report.Mismatches, 1)
	assert.Equal(t, "1010", report.Mismatches[0].AccountNumber)
	assert.True(t, report.Mismatches[0].Computed.Equal(decimal.NewFromInt(100)))
}

func TestVerifyLedgerStorageError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLedgerRepository)
	repo.On("AccountActivity", ctx, domain.DateRange{}).Return(nil, errors.New("connection reset")).Once()

	_, err := services.NewIntegrityService(repo).VerifyLedger(ctx)

	assert.Error(t, err)
}
