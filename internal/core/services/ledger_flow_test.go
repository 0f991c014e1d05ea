package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

// LedgerFlowTestSuite runs the services against the in-memory store.
type LedgerFlowTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	svc   *portssvc.ServiceContainer
	may   time.Time
}

func (suite *LedgerFlowTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	roles := domain.DefaultAccountRoles()
	roles.ExpenseByCategory = map[domain.ExpenseCategory]string{domain.CategoryRent: "5100"}
	suite.svc = services.NewServiceContainer(memory.NewRepositoryProvider(suite.store), services.ContainerOptions{Roles: roles})
	suite.may = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	chart := []dto.CreateAccountRequest{
		{AccountNumber: "1010", AccountName: "Cash", AccountType: "Asset", NormalBalance: "Debit"},
		{AccountNumber: "1200", AccountName: "Accounts Receivable", AccountType: "Asset", NormalBalance: "Debit"},
		{AccountNumber: "3000", AccountName: "Owner's Capital", AccountType: "Equity", NormalBalance: "Credit"},
		{AccountNumber: "4000", AccountName: "Sales Revenue", AccountType: "Revenue", NormalBalance: "Credit"},
		{AccountNumber: "5000", AccountName: "Operating Expenses", AccountType: "Expense", NormalBalance: "Debit"},
		{AccountNumber: "5100", AccountName: "Rent Expense", AccountType: "Expense", NormalBalance: "Debit"},
	}
	created, skipped, err := suite.svc.Account.SeedChartOfAccounts(suite.ctx, chart, "")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 6, created)
	require.Equal(suite.T(), 0, skipped)
}

func (suite *LedgerFlowTestSuite) balance(number string) decimal.Decimal {
	acc, err := suite.svc.Account.GetAccount(suite.ctx, number)
	require.NoError(suite.T(), err)
	return acc.Balance
}

func (suite *LedgerFlowTestSuite) contribute(amount string) *domain.PostResult {
	res, err := suite.svc.Journal.PostJournalEntry(suite.ctx, domain.PostRequest{
		EntryDate:     suite.may,
		Description:   "Owner contribution",
		ReferenceType: domain.RefEquity,
		Lines:         []domain.LineInput{debit("1010", amount), credit("3000", amount)},
	})
	require.NoError(suite.T(), err)
	return res
}

func (suite *LedgerFlowTestSuite) assertEqualAmount(expected string, actual decimal.Decimal) {
	suite.T().Helper()
	assert.True(suite.T(), dec(expected).Equal(actual), "expected %s, got %s", expected, actual.StringFixed(2))
}

func (suite *LedgerFlowTestSuite) TestBalancedEntryUpdatesBothAccounts() {
	res := suite.contribute("1000.00")

	assert.Equal(suite.T(), "JE"+time.Now().UTC().Format("2006")+"000001", res.Entry.EntryNumber)
	suite.assertEqualAmount("1000", suite.balance("1010"))
	suite.assertEqualAmount("1000", suite.balance("3000"))

	tb, err := suite.svc.Reporting.TrialBalance(suite.ctx, suite.may)
	require.NoError(suite.T(), err)
	suite.assertEqualAmount("1000", tb.TotalDebits)
	suite.assertEqualAmount("1000", tb.TotalCredits)
	assert.True(suite.T(), tb.IsBalanced)
}

func (suite *LedgerFlowTestSuite) TestRejectedPostsLeaveLedgerUntouched() {
	before := suite.store.Snapshot()

	_, err := suite.svc.Journal.PostJournalEntry(suite.ctx, domain.PostRequest{
		EntryDate: suite.may, Description: "Lopsided",
		Lines: []domain.LineInput{debit("1010", "1000.00"), credit("3000", "500.00")},
	})
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnbalanced)

	_, err = suite.svc.Journal.PostJournalEntry(suite.ctx, domain.PostRequest{
		EntryDate: suite.may, Description: "Ghost account",
		Lines: []domain.LineInput{debit("9999", "10"), credit("3000", "10")},
	})
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnknownAccount)

	assert.Equal(suite.T(), before, suite.store.Snapshot())
	suite.assertEqualAmount("0", suite.balance("1010"))
	suite.assertEqualAmount("0", suite.balance("3000"))
}

func (suite *LedgerFlowTestSuite) TestGeneralLedgerRunningBalance() {
	suite.contribute("1000.00")

	gl, err := suite.svc.Ledger.GeneralLedger(suite.ctx, "1010", domain.DateRange{})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), gl.Entries, 1)
	suite.assertEqualAmount("1000", gl.Entries[0].RunningBalance)
	assert.True(suite.T(), gl.Entries[0].RunningBalance.Equal(gl.Account.Balance))

	_, err = suite.svc.Ledger.GeneralLedger(suite.ctx, "0000", domain.DateRange{})
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *LedgerFlowTestSuite) TestConcurrentOpposingPosts() {
	suite.contribute("1000.00")

	var g errgroup.Group
	for i := 0; i < 25; i++ {
		g.Go(func() error {
			_, err := suite.svc.Journal.PostJournalEntry(suite.ctx, domain.PostRequest{
				EntryDate: suite.may, Description: "Collect receivable",
				Lines: []domain.LineInput{debit("1010", "100.00"), credit("1200", "100.00")},
			})
			return err
		})
		g.Go(func() error {
			_, err := suite.svc.Journal.PostJournalEntry(suite.ctx, domain.PostRequest{
				EntryDate: suite.may, Description: "Lend to customer",
				Lines: []domain.LineInput{debit("1200", "100.00"), credit("1010", "100.00")},
			})
			return err
		})
	}
	require.NoError(suite.T(), g.Wait())

	suite.assertEqualAmount("1000", suite.balance("1010"))
	suite.assertEqualAmount("0", suite.balance("1200"))

	gl, err := suite.svc.Ledger.GeneralLedger(suite.ctx, "1010", domain.DateRange{})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), gl.Entries, 51)
	assert.True(suite.T(), gl.Entries[50].RunningBalance.Equal(gl.Account.Balance))

	report, err := suite.svc.Integrity.VerifyLedger(suite.ctx)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), report.OK)
}

// trade posts a small month of activity: capital, a cash sale, an order on
// account and an approved rent expense.
func (suite *LedgerFlowTestSuite) trade() *domain.Expense {
	suite.contribute("1000.00")
	_, err := suite.svc.Journal.AutoPostSale(suite.ctx, domain.SalePosting{
		SaleID: "S-1", Amount: dec("500"), PaymentMethod: domain.PaymentCash, Date: suite.may,
	})
	require.NoError(suite.T(), err)
	_, err = suite.svc.Journal.AutoPostOrder(suite.ctx, domain.OrderPosting{OrderID: "O-1", Amount: dec("200"), Date: suite.may})
	require.NoError(suite.T(), err)

	expense, err := suite.svc.Expense.RecordExpense(suite.ctx, dto.RecordExpenseRequest{
		ExpenseDate: "2024-05-12", Category: "Rent", Amount: dec("120"), Description: "May rent",
	}, "clerk")
	require.NoError(suite.T(), err)
	approved, err := suite.svc.Expense.ApproveExpense(suite.ctx, expense.ExpenseID, "manager")
	require.NoError(suite.T(), err)
	return approved
}

func (suite *LedgerFlowTestSuite) TestReportsObeyAccountingLaws() {
	suite.trade()

	tb, err := suite.svc.Reporting.TrialBalance(suite.ctx, suite.may)
	require.NoError(suite.T(), err)
	suite.assertEqualAmount("1700", tb.TotalDebits)
	suite.assertEqualAmount("1700", tb.TotalCredits)
	assert.True(suite.T(), tb.IsBalanced)

	bs, err := suite.svc.Reporting.BalanceSheet(suite.ctx, suite.may)
	require.NoError(suite.T(), err)
	suite.assertEqualAmount("1580", bs.Assets.Total)
	suite.assertEqualAmount("1000", bs.Equity.Total)
	suite.assertEqualAmount("580", bs.CurrentEarnings)
	suite.assertEqualAmount("1580", bs.TotalLiabilitiesAndEquity)
	assert.True(suite.T(), bs.IsBalanced)

	is, err := suite.svc.Reporting.IncomeStatement(suite.ctx, suite.may, suite.may, domain.BasisCumulative)
	require.NoError(suite.T(), err)
	suite.assertEqualAmount("700", is.TotalRevenue)
	suite.assertEqualAmount("120", is.TotalExpenses)
	suite.assertEqualAmount("580", is.NetIncome)
	suite.assertEqualAmount("82.86", is.ProfitMargin)

	cf, err := suite.svc.Reporting.CashFlowStatement(suite.ctx, suite.may.AddDate(0, 0, -9), suite.may.AddDate(0, 0, 21))
	require.NoError(suite.T(), err)
	suite.assertEqualAmount("380", cf.OperatingActivities)
	suite.assertEqualAmount("1000", cf.FinancingActivities)
	suite.assertEqualAmount("1380", cf.NetCashFlow)
	suite.assertEqualAmount("1380", cf.EndingCashBalance)

	report, err := suite.svc.Integrity.VerifyLedger(suite.ctx)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), report.OK)
	assert.Empty(suite.T(), report.Mismatches)
}

func (suite *LedgerFlowTestSuite) TestIncomeStatementPeriodBasis() {
	suite.trade()
	june := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	_, err := suite.svc.Journal.AutoPostSale(suite.ctx, domain.SalePosting{
		SaleID: "S-2", Amount: dec("300"), PaymentMethod: domain.PaymentCash, Date: june,
	})
	require.NoError(suite.T(), err)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	period, err := suite.svc.Reporting.IncomeStatement(suite.ctx, start, end, domain.BasisPeriod)
	require.NoError(suite.T(), err)
	suite.assertEqualAmount("300", period.TotalRevenue)
	suite.assertEqualAmount("0", period.TotalExpenses)

	cumulative, err := suite.svc.Reporting.IncomeStatement(suite.ctx, start, end, "")
	require.NoError(suite.T(), err)
	suite.assertEqualAmount("1000", cumulative.TotalRevenue)

	_, err = suite.svc.Reporting.IncomeStatement(suite.ctx, end, start, domain.BasisPeriod)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *LedgerFlowTestSuite) TestRepeatedAutoPostIsDuplicate() {
	sale := domain.SalePosting{SaleID: "S-7", Amount: dec("5"), PaymentMethod: domain.PaymentCash, Date: suite.may}
	_, err := suite.svc.Journal.AutoPostSale(suite.ctx, sale)
	require.NoError(suite.T(), err)

	_, err = suite.svc.Journal.AutoPostSale(suite.ctx, sale)

	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicateEntry)
	suite.assertEqualAmount("5", suite.balance("1010"))
}

func (suite *LedgerFlowTestSuite) TestExpenseWorkflow() {
	approved := suite.trade()

	assert.Equal(suite.T(), domain.ExpenseApproved, approved.Status)
	assert.Equal(suite.T(), "manager", approved.ApprovedBy)
	assert.Equal(suite.T(), services.ExpenseEntryNumber(approved.ExpenseID), approved.JournalEntryNumber)
	suite.assertEqualAmount("120", suite.balance("5100"))

	entry, lines, err := suite.svc.Journal.GetJournalEntry(suite.ctx, approved.JournalEntryNumber)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.RefExpense, entry.ReferenceType)
	assert.Equal(suite.T(), "2024-05-12", entry.EntryDate.Format("2006-01-02"))
	require.Len(suite.T(), lines, 2)

	_, err = suite.svc.Expense.ApproveExpense(suite.ctx, approved.ExpenseID, "manager")
	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	_, err = suite.svc.Expense.RejectExpense(suite.ctx, approved.ExpenseID, "manager")
	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)

	approvedStatus := domain.ExpenseApproved
	listed, err := suite.svc.Expense.ListExpenses(suite.ctx, domain.ExpenseFilter{Status: &approvedStatus})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), listed, 1)
}

func (suite *LedgerFlowTestSuite) TestApproveReusesEntryPostedByEarlierAttempt() {
	expense, err := suite.svc.Expense.RecordExpense(suite.ctx, dto.RecordExpenseRequest{
		ExpenseDate: "2024-05-02", Category: "Meals", Amount: dec("45.50"), Description: "Team lunch",
	}, "clerk")
	require.NoError(suite.T(), err)
	// An earlier approval posted the entry and then failed before updating the expense.
	_, err = suite.svc.Journal.AutoPostExpense(suite.ctx, *expense, "manager")
	require.NoError(suite.T(), err)

	approved, err := suite.svc.Expense.ApproveExpense(suite.ctx, expense.ExpenseID, "manager")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), services.ExpenseEntryNumber(expense.ExpenseID), approved.JournalEntryNumber)
	suite.assertEqualAmount("45.50", suite.balance("5000"))
	suite.assertEqualAmount("-45.50", suite.balance("1010"))
}

func (suite *LedgerFlowTestSuite) TestRejectExpensePostsNothing() {
	before := suite.store.Snapshot()
	expense, err := suite.svc.Expense.RecordExpense(suite.ctx, dto.RecordExpenseRequest{
		ExpenseDate: "2024-05-02", Category: "Travel", Amount: dec("300"), Description: "Conference",
	}, "clerk")
	require.NoError(suite.T(), err)

	rejected, err := suite.svc.Expense.RejectExpense(suite.ctx, expense.ExpenseID, "manager")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.ExpenseRejected, rejected.Status)
	assert.Empty(suite.T(), rejected.JournalEntryNumber)
	assert.Equal(suite.T(), before, suite.store.Snapshot())
}

func (suite *LedgerFlowTestSuite) TestRecordExpenseValidation() {
	_, err := suite.svc.Expense.RecordExpense(suite.ctx, dto.RecordExpenseRequest{
		ExpenseDate: "2024-05-02", Category: "Yachts", Amount: dec("1"), Description: "x",
	}, "")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	_, err = suite.svc.Expense.RecordExpense(suite.ctx, dto.RecordExpenseRequest{
		ExpenseDate: "02/05/2024", Category: "Rent", Amount: dec("1"), Description: "x",
	}, "")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	_, err = suite.svc.Expense.RecordExpense(suite.ctx, dto.RecordExpenseRequest{
		ExpenseDate: "2024-05-02", SupplierID: "00000000-0000-0000-0000-000000000000", Category: "Rent", Amount: dec("1"), Description: "x",
	}, "")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	supplier, err := suite.svc.Supplier.CreateSupplier(suite.ctx, dto.CreateSupplierRequest{SupplierName: "Landlord Ltd"}, "")
	require.NoError(suite.T(), err)
	expense, err := suite.svc.Expense.RecordExpense(suite.ctx, dto.RecordExpenseRequest{
		ExpenseDate: "2024-05-02", SupplierID: supplier.SupplierID, Category: "Rent", Amount: dec("1"), Description: "x",
	}, "")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), supplier.SupplierID, expense.SupplierID)
}

func (suite *LedgerFlowTestSuite) TestSuppliersListedByName() {
	for _, name := range []string{"Zeta Foods", "Acme Paper"} {
		_, err := suite.svc.Supplier.CreateSupplier(suite.ctx, dto.CreateSupplierRequest{SupplierName: name}, "")
		require.NoError(suite.T(), err)
	}
	_, err := suite.svc.Supplier.CreateSupplier(suite.ctx, dto.CreateSupplierRequest{SupplierName: "  "}, "")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	suppliers, err := suite.svc.Supplier.ListSuppliers(suite.ctx, true)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), suppliers, 2)
	assert.Equal(suite.T(), "Acme Paper", suppliers[0].Name)
}

func (suite *LedgerFlowTestSuite) TestBudgetAnalysis() {
	suite.trade()
	for _, req := range []dto.SetBudgetRequest{
		{FiscalYear: 2024, FiscalMonth: 5, AccountNumber: "5100", Budgeted: dec("100")},
		{FiscalYear: 2024, FiscalMonth: 5, AccountNumber: "5000", Budgeted: dec("0")},
		{FiscalYear: 2024, FiscalMonth: 4, AccountNumber: "5100", Budgeted: dec("100")},
	} {
		_, err := suite.svc.Budget.SetBudget(suite.ctx, req, "")
		require.NoError(suite.T(), err)
	}

	_, err := suite.svc.Budget.SetBudget(suite.ctx, dto.SetBudgetRequest{FiscalYear: 2024, FiscalMonth: 5, AccountNumber: "9999", Budgeted: dec("1")}, "")
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnknownAccount)

	rows, err := suite.svc.Budget.BudgetAnalysis(suite.ctx, 2024, nil)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), rows, 3)

	assert.Equal(suite.T(), "5000", rows[0].Allocation.AccountNumber)
	suite.assertEqualAmount("0", rows[0].VariancePct)

	assert.Equal(suite.T(), 4, rows[1].Allocation.FiscalMonth)
	suite.assertEqualAmount("0", rows[1].Actual)
	suite.assertEqualAmount("100", rows[1].Variance)

	assert.Equal(suite.T(), 5, rows[2].Allocation.FiscalMonth)
	assert.Equal(suite.T(), "Rent Expense", rows[2].AccountName)
	suite.assertEqualAmount("120", rows[2].Actual)
	suite.assertEqualAmount("-20", rows[2].Variance)
	suite.assertEqualAmount("-20", rows[2].VariancePct)

	may := 5
	rows, err = suite.svc.Budget.BudgetAnalysis(suite.ctx, 2024, &may)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), rows, 2)
}

func (suite *LedgerFlowTestSuite) TestInactiveAccounts() {
	inactive := false
	_, err := suite.svc.Account.UpdateAccount(suite.ctx, "5000", dto.UpdateAccountRequest{IsActive: &inactive}, "")
	require.NoError(suite.T(), err)

	_, err = suite.svc.Journal.PostJournalEntry(suite.ctx, domain.PostRequest{
		EntryDate: suite.may, Description: "Supplies",
		Lines: []domain.LineInput{debit("5000", "10"), credit("1010", "10")},
	})
	assert.ErrorIs(suite.T(), err, apperrors.ErrInactiveAccount)

	suite.contribute("50")
	_, err = suite.svc.Account.UpdateAccount(suite.ctx, "1010", dto.UpdateAccountRequest{IsActive: &inactive}, "")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	active := true
	accounts, err := suite.svc.Account.ListAccounts(suite.ctx, domain.AccountFilter{Active: &active})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), accounts, 5)
}

func TestLedgerFlowTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerFlowTestSuite))
}
