package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow places one account's balance in either the debit or the credit column.
type TrialBalanceRow struct {
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalance represents the trial balance report.
type TrialBalance struct {
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	IsBalanced   bool              `json:"isBalanced"`
}

// ReportLine is one account's amount within a financial statement section.
type ReportLine struct {
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Amount        decimal.Decimal `json:"amount"`
}

// IncomeBasis selects how the income statement sums revenue and expense.
type IncomeBasis string

const (
	// BasisCumulative uses live account balances, i.e. all-time totals.
	BasisCumulative IncomeBasis = "cumulative"
	// BasisPeriod sums only lines dated inside the requested range.
	BasisPeriod IncomeBasis = "period"
)

// IncomeStatement represents the income statement report.
type IncomeStatement struct {
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	Basis         IncomeBasis     `json:"basis"`
	Revenue       []ReportLine    `json:"revenue"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	Expenses      []ReportLine    `json:"expenses"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	ProfitMargin  decimal.Decimal `json:"profitMargin"`
}

// StatementSection is a titled group of report lines with their total.
type StatementSection struct {
	Lines []ReportLine    `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// BalanceSheet represents the balance sheet report.
type BalanceSheet struct {
	AsOf                      time.Time        `json:"asOf"`
	Assets                    StatementSection `json:"assets"`
	Liabilities               StatementSection `json:"liabilities"`
	Equity                    StatementSection `json:"equity"`
	CurrentEarnings           decimal.Decimal  `json:"currentEarnings"`
	TotalLiabilitiesAndEquity decimal.Decimal  `json:"totalLiabilitiesAndEquity"`
	IsBalanced                bool             `json:"isBalanced"`
}

// CurrentEarningsLabel names the computed equity line holding unclosed net income.
const CurrentEarningsLabel = "Current Earnings"

// CashFlowStatement represents the cash flow statement for the designated cash account.
type CashFlowStatement struct {
	StartDate           time.Time       `json:"startDate"`
	EndDate             time.Time       `json:"endDate"`
	CashAccountNumber   string          `json:"cashAccountNumber"`
	OperatingActivities decimal.Decimal `json:"operatingActivities"`
	InvestingActivities decimal.Decimal `json:"investingActivities"`
	FinancingActivities decimal.Decimal `json:"financingActivities"`
	Unclassified        decimal.Decimal `json:"unclassified"`
	NetCashFlow         decimal.Decimal `json:"netCashFlow"`
	EndingCashBalance   decimal.Decimal `json:"endingCashBalance"`
}

// GeneralLedgerEntry is a ledger line annotated with the running balance after it.
type GeneralLedgerEntry struct {
	Line           LedgerLine      `json:"line"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedger is the ordered activity of one account.
type GeneralLedger struct {
	Account Account              `json:"account"`
	Entries []GeneralLedgerEntry `json:"entries"`
}

// BalanceMismatch records an account whose stored balance disagrees with its lines.
type BalanceMismatch struct {
	AccountNumber string          `json:"accountNumber"`
	Stored        decimal.Decimal `json:"stored"`
	Computed      decimal.Decimal `json:"computed"`
}

// IntegrityReport is the result of verifying the whole ledger.
type IntegrityReport struct {
	CheckedAccounts int               `json:"checkedAccounts"`
	Mismatches      []BalanceMismatch `json:"mismatches"`
	TotalDebits     decimal.Decimal   `json:"totalDebits"`
	TotalCredits    decimal.Decimal   `json:"totalCredits"`
	TrialBalanced   bool              `json:"trialBalanced"`
	OK              bool              `json:"ok"`
}
