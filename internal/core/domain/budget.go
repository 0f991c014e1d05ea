package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetAllocation is the budgeted amount for one account in one fiscal month.
type BudgetAllocation struct {
	BudgetID      string          `json:"budgetID"`
	FiscalYear    int             `json:"fiscalYear"`
	FiscalMonth   int             `json:"fiscalMonth"`
	AccountNumber string          `json:"accountNumber"`
	Budgeted      decimal.Decimal `json:"budgeted"`
	AuditFields
}

// Period returns the inclusive date range covered by the allocation's fiscal month.
func (b BudgetAllocation) Period() DateRange {
	from := time.Date(b.FiscalYear, time.Month(b.FiscalMonth), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return DateRange{From: &from, To: &to}
}

// BudgetVariance compares an allocation with actual ledger activity.
type BudgetVariance struct {
	Allocation  BudgetAllocation `json:"allocation"`
	AccountName string           `json:"accountName"`
	Actual      decimal.Decimal  `json:"actual"`
	Variance    decimal.Decimal  `json:"variance"`
	VariancePct decimal.Decimal  `json:"variancePct"`
}
