package dto

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetBudgetRequest upserts the allocation of one account for one fiscal month.
type SetBudgetRequest struct {
	FiscalYear    int             `json:"fiscalYear" binding:"required,min=1900,max=9999"`
	FiscalMonth   int             `json:"fiscalMonth" binding:"required,min=1,max=12"`
	AccountNumber string          `json:"accountNumber" binding:"required,account_number"`
	Budgeted      decimal.Decimal `json:"budgeted" binding:"gte=0"`
}

// BudgetAnalysisParams selects the allocations to analyse.
type BudgetAnalysisParams struct {
	FiscalYear  int  `form:"fiscalYear" binding:"required,min=1900,max=9999"`
	FiscalMonth *int `form:"fiscalMonth" binding:"omitempty,min=1,max=12"`
}

// BudgetResponse defines the data returned for an allocation.
type BudgetResponse struct {
	BudgetID      string          `json:"budgetID"`
	FiscalYear    int             `json:"fiscalYear"`
	FiscalMonth   int             `json:"fiscalMonth"`
	AccountNumber string          `json:"accountNumber"`
	Budgeted      decimal.Decimal `json:"budgeted"`
}

// BudgetVarianceResponse is one row of the budget-vs-actual analysis.
type BudgetVarianceResponse struct {
	BudgetResponse
	AccountName string          `json:"accountName"`
	Actual      decimal.Decimal `json:"actual"`
	Variance    decimal.Decimal `json:"variance"`
	VariancePct decimal.Decimal `json:"variancePct"`
}

// ToBudgetResponse converts a domain.BudgetAllocation.
func ToBudgetResponse(b *domain.BudgetAllocation) BudgetResponse {
	return BudgetResponse{
		BudgetID:      b.BudgetID,
		FiscalYear:    b.FiscalYear,
		FiscalMonth:   b.FiscalMonth,
		AccountNumber: b.AccountNumber,
		Budgeted:      b.Budgeted,
	}
}

// ToBudgetVarianceResponses converts analysis rows.
func ToBudgetVarianceResponses(rows []domain.BudgetVariance) []BudgetVarianceResponse {
	res := make([]BudgetVarianceResponse, len(rows))
	for i := range rows {
		res[i] = BudgetVarianceResponse{
			BudgetResponse: ToBudgetResponse(&rows[i].Allocation),
			AccountName:    rows[i].AccountName,
			Actual:         rows[i].Actual,
			Variance:       rows[i].Variance,
			VariancePct:    rows[i].VariancePct,
		}
	}
	return res
}
