package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AsOfParams is the query of point-in-time reports.
type AsOfParams struct {
	AsOfDate string `form:"asOfDate"`
}

// AsOf returns the parsed date, or today when absent.
func (p AsOfParams) AsOf(now time.Time) (time.Time, error) {
	return dateOrToday(p.AsOfDate, now)
}

// PeriodParams is the query of period reports. Both bounds are required.
type PeriodParams struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
	Basis     string `form:"basis" binding:"omitempty,oneof=cumulative period"`
}

// Range parses the bounds and checks their order.
func (p PeriodParams) Range() (time.Time, time.Time, error) {
	start, err := ParseDate(p.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(p.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate is before startDate", apperrors.ErrValidation)
	}
	return start, end, nil
}

// IncomeBasis returns the requested basis, cumulative by default.
func (p PeriodParams) IncomeBasis() domain.IncomeBasis {
	if p.Basis == "" {
		return domain.BasisCumulative
	}
	return domain.IncomeBasis(p.Basis)
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	NormalBalance string          `json:"normalBalance"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	IsBalanced bool `json:"isBalanced"`
}

// ReportLineResponse represents an account with its amount in a financial report
type ReportLineResponse struct {
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Amount        decimal.Decimal `json:"amount"`
}

// IncomeStatementResponse represents the income statement report response
type IncomeStatementResponse struct {
	StartDate string               `json:"startDate"`
	EndDate   string               `json:"endDate"`
	Basis     string               `json:"basis"`
	Revenue   []ReportLineResponse `json:"revenue"`
	Expenses  []ReportLineResponse `json:"expenses"`
	Summary   struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetIncome     decimal.Decimal `json:"netIncome"`
		ProfitMargin  decimal.Decimal `json:"profitMargin"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string               `json:"asOf"`
	Assets      []ReportLineResponse `json:"assets"`
	Liabilities []ReportLineResponse `json:"liabilities"`
	Equity      []ReportLineResponse `json:"equity"`
	Summary     struct {
		TotalAssets               decimal.Decimal `json:"totalAssets"`
		TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
		TotalEquity               decimal.Decimal `json:"totalEquity"`
		CurrentEarnings           decimal.Decimal `json:"currentEarnings"`
		TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
		IsBalanced                bool            `json:"isBalanced"`
	} `json:"summary"`
}

// CashFlowResponse represents the cash flow statement response
type CashFlowResponse struct {
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	CashAccountNumber string          `json:"cashAccountNumber"`
	Operating         decimal.Decimal `json:"operatingActivities"`
	Investing         decimal.Decimal `json:"investingActivities"`
	Financing         decimal.Decimal `json:"financingActivities"`
	Unclassified      decimal.Decimal `json:"unclassified"`
	NetCashFlow       decimal.Decimal `json:"netCashFlow"`
	EndingCashBalance decimal.Decimal `json:"endingCashBalance"`
}

func toReportLines(lines []domain.ReportLine) []ReportLineResponse {
	res := make([]ReportLineResponse, len(lines))
	for i, l := range lines {
		res[i] = ReportLineResponse{AccountNumber: l.AccountNumber, AccountName: l.AccountName, Amount: l.Amount}
	}
	return res
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf:       tb.AsOf.Format(DateLayout),
		Rows:       make([]TrialBalanceRowResponse, len(tb.Rows)),
		IsBalanced: tb.IsBalanced,
	}
	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountNumber: row.AccountNumber,
			AccountName:   row.AccountName,
			AccountType:   string(row.AccountType),
			NormalBalance: string(row.NormalBalance),
			Debit:         row.Debit,
			Credit:        row.Credit,
		}
	}
	response.Totals.Debit = tb.TotalDebits
	response.Totals.Credit = tb.TotalCredits
	return response
}

// ToIncomeStatementResponse converts a domain income statement to a DTO response
func ToIncomeStatementResponse(is *domain.IncomeStatement) IncomeStatementResponse {
	response := IncomeStatementResponse{
		StartDate: is.StartDate.Format(DateLayout),
		EndDate:   is.EndDate.Format(DateLayout),
		Basis:     string(is.Basis),
		Revenue:   toReportLines(is.Revenue),
		Expenses:  toReportLines(is.Expenses),
	}
	response.Summary.TotalRevenue = is.TotalRevenue
	response.Summary.TotalExpenses = is.TotalExpenses
	response.Summary.NetIncome = is.NetIncome
	response.Summary.ProfitMargin = is.ProfitMargin
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet to a DTO response.
// The computed current earnings appear as the last equity line.
func ToBalanceSheetResponse(bs *domain.BalanceSheet) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        bs.AsOf.Format(DateLayout),
		Assets:      toReportLines(bs.Assets.Lines),
		Liabilities: toReportLines(bs.Liabilities.Lines),
		Equity:      toReportLines(bs.Equity.Lines),
	}
	response.Equity = append(response.Equity, ReportLineResponse{
		AccountName: domain.CurrentEarningsLabel,
		Amount:      bs.CurrentEarnings,
	})
	response.Summary.TotalAssets = bs.Assets.Total
	response.Summary.TotalLiabilities = bs.Liabilities.Total
	response.Summary.TotalEquity = bs.Equity.Total.Add(bs.CurrentEarnings)
	response.Summary.CurrentEarnings = bs.CurrentEarnings
	response.Summary.TotalLiabilitiesAndEquity = bs.TotalLiabilitiesAndEquity
	response.Summary.IsBalanced = bs.IsBalanced
	return response
}

// ToCashFlowResponse converts a domain cash flow statement to a DTO response
func ToCashFlowResponse(cf *domain.CashFlowStatement) CashFlowResponse {
	return CashFlowResponse{
		StartDate:         cf.StartDate.Format(DateLayout),
		EndDate:           cf.EndDate.Format(DateLayout),
		CashAccountNumber: cf.CashAccountNumber,
		Operating:         cf.OperatingActivities,
		Investing:         cf.InvestingActivities,
		Financing:         cf.FinancingActivities,
		Unclassified:      cf.Unclassified,
		NetCashFlow:       cf.NetCashFlow,
		EndingCashBalance: cf.EndingCashBalance,
	}
}

// IntegrityResponse is the result of a ledger verification.
type IntegrityResponse struct {
	OK              bool                     `json:"ok"`
	CheckedAccounts int                      `json:"checkedAccounts"`
	TrialBalanced   bool                     `json:"trialBalanced"`
	TotalDebits     decimal.Decimal          `json:"totalDebits"`
	TotalCredits    decimal.Decimal          `json:"totalCredits"`
	Mismatches      []domain.BalanceMismatch `json:"mismatches"`
}

// ToIntegrityResponse converts an integrity report.
func ToIntegrityResponse(r *domain.IntegrityReport) IntegrityResponse {
	mismatches := r.Mismatches
	if mismatches == nil {
		mismatches = []domain.BalanceMismatch{}
	}
	return IntegrityResponse{
		OK:              r.OK,
		CheckedAccounts: r.CheckedAccounts,
		TrialBalanced:   r.TrialBalanced,
		TotalDebits:     r.TotalDebits,
		TotalCredits:    r.TotalCredits,
		Mismatches:      mismatches,
	}
}
