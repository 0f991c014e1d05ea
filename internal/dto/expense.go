package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordExpenseRequest defines the payload for recording an expense.
type RecordExpenseRequest struct {
	ExpenseDate string          `json:"expenseDate" binding:"required"`
	SupplierID  string          `json:"supplierId" binding:"omitempty,uuid"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"gt=0"`
	Description string          `json:"description" binding:"required,max=500"`
	ReceiptURL  string          `json:"receiptUrl" binding:"omitempty,url"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Category string `form:"category"`
}

// ToFilter converts the query to a domain filter.
func (p ListExpensesParams) ToFilter() domain.ExpenseFilter {
	var filter domain.ExpenseFilter
	if p.Status != "" {
		s := domain.ExpenseStatus(p.Status)
		filter.Status = &s
	}
	if p.Category != "" {
		c := domain.ExpenseCategory(p.Category)
		filter.Category = &c
	}
	return filter
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID          string          `json:"expenseID"`
	ExpenseDate        string          `json:"expenseDate"`
	SupplierID         string          `json:"supplierId,omitempty"`
	Category           string          `json:"category"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description"`
	ReceiptURL         string          `json:"receiptUrl,omitempty"`
	Status             string          `json:"status"`
	ApprovedBy         string          `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time      `json:"approvedAt,omitempty"`
	JournalEntryNumber string          `json:"journalEntryNumber,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
}

// ToExpenseResponse converts a domain.Expense to its DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:          e.ExpenseID,
		ExpenseDate:        e.ExpenseDate.Format(DateLayout),
		SupplierID:         e.SupplierID,
		Category:           string(e.Category),
		Amount:             e.Amount,
		Description:        e.Description,
		ReceiptURL:         e.ReceiptURL,
		Status:             string(e.Status),
		ApprovedBy:         e.ApprovedBy,
		ApprovedAt:         e.ApprovedAt,
		JournalEntryNumber: e.JournalEntryNumber,
		CreatedAt:          e.CreatedAt,
		CreatedBy:          e.CreatedBy,
	}
}

// ToExpenseResponses converts a slice of expenses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}
