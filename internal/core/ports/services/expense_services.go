package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// ExpenseSvc manages the expense approval workflow
type ExpenseSvc interface {
	RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, userID string) (*domain.Expense, error)
	GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error)
	// ApproveExpense approves a pending expense and posts it to the ledger.
	ApproveExpense(ctx context.Context, expenseID string, approverID string) (*domain.Expense, error)
	RejectExpense(ctx context.Context, expenseID string, approverID string) (*domain.Expense, error)
}

// SupplierSvc manages suppliers
type SupplierSvc interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, userID string) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, activeOnly bool) ([]domain.Supplier, error)
}

// BudgetSvc manages budget allocations and their analysis
type BudgetSvc interface {
	SetBudget(ctx context.Context, req dto.SetBudgetRequest, userID string) (*domain.BudgetAllocation, error)
	// BudgetAnalysis compares allocations with the ledger activity of their month.
	BudgetAnalysis(ctx context.Context, fiscalYear int, fiscalMonth *int) ([]domain.BudgetVariance, error)
}
