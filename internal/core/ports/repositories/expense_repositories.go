package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ExpenseRepositoryFacade persists expenses.
type ExpenseRepositoryFacade interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	// ListExpenses returns expenses newest expense date first.
	ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error)
	// UpdateExpenseStatus moves an expense out of fromStatus. It fails with
	// apperrors.ErrConflict when the stored status is no longer fromStatus.
	UpdateExpenseStatus(ctx context.Context, expense domain.Expense, fromStatus domain.ExpenseStatus) error
}

// SupplierRepositoryFacade persists suppliers.
type SupplierRepositoryFacade interface {
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	// ListSuppliers returns suppliers ordered by name.
	ListSuppliers(ctx context.Context, activeOnly bool) ([]domain.Supplier, error)
}

// BudgetRepositoryFacade persists budget allocations.
type BudgetRepositoryFacade interface {
	// UpsertBudget inserts or replaces the allocation for (year, month, account).
	UpsertBudget(ctx context.Context, budget domain.BudgetAllocation) (*domain.BudgetAllocation, error)
	// ListBudgets returns allocations for the year (and month when non-nil)
	// ordered by account number then month.
	ListBudgets(ctx context.Context, fiscalYear int, fiscalMonth *int) ([]domain.BudgetAllocation, error)
}
