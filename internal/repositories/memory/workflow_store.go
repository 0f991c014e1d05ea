package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func (s *Store) SaveExpense(ctx context.Context, expense domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.expenses[expense.ExpenseID]; exists {
		return fmt.Errorf("%w: expense %s", apperrors.ErrDuplicate, expense.ExpenseID)
	}
	s.expenses[expense.ExpenseID] = expense
	return nil
}

func (s *Store) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[expenseID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses := make([]domain.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if filter.Matches(e) {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].ExpenseDate.Equal(expenses[j].ExpenseDate) {
			return expenses[i].ExpenseDate.After(expenses[j].ExpenseDate)
		}
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
	return expenses, nil
}

func (s *Store) UpdateExpenseStatus(ctx context.Context, expense domain.Expense, fromStatus domain.ExpenseStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.expenses[expense.ExpenseID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Status != fromStatus {
		return fmt.Errorf("%w: expense %s is %s", apperrors.ErrConflict, expense.ExpenseID, stored.Status)
	}
	stored.Status = expense.Status
	stored.ApprovedBy = expense.ApprovedBy
	stored.ApprovedAt = expense.ApprovedAt
	stored.JournalEntryNumber = expense.JournalEntryNumber
	stored.LastUpdatedAt = expense.LastUpdatedAt
	stored.LastUpdatedBy = expense.LastUpdatedBy
	s.expenses[expense.ExpenseID] = stored
	return nil
}

func (s *Store) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.suppliers[supplier.SupplierID]; exists {
		return fmt.Errorf("%w: supplier %s", apperrors.ErrDuplicate, supplier.SupplierID)
	}
	s.suppliers[supplier.SupplierID] = supplier
	return nil
}

func (s *Store) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sup, ok := s.suppliers[supplierID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &sup, nil
}

func (s *Store) ListSuppliers(ctx context.Context, activeOnly bool) ([]domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	suppliers := make([]domain.Supplier, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		if !activeOnly || sup.IsActive {
			suppliers = append(suppliers, sup)
		}
	}
	sort.Slice(suppliers, func(i, j int) bool {
		if suppliers[i].Name != suppliers[j].Name {
			return suppliers[i].Name < suppliers[j].Name
		}
		return suppliers[i].SupplierID < suppliers[j].SupplierID
	})
	return suppliers, nil
}

// UpsertBudget keeps the id and creation audit of an existing allocation.
func (s *Store) UpsertBudget(ctx context.Context, budget domain.BudgetAllocation) (*domain.BudgetAllocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := budgetKey{year: budget.FiscalYear, month: budget.FiscalMonth, account: budget.AccountNumber}
	if existing, ok := s.budgets[key]; ok {
		budget.BudgetID = existing.BudgetID
		budget.CreatedAt = existing.CreatedAt
		budget.CreatedBy = existing.CreatedBy
	}
	s.budgets[key] = budget
	return &budget, nil
}

func (s *Store) ListBudgets(ctx context.Context, fiscalYear int, fiscalMonth *int) ([]domain.BudgetAllocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	budgets := make([]domain.BudgetAllocation, 0)
	for key, b := range s.budgets {
		if key.year != fiscalYear || (fiscalMonth != nil && key.month != *fiscalMonth) {
			continue
		}
		budgets = append(budgets, b)
	}
	sort.Slice(budgets, func(i, j int) bool {
		if budgets[i].AccountNumber != budgets[j].AccountNumber {
			return budgets[i].AccountNumber < budgets[j].AccountNumber
		}
		return budgets[i].FiscalMonth < budgets[j].FiscalMonth
	})
	return budgets, nil
}
