package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `expense_id, expense_date, supplier_id, category, amount, description, receipt_url, status,
	approved_by, approved_at, journal_entry_number, created_at, created_by, last_updated_at, last_updated_by`

const supplierColumns = `supplier_id, supplier_name, contact_person, email, phone, address, tax_id, payment_terms,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

const budgetColumns = `budget_id, fiscal_year, fiscal_month, account_number, budgeted_amount,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

// SaveExpense inserts a new expense. An unknown supplier is a validation error.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`,
		m.ExpenseID,
		m.ExpenseDate,
		m.SupplierID,
		m.Category,
		m.Amount,
		m.Description,
		m.ReceiptURL,
		m.Status,
		m.ApprovedBy,
		m.ApprovedAt,
		m.JournalEntryNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		switch {
		case hasCode(err, uniqueViolation):
			return fmt.Errorf("%w: expense %s", apperrors.ErrDuplicate, m.ExpenseID)
		case hasCode(err, foreignKeyViolation):
			return fmt.Errorf("%w: supplier does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense %s: %w", expenseID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan expense %s: %w", expenseID, err)
	}
	e := mapping.ToDomainExpense(m)
	return &e, nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	var status, category *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	if filter.Category != nil {
		c := string(*filter.Category)
		category = &c
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR category = $2)
		ORDER BY expense_date DESC, created_at DESC;
	`, status, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		return nil, fmt.Errorf("failed to scan expenses: %w", err)
	}
	expenses := make([]domain.Expense, 0, len(ms))
	for _, m := range ms {
		expenses = append(expenses, mapping.ToDomainExpense(m))
	}
	return expenses, nil
}

// UpdateExpenseStatus is a compare-and-set on the status column.
func (r *PgxExpenseRepository) UpdateExpenseStatus(ctx context.Context, expense domain.Expense, fromStatus domain.ExpenseStatus) error {
	m := mapping.ToModelExpense(expense)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE expenses
		SET status = $2, approved_by = $3, approved_at = $4, journal_entry_number = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE expense_id = $1 AND status = $8;
	`,
		m.ExpenseID,
		m.Status,
		m.ApprovedBy,
		m.ApprovedAt,
		m.JournalEntryNumber,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(fromStatus),
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		stored, err := r.FindExpenseByID(ctx, m.ExpenseID)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: expense %s is %s", apperrors.ErrConflict, m.ExpenseID, stored.Status)
	}
	return nil
}

type PgxSupplierRepository struct {
	BaseRepository
}

func newPgxSupplierRepository(pool *pgxpool.Pool) *PgxSupplierRepository {
	return &PgxSupplierRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		m.SupplierID,
		m.Name,
		m.ContactPerson,
		m.Email,
		m.Phone,
		m.Address,
		m.TaxID,
		m.PaymentTerms,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return fmt.Errorf("%w: supplier %s", apperrors.ErrDuplicate, m.SupplierID)
		}
		return fmt.Errorf("failed to save supplier %s: %w", m.SupplierID, err)
	}
	return nil
}

func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE supplier_id = $1;`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplier %s: %w", supplierID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Supplier])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan supplier %s: %w", supplierID, err)
	}
	s := mapping.ToDomainSupplier(m)
	return &s, nil
}

func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context, activeOnly bool) ([]domain.Supplier, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+supplierColumns+`
		FROM suppliers
		WHERE NOT $1 OR is_active
		ORDER BY supplier_name, supplier_id;
	`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Supplier])
	if err != nil {
		return nil, fmt.Errorf("failed to scan suppliers: %w", err)
	}
	suppliers := make([]domain.Supplier, 0, len(ms))
	for _, m := range ms {
		suppliers = append(suppliers, mapping.ToDomainSupplier(m))
	}
	return suppliers, nil
}

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// UpsertBudget keeps the id and creation audit of an existing allocation.
func (r *PgxBudgetRepository) UpsertBudget(ctx context.Context, budget domain.BudgetAllocation) (*domain.BudgetAllocation, error) {
	m := mapping.ToModelBudget(budget)
	rows, err := r.Pool.Query(ctx, `
		INSERT INTO budget_allocations (`+budgetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (fiscal_year, fiscal_month, account_number) DO UPDATE
		SET budgeted_amount = EXCLUDED.budgeted_amount,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING `+budgetColumns+`;
	`,
		m.BudgetID,
		m.FiscalYear,
		m.FiscalMonth,
		m.AccountNumber,
		m.Budgeted,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.BudgetAllocation])
	if err != nil {
		if hasCode(err, foreignKeyViolation) {
			return nil, &apperrors.UnknownAccountError{AccountNumber: m.AccountNumber}
		}
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}
	b := mapping.ToDomainBudget(saved)
	return &b, nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, fiscalYear int, fiscalMonth *int) ([]domain.BudgetAllocation, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+budgetColumns+`
		FROM budget_allocations
		WHERE fiscal_year = $1 AND ($2::int IS NULL OR fiscal_month = $2)
		ORDER BY account_number, fiscal_month;
	`, fiscalYear, fiscalMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BudgetAllocation])
	if err != nil {
		return nil, fmt.Errorf("failed to scan budgets: %w", err)
	}
	budgets := make([]domain.BudgetAllocation, 0, len(ms))
	for _, m := range ms {
		budgets = append(budgets, mapping.ToDomainBudget(m))
	}
	return budgets, nil
}
