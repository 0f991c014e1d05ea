package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	supplierRepo := newPgxSupplierRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:  accountRepo,
		LedgerRepo:   ledgerRepo,
		ExpenseRepo:  expenseRepo,
		SupplierRepo: supplierRepo,
		BudgetRepo:   budgetRepo,
	}
}
