package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a row of the expenses table.
type Expense struct {
	ExpenseID          string          `db:"expense_id"`
	ExpenseDate        time.Time       `db:"expense_date"`
	SupplierID         *string         `db:"supplier_id"` // Nullable FK
	Category           string          `db:"category"`
	Amount             decimal.Decimal `db:"amount"`
	Description        string          `db:"description"`
	ReceiptURL         *string         `db:"receipt_url"`
	Status             string          `db:"status"`
	ApprovedBy         *string         `db:"approved_by"`
	ApprovedAt         *time.Time      `db:"approved_at"`
	JournalEntryNumber *string         `db:"journal_entry_number"`
	AuditFields
}

// Supplier is a row of the suppliers table.
type Supplier struct {
	SupplierID    string  `db:"supplier_id"`
	Name          string  `db:"supplier_name"`
	ContactPerson *string `db:"contact_person"`
	Email         *string `db:"email"`
	Phone         *string `db:"phone"`
	Address       *string `db:"address"`
	TaxID         *string `db:"tax_id"`
	PaymentTerms  *string `db:"payment_terms"`
	IsActive      bool    `db:"is_active"`
	AuditFields
}

// BudgetAllocation is a row of the budget_allocations table.
type BudgetAllocation struct {
	BudgetID      string          `db:"budget_id"`
	FiscalYear    int             `db:"fiscal_year"`
	FiscalMonth   int             `db:"fiscal_month"`
	AccountNumber string          `db:"account_number"`
	Budgeted      decimal.Decimal `db:"budgeted_amount"`
	AuditFields
}
