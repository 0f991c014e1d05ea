package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an operating expense.
type ExpenseCategory string

const (
	CategoryOfficeSupplies ExpenseCategory = "Office Supplies"
	CategoryUtilities      ExpenseCategory = "Utilities"
	CategoryRent           ExpenseCategory = "Rent"
	CategorySalaries       ExpenseCategory = "Salaries"
	CategoryMarketing      ExpenseCategory = "Marketing"
	CategoryTravel         ExpenseCategory = "Travel"
	CategoryMeals          ExpenseCategory = "Meals"
	CategoryEquipment      ExpenseCategory = "Equipment"
	CategoryOther          ExpenseCategory = "Other"
)

// ExpenseCategories lists the accepted categories.
var ExpenseCategories = []ExpenseCategory{
	CategoryOfficeSupplies, CategoryUtilities, CategoryRent, CategorySalaries, CategoryMarketing,
	CategoryTravel, CategoryMeals, CategoryEquipment, CategoryOther,
}

// Valid reports whether c is an accepted category.
func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ExpenseStatus is the approval state of an expense.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// Expense is a recorded business expense awaiting or past approval.
type Expense struct {
	ExpenseID          string          `json:"expenseID"`
	ExpenseDate        time.Time       `json:"expenseDate"`
	SupplierID         string          `json:"supplierID"`
	Category           ExpenseCategory `json:"category"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description"`
	ReceiptURL         string          `json:"receiptUrl"`
	Status             ExpenseStatus   `json:"status"`
	ApprovedBy         string          `json:"approvedBy"`
	ApprovedAt         *time.Time      `json:"approvedAt"`
	JournalEntryNumber string          `json:"journalEntryNumber"`
	AuditFields
}

// ExpenseFilter narrows ListExpenses. Nil fields do not filter.
type ExpenseFilter struct {
	Status   *ExpenseStatus
	Category *ExpenseCategory
}

// Matches reports whether the expense passes the filter.
func (f ExpenseFilter) Matches(e Expense) bool {
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.Category != nil && e.Category != *f.Category {
		return false
	}
	return true
}
