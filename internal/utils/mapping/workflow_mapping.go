package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:          d.ExpenseID,
		ExpenseDate:        d.ExpenseDate,
		SupplierID:         nullable(d.SupplierID),
		Category:           string(d.Category),
		Amount:             d.Amount,
		Description:        d.Description,
		ReceiptURL:         nullable(d.ReceiptURL),
		Status:             string(d.Status),
		ApprovedBy:         nullable(d.ApprovedBy),
		ApprovedAt:         d.ApprovedAt,
		JournalEntryNumber: nullable(d.JournalEntryNumber),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:          m.ExpenseID,
		ExpenseDate:        domain.StartOfDay(m.ExpenseDate),
		SupplierID:         deref(m.SupplierID),
		Category:           domain.ExpenseCategory(m.Category),
		Amount:             m.Amount,
		Description:        m.Description,
		ReceiptURL:         deref(m.ReceiptURL),
		Status:             domain.ExpenseStatus(m.Status),
		ApprovedBy:         deref(m.ApprovedBy),
		ApprovedAt:         m.ApprovedAt,
		JournalEntryNumber: deref(m.JournalEntryNumber),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelSupplier(d domain.Supplier) models.Supplier {
	return models.Supplier{
		SupplierID:    d.SupplierID,
		Name:          d.Name,
		ContactPerson: nullable(d.ContactPerson),
		Email:         nullable(d.Email),
		Phone:         nullable(d.Phone),
		Address:       nullable(d.Address),
		TaxID:         nullable(d.TaxID),
		PaymentTerms:  nullable(d.PaymentTerms),
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:    m.SupplierID,
		Name:          m.Name,
		ContactPerson: deref(m.ContactPerson),
		Email:         deref(m.Email),
		Phone:         deref(m.Phone),
		Address:       deref(m.Address),
		TaxID:         deref(m.TaxID),
		PaymentTerms:  deref(m.PaymentTerms),
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelBudget(d domain.BudgetAllocation) models.BudgetAllocation {
	return models.BudgetAllocation{
		BudgetID:      d.BudgetID,
		FiscalYear:    d.FiscalYear,
		FiscalMonth:   d.FiscalMonth,
		AccountNumber: d.AccountNumber,
		Budgeted:      d.Budgeted,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBudget(m models.BudgetAllocation) domain.BudgetAllocation {
	return domain.BudgetAllocation{
		BudgetID:      m.BudgetID,
		FiscalYear:    m.FiscalYear,
		FiscalMonth:   m.FiscalMonth,
		AccountNumber: m.AccountNumber,
		Budgeted:      m.Budgeted,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
