package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		AccountNumber: d.Number,
		Name:          d.Name,
		AccountType:   string(d.AccountType),
		SubType:       nullable(d.SubType),
		NormalBalance: string(d.NormalBalance),
		Description:   nullable(d.Description),
		Balance:       d.Balance,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		Number:        m.AccountNumber,
		Name:          m.Name,
		AccountType:   domain.AccountType(m.AccountType),
		SubType:       deref(m.SubType),
		NormalBalance: domain.NormalBalance(m.NormalBalance),
		Description:   deref(m.Description),
		Balance:       m.Balance,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccounts converts a slice of model Accounts
func ToDomainAccounts(ms []models.Account) []domain.Account {
	if ms == nil {
		return nil
	}
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
