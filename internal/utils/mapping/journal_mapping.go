package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID: d.JournalEntryID,
		EntryNumber:    d.EntryNumber,
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		Reference:      nullable(d.Reference),
		ReferenceType:  string(d.ReferenceType),
		Memo:           nullable(d.Memo),
		TotalAmount:    d.TotalAmount,
		Status:         string(d.Status),
		CreatedBy:      d.CreatedBy,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		EntryNumber:    m.EntryNumber,
		EntryDate:      domain.StartOfDay(m.EntryDate),
		Description:    m.Description,
		Reference:      deref(m.Reference),
		ReferenceType:  domain.ReferenceType(m.ReferenceType),
		Memo:           deref(m.Memo),
		TotalAmount:    m.TotalAmount,
		Status:         domain.JournalStatus(m.Status),
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

// ToModelLedgerLine converts a domain LedgerLine to a model LedgerLine
func ToModelLedgerLine(d domain.LedgerLine) models.LedgerLine {
	return models.LedgerLine{
		LineID:         d.LineID,
		Sequence:       d.Sequence,
		JournalEntryID: d.JournalEntryID,
		AccountID:      d.AccountID,
		AccountNumber:  d.AccountNumber,
		DebitAmount:    d.DebitAmount,
		CreditAmount:   d.CreditAmount,
		Description:    nullable(d.Description),
		EntryDate:      d.EntryDate,
		Reference:      nullable(d.Reference),
		ReferenceType:  string(d.ReferenceType),
	}
}

// ToDomainLedgerLine converts a model LedgerLine to a domain LedgerLine
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:         m.LineID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		AccountNumber:  m.AccountNumber,
		DebitAmount:    m.DebitAmount,
		CreditAmount:   m.CreditAmount,
		Description:    deref(m.Description),
		EntryDate:      domain.StartOfDay(m.EntryDate),
		Reference:      deref(m.Reference),
		ReferenceType:  domain.ReferenceType(m.ReferenceType),
		Sequence:       m.Sequence,
	}
}

// ToDomainLedgerLines converts a slice of model LedgerLines
func ToDomainLedgerLines(ms []models.LedgerLine) []domain.LedgerLine {
	ds := make([]domain.LedgerLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerLine(m)
	}
	return ds
}
