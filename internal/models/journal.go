package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	JournalEntryID string          `db:"journal_entry_id"`
	EntryNumber    string          `db:"entry_number"`
	EntryDate      time.Time       `db:"entry_date"`
	Description    string          `db:"description"`
	Reference      *string         `db:"reference"` // Nullable
	ReferenceType  string          `db:"reference_type"`
	Memo           *string         `db:"memo"` // Nullable
	TotalAmount    decimal.Decimal `db:"total_amount"`
	Status         string          `db:"status"`
	CreatedBy      string          `db:"created_by"`
	CreatedAt      time.Time       `db:"created_at"`
}

// LedgerLine is a row of the ledger_lines table. Sequence is a bigserial.
type LedgerLine struct {
	LineID         string          `db:"line_id"`
	Sequence       int64           `db:"line_seq"`
	JournalEntryID string          `db:"journal_entry_id"`
	AccountID      string          `db:"account_id"`
	AccountNumber  string          `db:"account_number"`
	DebitAmount    decimal.Decimal `db:"debit_amount"`
	CreditAmount   decimal.Decimal `db:"credit_amount"`
	Description    *string         `db:"description"` // Nullable
	EntryDate      time.Time       `db:"entry_date"`
	Reference      *string         `db:"reference"` // Nullable
	ReferenceType  string          `db:"reference_type"`
}
