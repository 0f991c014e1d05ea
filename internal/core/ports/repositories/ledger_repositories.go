package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// LedgerWriter commits journal entries.
type LedgerWriter interface {
	// PostEntry atomically inserts the entry, appends its lines and applies every
	// affected account's balance delta. When entry.EntryNumber is empty the next
	// sequential number is assigned. Either everything is applied or nothing is.
	PostEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.LedgerLine) (*domain.JournalEntry, []domain.LedgerLine, error)
}

// LedgerReader defines read operations over posted entries and lines
type LedgerReader interface {
	// FindJournalEntry retrieves a journal entry by its entry number.
	FindJournalEntry(ctx context.Context, entryNumber string) (*domain.JournalEntry, error)

	// LinesForJournalEntry returns the lines of one entry in post order.
	LinesForJournalEntry(ctx context.Context, journalEntryID string) ([]domain.LedgerLine, error)

	// ListJournalEntries returns entries newest first using token-based pagination.
	ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// LinesForAccount returns the account and its lines within the range, ordered
	// by entry date then insertion order, both read from the same snapshot.
	LinesForAccount(ctx context.Context, accountNumber string, dateRange domain.DateRange) (*domain.Account, []domain.LedgerLine, error)

	// AccountActivity returns every account with the debit and credit totals of
	// its lines inside the range, read from a single snapshot.
	AccountActivity(ctx context.Context, dateRange domain.DateRange) ([]domain.AccountActivity, error)
}

// LedgerRepositoryFacade combines the ledger reader and writer
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
}
