package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// JournalPosterSvc validates and atomically commits journal entries
type JournalPosterSvc interface {
	// PostJournalEntry validates the request and posts it as one unit. Validation
	// failures are returned before anything is written.
	PostJournalEntry(ctx context.Context, req domain.PostRequest) (*domain.PostResult, error)
}

// AutoPosterSvc builds the two-line entries recorded for operational events
type AutoPosterSvc interface {
	AutoPostSale(ctx context.Context, sale domain.SalePosting) (*domain.PostResult, error)
	AutoPostOrder(ctx context.Context, order domain.OrderPosting) (*domain.PostResult, error)
	AutoPostExpense(ctx context.Context, expense domain.Expense, postedBy string) (*domain.PostResult, error)
}

// JournalReaderSvc defines read operations for posted entries
type JournalReaderSvc interface {
	// GetJournalEntry retrieves an entry and its lines by entry number.
	GetJournalEntry(ctx context.Context, entryNumber string) (*domain.JournalEntry, []domain.LedgerLine, error)

	// ListJournalEntries retrieves a page of entries, newest first.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalPosterSvc
	AutoPosterSvc
	JournalReaderSvc
}

// LedgerReaderSvc computes read-time views over one account's lines
type LedgerReaderSvc interface {
	// GeneralLedger returns the account's lines in the range annotated with running balances.
	GeneralLedger(ctx context.Context, accountNumber string, dateRange domain.DateRange) (*domain.GeneralLedger, error)
}
