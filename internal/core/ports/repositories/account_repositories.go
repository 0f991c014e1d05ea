package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	// FindAccountByNumber retrieves an account by its account number.
	FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error)

	// FindAccountsByNumbers retrieves multiple accounts keyed by number.
	// Numbers that do not exist are simply absent from the map.
	FindAccountsByNumbers(ctx context.Context, numbers []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts matching the filter ordered by number.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriter defines write operations for the chart of accounts.
// Balances are never written here; only the ledger writer moves them.
type AccountWriter interface {
	// SaveAccount persists a new account. Fails with apperrors.ErrDuplicateAccount.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates descriptive fields and the active flag.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
