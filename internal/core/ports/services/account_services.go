package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccount retrieves an account by its account number.
	GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccounts retrieves the accounts matching the filter ordered by number.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount registers a new account with a zero balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount applies a partial update to an existing account.
	UpdateAccount(ctx context.Context, accountNumber string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// SeedChartOfAccounts creates every account whose number is not yet registered.
	SeedChartOfAccounts(ctx context.Context, accounts []dto.CreateAccountRequest, userID string) (created int, skipped int, err error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
