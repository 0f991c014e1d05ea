package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	reportCache portsrepo.ReportCache
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountReportCache invalidates cached reports whenever the chart changes.
func WithAccountReportCache(cache portsrepo.ReportCache) AccountServiceOption {
	return func(s *accountService) {
		s.reportCache = cache
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// newAccount validates the request and builds the account to persist.
func (s *accountService) newAccount(req dto.CreateAccountRequest, userID string) (domain.Account, error) {
	number := strings.TrimSpace(req.AccountNumber)
	name := strings.TrimSpace(req.AccountName)
	if number == "" || name == "" {
		return domain.Account{}, fmt.Errorf("%w: account number and name are required", apperrors.ErrValidation)
	}
	if !domain.ValidAccountNumber(number) {
		return domain.Account{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidAccountNumber, number)
	}
	accountType := domain.AccountType(req.AccountType)
	if !accountType.Valid() {
		return domain.Account{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidAccountType, req.AccountType)
	}
	normal := domain.NormalBalance(req.NormalBalance)
	if !normal.Valid() {
		return domain.Account{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidNormalBalance, req.NormalBalance)
	}

	now := s.Now()
	userID = orSystem(userID)
	return domain.Account{
		AccountID:     uuid.NewString(),
		Number:        number,
		Name:          name,
		AccountType:   accountType,
		SubType:       req.SubType,
		NormalBalance: normal,
		Description:   req.Description,
		Balance:       decimal.Zero,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.newAccount(req, userID)
	if err != nil {
		s.LogDebug(ctx, "Rejected account creation", slog.String("account_number", req.AccountNumber), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account in repository", slog.String("account_number", account.Number))
		}
		return nil, err
	}

	s.invalidateReports(ctx)
	s.LogInfo(ctx, "Account created successfully", slog.String("account_number", account.Number), slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		// Don't log if error is ErrNotFound, as it's an expected outcome
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by number", slog.String("account_number", accountNumber))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves the accounts matching the filter.
func (s *accountService) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidAccountType, *filter.Type)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts from repository")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

// UpdateAccount applies a partial update. An account can only be deactivated
// once its balance is zero.
func (s *accountService) UpdateAccount(ctx context.Context, accountNumber string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	patch := req.ToPatch()
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}
	if patch.SubType != nil {
		account.SubType = *patch.SubType
	}
	if patch.Description != nil {
		account.Description = *patch.Description
	}
	if patch.IsActive != nil {
		if account.IsActive && !*patch.IsActive && !account.Balance.IsZero() {
			return nil, fmt.Errorf("%w: account %s has a non-zero balance of %s and cannot be deactivated",
				apperrors.ErrValidation, account.Number, account.Balance.StringFixed(2))
		}
		account.IsActive = *patch.IsActive
	}
	account.LastUpdatedAt = s.Now()
	account.LastUpdatedBy = orSystem(userID)

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update account in repository", slog.String("account_number", accountNumber))
		}
		return nil, err
	}

	s.invalidateReports(ctx)
	s.LogInfo(ctx, "Account updated successfully", slog.String("account_number", accountNumber))
	return account, nil
}

// SeedChartOfAccounts creates each account absent by number and leaves existing ones untouched.
func (s *accountService) SeedChartOfAccounts(ctx context.Context, accounts []dto.CreateAccountRequest, userID string) (int, int, error) {
	created, skipped := 0, 0
	for _, req := range accounts {
		_, err := s.CreateAccount(ctx, req, userID)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrDuplicateAccount):
			skipped++
		default:
			return created, skipped, fmt.Errorf("failed to seed account %s: %w", req.AccountNumber, err)
		}
	}
	s.LogInfo(ctx, "Chart of accounts seeded", slog.Int("created", created), slog.Int("skipped", skipped))
	return created, skipped, nil
}

func (s *accountService) invalidateReports(ctx context.Context) {
	if s.reportCache == nil {
		return
	}
	if err := s.reportCache.Invalidate(ctx); err != nil {
		s.LogWarn(ctx, "Failed to invalidate report cache", slog.String("error", err.Error()))
	}
}
