package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Number]; exists {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateAccount, account.Number)
	}
	acc := account
	s.accounts[account.Number] = &acc
	s.accountLocks[account.Number] = &sync.Mutex{}
	return nil
}

// UpdateAccount replaces the descriptive fields and the active flag. The
// stored balance is kept, and deactivation is refused unless it is zero.
func (s *Store) UpdateAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[account.Number]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.IsActive && !account.IsActive && !stored.Balance.IsZero() {
		return fmt.Errorf("%w: account %s has a non-zero balance", apperrors.ErrValidation, account.Number)
	}
	stored.Name = account.Name
	stored.SubType = account.SubType
	stored.Description = account.Description
	stored.IsActive = account.IsActive
	stored.LastUpdatedAt = account.LastUpdatedAt
	stored.LastUpdatedBy = account.LastUpdatedBy
	return nil
}

func (s *Store) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[number]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	found := *acc
	return &found, nil
}

func (s *Store) FindAccountsByNumbers(ctx context.Context, numbers []string) (map[string]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := make(map[string]domain.Account, len(numbers))
	for _, number := range numbers {
		if acc, ok := s.accounts[number]; ok {
			found[number] = *acc
		}
	}
	return found, nil
}

func (s *Store) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedAccounts(filter), nil
}

// sortedAccounts must be called with mu held exclusively.
func (s *Store) sortedAccounts(filter domain.AccountFilter) []domain.Account {
	accounts := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		if filter.Matches(*acc) {
			accounts = append(accounts, *acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Number < accounts[j].Number })
	return accounts
}
