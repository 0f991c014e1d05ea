package services_test

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByNumbers(ctx context.Context, numbers []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.LedgerLine) (*domain.JournalEntry, []domain.LedgerLine, error) {
	args := m.Called(ctx, entry, lines)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Get(1).([]domain.LedgerLine), args.Error(2)
}

func (m *MockLedgerRepository) FindJournalEntry(ctx context.Context, entryNumber string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) LinesForJournalEntry(ctx context.Context, journalEntryID string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerRepository) ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) LinesForAccount(ctx context.Context, accountNumber string, dateRange domain.DateRange) (*domain.Account, []domain.LedgerLine, error) {
	args := m.Called(ctx, accountNumber, dateRange)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Get(1).([]domain.LedgerLine), args.Error(2)
}

func (m *MockLedgerRepository) AccountActivity(ctx context.Context, dateRange domain.DateRange) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

// --- Mock ReportCache ---
type MockReportCache struct {
	mock.Mock
}

var _ portsrepo.ReportCache = (*MockReportCache)(nil)

func (m *MockReportCache) Get(ctx context.Context, key string, dest any) (int64, bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockReportCache) Set(ctx context.Context, generation int64, key string, value any) error {
	args := m.Called(ctx, generation, key, value)
	return args.Error(0)
}

func (m *MockReportCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
