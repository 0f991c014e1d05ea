// Package memory is an in-process implementation of every repository port.
// It backs the service tests and the LEDGER_STORE=memory mode of the server.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// Store holds the whole ledger in memory.
//
// Posts hold mu for reading and serialize per account through accountLocks,
// taken in ascending number order, so posts touching disjoint accounts run in
// parallel. Readers and chart changes hold mu exclusively, which gives them a
// consistent snapshot of balances and lines.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]*domain.Account
	accountLocks map[string]*sync.Mutex

	// journalMu guards the entry and line tables while posts run concurrently.
	journalMu    sync.Mutex
	entries      map[string]*domain.JournalEntry
	entriesByID  map[string]*domain.JournalEntry
	lines        []domain.LedgerLine
	linesByEntry map[string][]int
	lineSeq      int64
	entrySeq     int64

	expenses  map[string]domain.Expense
	suppliers map[string]domain.Supplier
	budgets   map[budgetKey]domain.BudgetAllocation

	now func() time.Time
}

type budgetKey struct {
	year    int
	month   int
	account string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for generated entry numbers.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		accounts:     make(map[string]*domain.Account),
		accountLocks: make(map[string]*sync.Mutex),
		entries:      make(map[string]*domain.JournalEntry),
		entriesByID:  make(map[string]*domain.JournalEntry),
		linesByEntry: make(map[string][]int),
		expenses:     make(map[string]domain.Expense),
		suppliers:    make(map[string]domain.Supplier),
		budgets:      make(map[budgetKey]domain.BudgetAllocation),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  s,
		LedgerRepo:   s,
		ExpenseRepo:  s,
		SupplierRepo: s,
		BudgetRepo:   s,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade  = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade   = (*Store)(nil)
	_ portsrepo.ExpenseRepositoryFacade  = (*Store)(nil)
	_ portsrepo.SupplierRepositoryFacade = (*Store)(nil)
	_ portsrepo.BudgetRepositoryFacade   = (*Store)(nil)
)

// Snapshot is a deep copy of the ledger state.
type Snapshot struct {
	Accounts []domain.Account
	Entries  []domain.JournalEntry
	Lines    []domain.LedgerLine
}

// Snapshot copies accounts (by number), entries (by entry number) and lines
// (in post order) under the exclusive lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Accounts: make([]domain.Account, 0, len(s.accounts)),
		Entries:  make([]domain.JournalEntry, 0, len(s.entries)),
		Lines:    append([]domain.LedgerLine(nil), s.lines...),
	}
	for _, acc := range s.accounts {
		snap.Accounts = append(snap.Accounts, *acc)
	}
	for _, e := range s.entries {
		snap.Entries = append(snap.Entries, *e)
	}
	sort.Slice(snap.Accounts, func(i, j int) bool { return snap.Accounts[i].Number < snap.Accounts[j].Number })
	sort.Slice(snap.Entries, func(i, j int) bool { return snap.Entries[i].EntryNumber < snap.Entries[j].EntryNumber })
	return snap
}
