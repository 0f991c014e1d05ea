package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// lockAccounts takes the per-account mutexes of the given numbers in ascending
// order and returns the function releasing them. mu must be held.
func (s *Store) lockAccounts(numbers []string) (func(), error) {
	sorted := append([]string(nil), numbers...)
	sort.Strings(sorted)

	locks := make([]*sync.Mutex, 0, len(sorted))
	for _, number := range sorted {
		lock, ok := s.accountLocks[number]
		if !ok {
			return nil, &apperrors.UnknownAccountError{AccountNumber: number}
		}
		locks = append(locks, lock)
	}
	for _, lock := range locks {
		lock.Lock()
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}, nil
}

func (s *Store) PostEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.LedgerLine) (*domain.JournalEntry, []domain.LedgerLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	numbers := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.AccountNumber] {
			seen[l.AccountNumber] = true
			numbers = append(numbers, l.AccountNumber)
		}
	}

	unlock, err := s.lockAccounts(numbers)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	// Checked again under the account locks: the chart may have changed since
	// the poster resolved it.
	for _, l := range lines {
		if !s.accounts[l.AccountNumber].IsActive {
			return nil, nil, &apperrors.InactiveAccountError{AccountNumber: l.AccountNumber}
		}
	}
	deltas := accounting.NetDeltas(lines, s.accountValues(numbers))

	posted, postedLines, err := s.appendEntry(entry, lines)
	if err != nil {
		return nil, nil, err
	}

	for number, delta := range deltas {
		acc := s.accounts[number]
		acc.Balance = acc.Balance.Add(delta)
	}
	return posted, postedLines, nil
}

func (s *Store) accountValues(numbers []string) map[string]domain.Account {
	values := make(map[string]domain.Account, len(numbers))
	for _, number := range numbers {
		values[number] = *s.accounts[number]
	}
	return values
}

// appendEntry inserts the entry and its lines. It is the only step of a post
// that can fail after the accounts are locked, and it fails before writing.
func (s *Store) appendEntry(entry domain.JournalEntry, lines []domain.LedgerLine) (*domain.JournalEntry, []domain.LedgerLine, error) {
	s.journalMu.Lock()
	defer s.journalMu.Unlock()

	if entry.EntryNumber == "" {
		year := entry.CreatedAt.Year()
		if entry.CreatedAt.IsZero() {
			year = s.now().Year()
		}
		for {
			s.entrySeq++
			candidate := domain.FormatEntryNumber(year, s.entrySeq)
			if _, taken := s.entries[candidate]; !taken {
				entry.EntryNumber = candidate
				break
			}
		}
	} else if _, taken := s.entries[entry.EntryNumber]; taken {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateEntry, entry.EntryNumber)
	}

	stored := entry
	s.entries[stored.EntryNumber] = &stored
	s.entriesByID[stored.JournalEntryID] = &stored

	postedLines := make([]domain.LedgerLine, len(lines))
	for i, l := range lines {
		s.lineSeq++
		l.Sequence = s.lineSeq
		l.JournalEntryID = stored.JournalEntryID
		s.linesByEntry[stored.JournalEntryID] = append(s.linesByEntry[stored.JournalEntryID], len(s.lines))
		s.lines = append(s.lines, l)
		postedLines[i] = l
	}

	result := stored
	return &result, postedLines, nil
}

func (s *Store) FindJournalEntry(ctx context.Context, entryNumber string) (*domain.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[entryNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	found := *e
	return &found, nil
}

func (s *Store) LinesForJournalEntry(ctx context.Context, journalEntryID string) ([]domain.LedgerLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.linesByEntry[journalEntryID]
	lines := make([]domain.LedgerLine, len(idx))
	for i, at := range idx {
		lines[i] = s.lines[at]
	}
	return lines, nil
}

func (s *Store) ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && strings.TrimSpace(*nextToken) != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		cursor = &c
	}
	limit = pagination.ClampLimit(limit)

	s.mu.Lock()
	all := make([]domain.JournalEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if cursor == nil || cursor.Before(e.EntryDate, e.CreatedAt, e.EntryNumber) {
			all = append(all, *e)
		}
	}
	s.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		return cursorOf(all[i]).Before(all[j].EntryDate, all[j].CreatedAt, all[j].EntryNumber)
	})

	if len(all) <= limit {
		return all, nil, nil
	}
	page := all[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(cursorOf(last))
	return page, &token, nil
}

func cursorOf(e domain.JournalEntry) pagination.Cursor {
	return pagination.Cursor{EntryDate: e.EntryDate, CreatedAt: e.CreatedAt, EntryNumber: e.EntryNumber}
}

// linesInRange returns the account's lines inside the range ordered by entry
// date then sequence. mu must be held exclusively.
func (s *Store) linesInRange(accountNumber string, dateRange domain.DateRange) []domain.LedgerLine {
	var lines []domain.LedgerLine
	for _, l := range s.lines {
		if l.AccountNumber == accountNumber && dateRange.Contains(l.EntryDate) {
			lines = append(lines, l)
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].EntryDate.Equal(lines[j].EntryDate) {
			return lines[i].EntryDate.Before(lines[j].EntryDate)
		}
		return lines[i].Sequence < lines[j].Sequence
	})
	return lines
}

func (s *Store) LinesForAccount(ctx context.Context, accountNumber string, dateRange domain.DateRange) (*domain.Account, []domain.LedgerLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountNumber]
	if !ok {
		return nil, nil, apperrors.ErrNotFound
	}
	found := *acc
	lines := s.linesInRange(accountNumber, dateRange)
	if lines == nil {
		lines = []domain.LedgerLine{}
	}
	return &found, lines, nil
}

func (s *Store) AccountActivity(ctx context.Context, dateRange domain.DateRange) ([]domain.AccountActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type totals struct{ debit, credit decimal.Decimal }
	sums := make(map[string]*totals, len(s.accounts))
	for _, l := range s.lines {
		if !dateRange.Contains(l.EntryDate) {
			continue
		}
		t, ok := sums[l.AccountNumber]
		if !ok {
			t = &totals{debit: decimal.Zero, credit: decimal.Zero}
			sums[l.AccountNumber] = t
		}
		t.debit = t.debit.Add(l.DebitAmount)
		t.credit = t.credit.Add(l.CreditAmount)
	}

	accounts := s.sortedAccounts(domain.AccountFilter{})
	activity := make([]domain.AccountActivity, len(accounts))
	for i, acc := range accounts {
		activity[i] = domain.AccountActivity{Account: acc, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
		if t, ok := sums[acc.Number]; ok {
			activity[i].TotalDebit = t.debit
			activity[i].TotalCredit = t.credit
		}
	}
	return activity, nil
}
