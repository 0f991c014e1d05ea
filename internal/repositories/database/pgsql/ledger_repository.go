package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const entryColumns = `journal_entry_id, entry_number, entry_date, description, reference, reference_type, memo,
	total_amount, status, created_by, created_at`

const lineColumns = `line_id, line_seq, journal_entry_id, account_id, account_number, debit_amount, credit_amount,
	description, entry_date, reference, reference_type`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for journal entries and ledger lines.
func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// PostEntry inserts the entry and its lines and moves every affected balance
// inside one transaction. Account rows are locked in number order.
func (r *PgxLedgerRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.LedgerLine) (*domain.JournalEntry, []domain.LedgerLine, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	// 1. Lock accounts
	numbers := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.AccountNumber] {
			seen[l.AccountNumber] = true
			numbers = append(numbers, l.AccountNumber)
		}
	}
	locked, err := r.lockAccounts(ctx, tx, numbers)
	if err != nil {
		return nil, nil, err
	}
	for _, number := range numbers {
		acc, ok := locked[number]
		if !ok {
			return nil, nil, &apperrors.UnknownAccountError{AccountNumber: number}
		}
		if !acc.IsActive {
			return nil, nil, &apperrors.InactiveAccountError{AccountNumber: number}
		}
	}

	// 2. Insert the entry
	if entry.EntryNumber == "" {
		var seq int64
		if err := tx.QueryRow(ctx, `SELECT nextval('journal_entry_seq');`).Scan(&seq); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to allocate entry number", err)
		}
		entry.EntryNumber = domain.FormatEntryNumber(entry.CreatedAt.Year(), seq)
	}
	m := mapping.ToModelJournalEntry(entry)
	_, err = tx.Exec(ctx, `
		INSERT INTO journal_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.JournalEntryID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.ReferenceType,
		m.Memo,
		m.TotalAmount,
		m.Status,
		m.CreatedBy,
		m.CreatedAt,
	)
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateEntry, m.EntryNumber)
		}
		return nil, nil, apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryNumber, err)
	}

	// 3. Append lines and apply balance deltas in one round trip
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO ledger_lines (line_id, journal_entry_id, account_id, account_number, debit_amount, credit_amount,
			description, entry_date, reference, reference_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING line_seq;
	`
	for _, l := range lines {
		ml := mapping.ToModelLedgerLine(l)
		batch.Queue(lineQuery,
			ml.LineID,
			m.JournalEntryID,
			locked[ml.AccountNumber].AccountID,
			ml.AccountNumber,
			ml.DebitAmount,
			ml.CreditAmount,
			ml.Description,
			ml.EntryDate,
			ml.Reference,
			ml.ReferenceType,
		)
	}

	deltas := accounting.NetDeltas(lines, locked)
	sorted := append([]string(nil), numbers...)
	sort.Strings(sorted)
	for _, number := range sorted {
		batch.Queue(`
			UPDATE accounts SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3
			WHERE account_number = $4;
		`, deltas[number], entry.CreatedAt, entry.CreatedBy, number)
	}

	br := tx.SendBatch(ctx, batch)
	posted := make([]domain.LedgerLine, len(lines))
	for i, l := range lines {
		if err := br.QueryRow().Scan(&l.Sequence); err != nil {
			br.Close()
			return nil, nil, apperrors.NewAppError(500, "failed to insert ledger line", err)
		}
		l.JournalEntryID = m.JournalEntryID
		l.AccountID = locked[l.AccountNumber].AccountID
		posted[i] = l
	}
	for range sorted {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return nil, nil, apperrors.NewAppError(500, "failed to update account balance", err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to close posting batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &entry, posted, nil
}

// lockAccounts selects the accounts FOR UPDATE in ascending number order.
func (r *PgxLedgerRepository) lockAccounts(ctx context.Context, tx pgx.Tx, numbers []string) (map[string]domain.Account, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE account_number = ANY($1)
		ORDER BY account_number
		FOR UPDATE;
	`, numbers)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan locked accounts", err)
	}
	locked := make(map[string]domain.Account, len(accounts))
	for _, m := range accounts {
		locked[m.AccountNumber] = mapping.ToDomainAccount(m)
	}
	return locked, nil
}

// FindJournalEntry retrieves a journal entry by its entry number.
func (r *PgxLedgerRepository) FindJournalEntry(ctx context.Context, entryNumber string) (*domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE entry_number = $1;`, entryNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entry %s: %w", entryNumber, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan journal entry %s: %w", entryNumber, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// LinesForJournalEntry returns the lines of one entry in post order.
func (r *PgxLedgerRepository) LinesForJournalEntry(ctx context.Context, journalEntryID string) ([]domain.LedgerLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+lineColumns+` FROM ledger_lines WHERE journal_entry_id = $1 ORDER BY line_seq;
	`, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of %s: %w", journalEntryID, err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger lines: %w", err)
	}
	return mapping.ToDomainLedgerLines(lines), nil
}

// ListJournalEntries returns entries newest first. The page token is keyed on
// (entry_date, created_at, entry_number).
func (r *PgxLedgerRepository) ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	limit = pagination.ClampLimit(limit)

	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	args := []any{}
	if nextToken != nil && strings.TrimSpace(*nextToken) != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		query += ` WHERE (entry_date, created_at, entry_number) < ($1, $2, $3)`
		args = append(args, cursor.EntryDate, cursor.CreatedAt, cursor.EntryNumber)
	}
	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC, entry_number DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan journal entries: %w", err)
	}

	entries := make([]domain.JournalEntry, 0, len(ms))
	for _, m := range ms {
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if len(entries) <= limit {
		return entries, nil, nil
	}
	entries = entries[:limit]
	last := entries[len(entries)-1]
	token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryNumber: last.EntryNumber})
	return entries, &token, nil
}

// LinesForAccount reads the account row and its lines from one snapshot.
func (r *PgxLedgerRepository) LinesForAccount(ctx context.Context, accountNumber string, dateRange domain.DateRange) (*domain.Account, []domain.LedgerLine, error) {
	var account domain.Account
	var lines []domain.LedgerLine
	err := r.ReadSnapshot(ctx, func(tx pgx.Tx) error {
		m, err := scanAccount(tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_number = $1;`, accountNumber))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to find account %s: %w", accountNumber, err)
		}
		account = mapping.ToDomainAccount(m)

		rows, err := tx.Query(ctx, `
			SELECT `+lineColumns+`
			FROM ledger_lines
			WHERE account_number = $1
				AND ($2::date IS NULL OR entry_date >= $2)
				AND ($3::date IS NULL OR entry_date <= $3)
			ORDER BY entry_date, line_seq;
		`, accountNumber, dateRange.From, dateRange.To)
		if err != nil {
			return fmt.Errorf("failed to query lines of account %s: %w", accountNumber, err)
		}
		ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerLine])
		if err != nil {
			return fmt.Errorf("failed to scan ledger lines: %w", err)
		}
		lines = mapping.ToDomainLedgerLines(ms)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &account, lines, nil
}

// AccountActivity returns every account with its line totals inside the range.
func (r *PgxLedgerRepository) AccountActivity(ctx context.Context, dateRange domain.DateRange) ([]domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.account_number, a.name, a.account_type, a.sub_type, a.normal_balance, a.description,
			a.balance, a.is_active, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
			COALESCE(SUM(l.debit_amount), 0) AS total_debit,
			COALESCE(SUM(l.credit_amount), 0) AS total_credit
		FROM accounts a
		LEFT JOIN ledger_lines l ON l.account_id = a.account_id
			AND ($1::date IS NULL OR l.entry_date >= $1)
			AND ($2::date IS NULL OR l.entry_date <= $2)
		GROUP BY a.account_id
		ORDER BY a.account_number;
	`
	var activity []domain.AccountActivity
	err := r.ReadSnapshot(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, dateRange.From, dateRange.To)
		if err != nil {
			return fmt.Errorf("failed to query account activity: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var m models.Account
			var debit, credit decimal.Decimal
			if err := rows.Scan(
				&m.AccountID,
				&m.AccountNumber,
				&m.Name,
				&m.AccountType,
				&m.SubType,
				&m.NormalBalance,
				&m.Description,
				&m.Balance,
				&m.IsActive,
				&m.CreatedAt,
				&m.CreatedBy,
				&m.LastUpdatedAt,
				&m.LastUpdatedBy,
				&debit,
				&credit,
			); err != nil {
				return fmt.Errorf("failed to scan account activity: %w", err)
			}
			activity = append(activity, domain.AccountActivity{
				Account:     mapping.ToDomainAccount(m),
				TotalDebit:  debit,
				TotalCredit: credit,
			})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return []domain.AccountActivity{}, nil
	}
	return activity, nil
}
