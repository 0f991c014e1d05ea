package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, account_number, name, account_type, sub_type, normal_balance, description,
	balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// scanAccount reads one row selected with accountColumns.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
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
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.AccountNumber,
		m.Name,
		m.AccountType,
		m.SubType,
		m.NormalBalance,
		m.Description,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateAccount, m.AccountNumber)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountNumber, err)
	}
	return nil
}

// UpdateAccount updates descriptive fields and the active flag. The balance
// guard sits in the WHERE clause so it holds against concurrent posts.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, sub_type = $3, description = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_number = $1 AND ($5 OR NOT is_active OR balance = 0);
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountNumber,
		m.Name,
		m.SubType,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountNumber, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindAccountByNumber(ctx, m.AccountNumber); err != nil {
			return err
		}
		return fmt.Errorf("%w: account %s has a non-zero balance", apperrors.ErrValidation, m.AccountNumber)
	}
	return nil
}

// FindAccountByNumber retrieves an account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", number, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByNumbers retrieves multiple accounts keyed by number.
func (r *PgxAccountRepository) FindAccountsByNumbers(ctx context.Context, numbers []string) (map[string]domain.Account, error) {
	if len(numbers) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by number: %w", err)
	}
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}

	found := make(map[string]domain.Account, len(accounts))
	for _, m := range accounts {
		found[m.AccountNumber] = mapping.ToDomainAccount(m)
	}
	return found, nil
}

// ListAccounts retrieves accounts matching the filter ordered by number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	var accountType *string
	if filter.Type != nil {
		t := string(*filter.Type)
		accountType = &t
	}
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE ($1::text IS NULL OR account_type = $1)
			AND ($2::boolean IS NULL OR is_active = $2)
		ORDER BY account_number;
	`
	rows, err := r.Pool.Query(ctx, query, accountType, filter.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccounts(accounts), nil
}
