//go:build integration

package pgsql_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

// LedgerRepositoryTestSuite runs against a disposable database named by
// LEDGER_TEST_PGSQL_URL. The schema is dropped and recreated before each test.
//
//	LEDGER_TEST_PGSQL_URL=postgres://... go test -tags integration ./internal/repositories/database/pgsql/
type LedgerRepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	url   string
	pool  *pgxpool.Pool
	repos portsrepo.RepositoryProvider
	svc   *portssvc.ServiceContainer
	day   time.Time
}

func (s *LedgerRepositoryTestSuite) SetupSuite() {
	s.url = os.Getenv("LEDGER_TEST_PGSQL_URL")
	if s.url == "" {
		s.T().Skip("LEDGER_TEST_PGSQL_URL not set")
	}
	s.ctx = context.Background()
	s.day = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
}

func (s *LedgerRepositoryTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	require.NoError(s.T(), database.Migrate(s.url, database.Down, logger))
	require.NoError(s.T(), database.Migrate(s.url, database.Up, logger))

	pool, err := database.NewPgxPool(s.ctx, s.url, true, logger)
	require.NoError(s.T(), err)
	s.pool = pool
	s.repos = pgsql.NewRepositoryProvider(pool)
	s.svc = services.NewServiceContainer(s.repos, services.ContainerOptions{Roles: domain.DefaultAccountRoles()})

	for _, acc := range []dto.CreateAccountRequest{
		{AccountNumber: "1010", AccountName: "Cash", AccountType: string(domain.Asset), NormalBalance: string(domain.Debit)},
		{AccountNumber: "3000", AccountName: "Owner Equity", AccountType: string(domain.Equity), NormalBalance: string(domain.Credit)},
		{AccountNumber: "4000", AccountName: "Sales Revenue", AccountType: string(domain.Revenue), NormalBalance: string(domain.Credit)},
	} {
		_, err := s.svc.Account.CreateAccount(s.ctx, acc, "it")
		require.NoError(s.T(), err)
	}
}

func (s *LedgerRepositoryTestSuite) TearDownTest() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *LedgerRepositoryTestSuite) post(entryNumber, debit, credit string, amount int64) (*domain.PostResult, error) {
	return s.svc.Journal.PostJournalEntry(s.ctx, domain.PostRequest{
		EntryNumber: entryNumber,
		EntryDate:   s.day,
		Description: "integration",
		Lines: []domain.LineInput{
			{AccountNumber: debit, Debit: decimal.NewFromInt(amount), Credit: decimal.Zero},
			{AccountNumber: credit, Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)},
		},
		CreatedBy: "it",
	})
}

func (s *LedgerRepositoryTestSuite) balance(number string) decimal.Decimal {
	acc, err := s.svc.Account.GetAccount(s.ctx, number)
	require.NoError(s.T(), err)
	return acc.Balance
}

func (s *LedgerRepositoryTestSuite) entryCount() int {
	var n int
	require.NoError(s.T(), s.pool.QueryRow(s.ctx, `SELECT count(*) FROM journal_entries;`).Scan(&n))
	return n
}

func (s *LedgerRepositoryTestSuite) TestPostAssignsNumberAndAppliesDeltas() {
	res, err := s.post("", "1010", "3000", 250)
	require.NoError(s.T(), err)

	assert.Regexp(s.T(), `^JE\d{10}$`, res.Entry.EntryNumber)
	require.Len(s.T(), res.Lines, 2)
	assert.Less(s.T(), res.Lines[0].Sequence, res.Lines[1].Sequence)
	assert.True(s.T(), s.balance("1010").Equal(decimal.NewFromInt(250)))
	assert.True(s.T(), s.balance("3000").Equal(decimal.NewFromInt(250)))
}

// Opposite-direction posts lock the same two rows; ordered locking keeps them deadlock free.
func (s *LedgerRepositoryTestSuite) TestConcurrentOppositePostsSerialize() {
	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			_, err := s.post("", "1010", "4000", 10)
			return err
		})
		g.Go(func() error {
			_, err := s.post("", "4000", "1010", 3)
			return err
		})
	}
	require.NoError(s.T(), g.Wait())

	assert.True(s.T(), s.balance("1010").Equal(decimal.NewFromInt(140)))
	assert.True(s.T(), s.balance("4000").Equal(decimal.NewFromInt(140)))
	assert.Equal(s.T(), 40, s.entryCount())

	report, err := s.svc.Integrity.VerifyLedger(s.ctx)
	require.NoError(s.T(), err)
	assert.True(s.T(), report.OK, "%+v", report.Mismatches)
}

func (s *LedgerRepositoryTestSuite) TestDuplicateEntryNumberRollsBack() {
	_, err := s.post("JE-FIXED-1", "1010", "3000", 100)
	require.NoError(s.T(), err)

	_, err = s.post("JE-FIXED-1", "1010", "3000", 40)

	assert.ErrorIs(s.T(), err, apperrors.ErrDuplicateEntry)
	assert.True(s.T(), s.balance("1010").Equal(decimal.NewFromInt(100)))
	assert.Equal(s.T(), 1, s.entryCount())
}

func (s *LedgerRepositoryTestSuite) TestUnknownAccountInsideStoreWritesNothing() {
	entry := domain.JournalEntry{
		JournalEntryID: "00000000-0000-0000-0000-000000000001",
		EntryDate:      s.day,
		Description:    "direct",
		ReferenceType:  domain.RefManual,
		TotalAmount:    decimal.NewFromInt(5),
		Status:         domain.Posted,
		CreatedBy:      "it",
		CreatedAt:      time.Now().UTC(),
	}
	lines := []domain.LedgerLine{
		{LineID: "00000000-0000-0000-0000-000000000002", AccountNumber: "1010", DebitAmount: decimal.NewFromInt(5), CreditAmount: decimal.Zero, EntryDate: s.day, ReferenceType: domain.RefManual},
		{LineID: "00000000-0000-0000-0000-000000000003", AccountNumber: "9999", DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(5), EntryDate: s.day, ReferenceType: domain.RefManual},
	}

	_, _, err := s.repos.LedgerRepo.PostEntry(s.ctx, entry, lines)

	assert.ErrorIs(s.T(), err, apperrors.ErrUnknownAccount)
	assert.True(s.T(), s.balance("1010").IsZero())
	assert.Equal(s.T(), 0, s.entryCount())
}

func (s *LedgerRepositoryTestSuite) TestReadsComeFromOneSnapshot() {
	_, err := s.post("", "1010", "4000", 30)
	require.NoError(s.T(), err)
	_, err = s.post("", "4000", "1010", 12)
	require.NoError(s.T(), err)

	gl, err := s.svc.Ledger.GeneralLedger(s.ctx, "1010", domain.DateRange{})
	require.NoError(s.T(), err)
	require.Len(s.T(), gl.Entries, 2)
	assert.True(s.T(), gl.Entries[1].RunningBalance.Equal(gl.Account.Balance))

	activity, err := s.repos.LedgerRepo.AccountActivity(s.ctx, domain.DateRange{})
	require.NoError(s.T(), err)
	require.Len(s.T(), activity, 3)
	assert.True(s.T(), activity[0].TotalDebit.Equal(decimal.NewFromInt(30)))
	assert.True(s.T(), activity[0].TotalCredit.Equal(decimal.NewFromInt(12)))
}

func TestLedgerRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerRepositoryTestSuite))
}
