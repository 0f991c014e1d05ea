package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
)

var (
	ErrJournalMinLines    = fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	ErrJournalZeroTotal   = fmt.Errorf("%w: journal entry total must be greater than zero", apperrors.ErrValidation)
	ErrNegativeAmount     = fmt.Errorf("%w: line amounts must not be negative", apperrors.ErrValidation)
	ErrEmptyLine          = fmt.Errorf("%w: line must carry a debit or a credit amount", apperrors.ErrValidation)
	ErrDescriptionMissing = fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
	ErrEntryDateMissing   = fmt.Errorf("%w: journal entry date is required", apperrors.ErrValidation)
)

// journalService validates and posts journal entries and serves them back.
type journalService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	roles       domain.AccountRoles
	reportCache portsrepo.ReportCache
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithAccountRoles sets the accounts used by the auto-post helpers.
func WithAccountRoles(roles domain.AccountRoles) JournalServiceOption {
	return func(s *journalService) {
		s.roles = roles
	}
}

// WithJournalReportCache invalidates cached reports after every successful post.
func WithJournalReportCache(cache portsrepo.ReportCache) JournalServiceOption {
	return func(s *journalService) {
		s.reportCache = cache
	}
}

// NewJournalService creates a new journal service. Auto-posting uses the
// default chart's roles unless WithAccountRoles is given.
func NewJournalService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountReader, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		roles:       domain.DefaultAccountRoles(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// normalizeLines rounds every amount to the money scale and rejects
// structurally invalid lines.
func normalizeLines(lines []domain.LineInput) ([]domain.LineInput, error) {
	if len(lines) < 2 {
		return nil, ErrJournalMinLines
	}
	out := make([]domain.LineInput, len(lines))
	for i, l := range lines {
		l.AccountNumber = strings.TrimSpace(l.AccountNumber)
		l.Debit = accounting.RoundMoney(l.Debit)
		l.Credit = accounting.RoundMoney(l.Credit)
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d for account %s", ErrNegativeAmount, i+1, l.AccountNumber)
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			return nil, fmt.Errorf("%w: line %d for account %s", ErrEmptyLine, i+1, l.AccountNumber)
		}
		out[i] = l
	}
	return out, nil
}

// resolveAccounts looks up every referenced account and fails on the first
// line, in line order, whose account is missing or inactive.
func (s *journalService) resolveAccounts(ctx context.Context, lines []domain.LineInput) (map[string]domain.Account, error) {
	numbers := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.AccountNumber] {
			seen[l.AccountNumber] = true
			numbers = append(numbers, l.AccountNumber)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByNumbers(ctx, numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}
	for _, number := range numbers {
		acc, ok := accounts[number]
		if !ok {
			return nil, &apperrors.UnknownAccountError{AccountNumber: number}
		}
		if !acc.IsActive {
			return nil, &apperrors.InactiveAccountError{AccountNumber: number}
		}
	}
	return accounts, nil
}

// PostJournalEntry runs the posting state machine: validate, resolve, commit.
// Nothing is written unless every check passes, and the commit itself is
// atomic inside the ledger store.
func (s *journalService) PostJournalEntry(ctx context.Context, req domain.PostRequest) (*domain.PostResult, error) {
	lines, err := normalizeLines(req.Lines)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionMissing
	}
	if req.EntryDate.IsZero() {
		return nil, ErrEntryDateMissing
	}
	refType := req.ReferenceType
	if refType == "" {
		refType = domain.RefManual
	}
	if !refType.Valid() {
		return nil, fmt.Errorf("%w: unknown reference type %q", apperrors.ErrValidation, refType)
	}

	totalDebits, totalCredits := accounting.TotalLines(lines)
	if accounting.ExceedsTolerance(totalDebits, totalCredits) {
		s.LogDebug(ctx, "Rejected unbalanced journal entry",
			slog.String("total_debits", totalDebits.StringFixed(2)),
			slog.String("total_credits", totalCredits.StringFixed(2)))
		return nil, &apperrors.UnbalancedError{TotalDebits: totalDebits, TotalCredits: totalCredits}
	}
	if totalDebits.IsZero() {
		return nil, ErrJournalZeroTotal
	}

	accounts, err := s.resolveAccounts(ctx, lines)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	createdBy := orSystem(req.CreatedBy)
	entryDate := domain.StartOfDay(req.EntryDate)
	entry := domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		EntryNumber:    strings.TrimSpace(req.EntryNumber),
		EntryDate:      entryDate,
		Description:    req.Description,
		Reference:      req.Reference,
		ReferenceType:  refType,
		Memo:           req.Memo,
		TotalAmount:    totalDebits,
		Status:         domain.Posted,
		CreatedBy:      createdBy,
		CreatedAt:      now,
	}

	ledgerLines := make([]domain.LedgerLine, len(lines))
	for i, l := range lines {
		description := l.Description
		if description == "" {
			description = req.Description
		}
		ledgerLines[i] = domain.LedgerLine{
			LineID:         uuid.NewString(),
			JournalEntryID: entry.JournalEntryID,
			AccountID:      accounts[l.AccountNumber].AccountID,
			AccountNumber:  l.AccountNumber,
			DebitAmount:    l.Debit,
			CreditAmount:   l.Credit,
			Description:    description,
			EntryDate:      entryDate,
			Reference:      req.Reference,
			ReferenceType:  refType,
		}
	}

	posted, postedLines, err := s.ledgerRepo.PostEntry(ctx, entry, ledgerLines)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_number", entry.EntryNumber))
		}
		return nil, err
	}

	s.invalidateReports(ctx)
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_number", posted.EntryNumber),
		slog.String("reference_type", string(posted.ReferenceType)),
		slog.String("total", posted.TotalAmount.StringFixed(2)),
		slog.Int("lines", len(postedLines)))

	return &domain.PostResult{
		Entry:        *posted,
		Lines:        postedLines,
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
	}, nil
}

func (s *journalService) invalidateReports(ctx context.Context) {
	if s.reportCache == nil {
		return
	}
	// The post is already committed; a stale cache is only logged.
	if err := s.reportCache.Invalidate(ctx); err != nil {
		s.LogWarn(ctx, "Failed to invalidate report cache", slog.String("error", err.Error()))
	}
}

// GetJournalEntry retrieves an entry and its lines by entry number.
func (s *journalService) GetJournalEntry(ctx context.Context, entryNumber string) (*domain.JournalEntry, []domain.LedgerLine, error) {
	entry, err := s.ledgerRepo.FindJournalEntry(ctx, entryNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_number", entryNumber))
		}
		return nil, nil, err
	}
	lines, err := s.ledgerRepo.LinesForJournalEntry(ctx, entry.JournalEntryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal entry lines", slog.String("entry_number", entryNumber))
		return nil, nil, fmt.Errorf("failed to load lines of %s: %w", entryNumber, err)
	}
	return entry, lines, nil
}

// ListJournalEntries retrieves a page of entries, newest first.
func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}
	entries, next, err := s.ledgerRepo.ListJournalEntries(ctx, pagination.ClampLimit(params.Limit), token)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list journal entries")
		}
		return nil, err
	}
	return &dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: next,
	}, nil
}

// debitLine and creditLine build the legs of a two-line entry.
func debitLine(number string, amount decimal.Decimal, description string) domain.LineInput {
	return domain.LineInput{AccountNumber: number, Debit: amount, Credit: decimal.Zero, Description: description}
}

func creditLine(number string, amount decimal.Decimal, description string) domain.LineInput {
	return domain.LineInput{AccountNumber: number, Debit: decimal.Zero, Credit: amount, Description: description}
}
