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
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/uuid"
)

// expenseService records expenses and posts them to the ledger on approval.
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	supplierRepo portsrepo.SupplierRepositoryFacade
	poster       portssvc.AutoPosterSvc
	journals     portssvc.JournalReaderSvc
}

// NewExpenseService creates the expense workflow service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, supplierRepo portsrepo.SupplierRepositoryFacade, journals portssvc.JournalSvcFacade) portssvc.ExpenseSvc {
	return &expenseService{
		expenseRepo:  expenseRepo,
		supplierRepo: supplierRepo,
		poster:       journals,
		journals:     journals,
	}
}

var _ portssvc.ExpenseSvc = (*expenseService)(nil)

func (s *expenseService) RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, userID string) (*domain.Expense, error) {
	category := domain.ExpenseCategory(req.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, req.Category)
	}
	amount := accounting.RoundMoney(req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be greater than zero", apperrors.ErrValidation)
	}
	date, err := dto.ParseDate(req.ExpenseDate)
	if err != nil {
		return nil, err
	}
	supplierID := strings.TrimSpace(req.SupplierID)
	if supplierID != "" {
		if _, err := s.supplierRepo.FindSupplierByID(ctx, supplierID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: supplier %s does not exist", apperrors.ErrValidation, supplierID)
			}
			return nil, fmt.Errorf("failed to check supplier: %w", err)
		}
	}

	now := s.Now()
	userID = orSystem(userID)
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		ExpenseDate: date,
		SupplierID:  supplierID,
		Category:    category,
		Amount:      amount,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
		Status:      domain.ExpensePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense")
		return nil, err
	}
	s.LogInfo(ctx, "Expense recorded", slog.String("expense_id", expense.ExpenseID), slog.String("category", string(category)))
	return &expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense", slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	if filter.Category != nil && !filter.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, *filter.Category)
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

func (s *expenseService) pending(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: expense %s is already %s", apperrors.ErrConflict, expenseID, expense.Status)
	}
	return expense, nil
}

// ApproveExpense posts the expense to the ledger and marks it approved. When
// an earlier attempt posted the entry but failed to update the expense, the
// existing entry is reused instead of failing on the duplicate number.
func (s *expenseService) ApproveExpense(ctx context.Context, expenseID string, approverID string) (*domain.Expense, error) {
	expense, err := s.pending(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	approverID = orSystem(approverID)

	entryNumber := ExpenseEntryNumber(expense.ExpenseID)
	res, err := s.poster.AutoPostExpense(ctx, *expense, approverID)
	switch {
	case err == nil:
		entryNumber = res.Entry.EntryNumber
	case errors.Is(err, apperrors.ErrDuplicateEntry):
		if _, _, lookupErr := s.journals.GetJournalEntry(ctx, entryNumber); lookupErr != nil {
			return nil, fmt.Errorf("failed to load existing entry %s: %w", entryNumber, lookupErr)
		}
		s.LogWarn(ctx, "Reusing journal entry posted by an earlier approval attempt", slog.String("entry_number", entryNumber))
	default:
		return nil, err
	}

	now := s.Now()
	expense.Status = domain.ExpenseApproved
	expense.ApprovedBy = approverID
	expense.ApprovedAt = &now
	expense.JournalEntryNumber = entryNumber
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = approverID
	if err := s.expenseRepo.UpdateExpenseStatus(ctx, *expense, domain.ExpensePending); err != nil {
		s.LogError(ctx, err, "Failed to mark expense approved", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense approved", slog.String("expense_id", expenseID), slog.String("entry_number", entryNumber))
	return expense, nil
}

func (s *expenseService) RejectExpense(ctx context.Context, expenseID string, approverID string) (*domain.Expense, error) {
	expense, err := s.pending(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	approverID = orSystem(approverID)

	now := s.Now()
	expense.Status = domain.ExpenseRejected
	expense.ApprovedBy = approverID
	expense.ApprovedAt = &now
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = approverID
	if err := s.expenseRepo.UpdateExpenseStatus(ctx, *expense, domain.ExpensePending); err != nil {
		s.LogError(ctx, err, "Failed to mark expense rejected", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense rejected", slog.String("expense_id", expenseID))
	return expense, nil
}
