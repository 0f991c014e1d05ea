package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Entry number prefixes of auto-posted entries. The source id follows the
// prefix, so posting the same source twice fails with ErrDuplicateEntry.
const (
	SaleEntryPrefix    = "POS-"
	OrderEntryPrefix   = "ORD-"
	ExpenseEntryPrefix = "EXP-"
)

// ExpenseEntryNumber is the entry number an approved expense is posted under.
func ExpenseEntryNumber(expenseID string) string {
	return ExpenseEntryPrefix + expenseID
}

func checkSource(kind, id string, amount decimal.Decimal) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s id is required", apperrors.ErrValidation, kind)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s amount must be greater than zero", apperrors.ErrValidation, kind)
	}
	return nil
}

// AutoPostSale debits cash or receivables depending on the payment method and
// credits sales revenue.
func (s *journalService) AutoPostSale(ctx context.Context, sale domain.SalePosting) (*domain.PostResult, error) {
	if err := checkSource("sale", sale.SaleID, sale.Amount); err != nil {
		return nil, err
	}

	var debit domain.LineInput
	switch sale.PaymentMethod {
	case domain.PaymentCash:
		debit = debitLine(s.roles.Cash, sale.Amount, "Cash Payment")
	case domain.PaymentCard:
		debit = debitLine(s.roles.AccountsReceivable, sale.Amount, "Card Payment")
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, sale.PaymentMethod)
	}

	return s.PostJournalEntry(ctx, domain.PostRequest{
		EntryNumber:   SaleEntryPrefix + sale.SaleID,
		EntryDate:     s.dateOrToday(sale.Date),
		Description:   "Sale Transaction",
		Reference:     sale.SaleID,
		ReferenceType: domain.RefSale,
		Memo:          sale.Note,
		Lines:         []domain.LineInput{debit, creditLine(s.roles.Revenue, sale.Amount, "Sales Revenue")},
		CreatedBy:     sale.PostedBy,
	})
}

// AutoPostOrder records an order sold on account.
func (s *journalService) AutoPostOrder(ctx context.Context, order domain.OrderPosting) (*domain.PostResult, error) {
	if err := checkSource("order", order.OrderID, order.Amount); err != nil {
		return nil, err
	}

	return s.PostJournalEntry(ctx, domain.PostRequest{
		EntryNumber:   OrderEntryPrefix + order.OrderID,
		EntryDate:     s.dateOrToday(order.Date),
		Description:   "Order Sale on Account",
		Reference:     order.OrderID,
		ReferenceType: domain.RefOrder,
		Memo:          order.Note,
		Lines: []domain.LineInput{
			debitLine(s.roles.AccountsReceivable, order.Amount, "Accounts Receivable"),
			creditLine(s.roles.Revenue, order.Amount, "Sales Revenue"),
		},
		CreatedBy: order.PostedBy,
	})
}

// AutoPostExpense debits the category's expense account and credits cash,
// dated at the expense date.
func (s *journalService) AutoPostExpense(ctx context.Context, expense domain.Expense, postedBy string) (*domain.PostResult, error) {
	if err := checkSource("expense", expense.ExpenseID, expense.Amount); err != nil {
		return nil, err
	}
	if !expense.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, expense.Category)
	}

	return s.PostJournalEntry(ctx, domain.PostRequest{
		EntryNumber:   ExpenseEntryNumber(expense.ExpenseID),
		EntryDate:     s.dateOrToday(expense.ExpenseDate),
		Description:   "Expense: " + string(expense.Category),
		Reference:     expense.ExpenseID,
		ReferenceType: domain.RefExpense,
		Memo:          expense.Description,
		Lines: []domain.LineInput{
			debitLine(s.roles.ExpenseAccount(expense.Category), expense.Amount, expense.Description),
			creditLine(s.roles.Cash, expense.Amount, "Cash Payment"),
		},
		CreatedBy: postedBy,
	})
}

func (s *journalService) dateOrToday(t time.Time) time.Time {
	if t.IsZero() {
		return domain.StartOfDay(s.Now())
	}
	return t
}
