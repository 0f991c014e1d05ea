package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "draft"
	Posted   JournalStatus = "posted"
	Reversed JournalStatus = "reversed"
)

// ReferenceType categorizes the origin of a journal entry.
type ReferenceType string

const (
	RefSale       ReferenceType = "sale"
	RefOrder      ReferenceType = "order"
	RefExpense    ReferenceType = "expense"
	RefManual     ReferenceType = "manual"
	RefAsset      ReferenceType = "asset"
	RefLoan       ReferenceType = "loan"
	RefEquity     ReferenceType = "equity"
	RefAdjustment ReferenceType = "adjustment"
)

// ReferenceTypes lists the accepted reference types.
var ReferenceTypes = []ReferenceType{RefSale, RefOrder, RefExpense, RefManual, RefAsset, RefLoan, RefEquity, RefAdjustment}

// Valid reports whether r is one of the accepted reference types.
func (r ReferenceType) Valid() bool {
	for _, known := range ReferenceTypes {
		if r == known {
			return true
		}
	}
	return false
}

// JournalEntry is one balanced accounting transaction.
type JournalEntry struct {
	JournalEntryID string          `json:"journalEntryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference"`
	ReferenceType  ReferenceType   `json:"referenceType"`
	Memo           string          `json:"memo"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Status         JournalStatus   `json:"status"`
	CreatedBy      string          `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// LedgerLine is one debit or credit leg of a JournalEntry. Lines are append-only.
type LedgerLine struct {
	LineID         string          `json:"lineID"`
	JournalEntryID string          `json:"journalEntryID"`
	AccountID      string          `json:"accountID"`
	AccountNumber  string          `json:"accountNumber"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	Description    string          `json:"description"`
	EntryDate      time.Time       `json:"entryDate"`
	Reference      string          `json:"reference"`
	ReferenceType  ReferenceType   `json:"referenceType"`
	// Sequence is the store-wide insertion order, used to break date ties.
	Sequence int64 `json:"sequence"`
}

// LineInput is a proposed line of a journal entry.
type LineInput struct {
	AccountNumber string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Description   string
}

// PostRequest carries everything the poster needs to validate and commit an entry.
type PostRequest struct {
	// EntryNumber is optional; the store assigns the next sequential number when empty.
	EntryNumber   string
	EntryDate     time.Time
	Description   string
	Reference     string
	ReferenceType ReferenceType
	Memo          string
	Lines         []LineInput
	CreatedBy     string
}

// PostResult is returned by a successful post.
type PostResult struct {
	Entry        JournalEntry
	Lines        []LedgerLine
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

// PaymentMethod determines which asset account a sale debits.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// SalePosting is a completed point-of-sale transaction to be recorded.
type SalePosting struct {
	SaleID        string
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	Note          string
	Date          time.Time
	PostedBy      string
}

// OrderPosting is an order sold on account to be recorded.
type OrderPosting struct {
	OrderID  string
	Amount   decimal.Decimal
	Note     string
	Date     time.Time
	PostedBy string
}

// DateRange is an inclusive calendar-date range. Nil bounds are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t's date falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	day := StartOfDay(t)
	if r.From != nil && day.Before(StartOfDay(*r.From)) {
		return false
	}
	if r.To != nil && day.After(StartOfDay(*r.To)) {
		return false
	}
	return true
}

// IsOpen reports whether neither bound is set.
func (r DateRange) IsOpen() bool {
	return r.From == nil && r.To == nil
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AccountActivity is an account together with the totals of its lines in some range.
type AccountActivity struct {
	Account     Account
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// FormatEntryNumber formats a generated entry number, e.g. JE2024000042.
func FormatEntryNumber(year int, seq int64) string {
	return fmt.Sprintf("JE%d%06d", year, seq)
}
