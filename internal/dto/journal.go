package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by every request and response.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, value)
	}
	return t, nil
}

// ParseOptionalDate parses value when it is non-empty.
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// JournalLineRequest is one proposed debit/credit line.
type JournalLineRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	Debit         decimal.Decimal `json:"debit" binding:"gte=0"`
	Credit        decimal.Decimal `json:"credit" binding:"gte=0"`
	Description   string          `json:"description"`
}

// PostJournalEntryRequest defines the payload for posting a manual journal entry.
type PostJournalEntryRequest struct {
	EntryNumber   string               `json:"entryNumber" binding:"omitempty,max=50"`
	EntryDate     string               `json:"entryDate" binding:"required"`
	Description   string               `json:"description" binding:"required"`
	Reference     string               `json:"reference"`
	ReferenceType string               `json:"referenceType" binding:"omitempty,oneof=sale order expense manual asset loan equity adjustment"`
	Memo          string               `json:"memo"`
	Lines         []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToPostRequest converts the payload into a domain post request authored by userID.
func (r PostJournalEntryRequest) ToPostRequest(userID string) (domain.PostRequest, error) {
	date, err := ParseDate(r.EntryDate)
	if err != nil {
		return domain.PostRequest{}, err
	}
	refType := domain.ReferenceType(r.ReferenceType)
	if refType == "" {
		refType = domain.RefManual
	}
	lines := make([]domain.LineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.LineInput{
			AccountNumber: l.AccountNumber,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Description:   l.Description,
		}
	}
	return domain.PostRequest{
		EntryNumber:   r.EntryNumber,
		EntryDate:     date,
		Description:   r.Description,
		Reference:     r.Reference,
		ReferenceType: refType,
		Memo:          r.Memo,
		Lines:         lines,
		CreatedBy:     userID,
	}, nil
}

// AutoPostSaleRequest records a completed point-of-sale transaction.
type AutoPostSaleRequest struct {
	SaleID        string          `json:"saleId" binding:"required,max=40"`
	Amount        decimal.Decimal `json:"amount" binding:"gt=0"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	Note          string          `json:"note"`
	Date          string          `json:"date"`
}

// ToSalePosting converts the payload, defaulting the date to today.
func (r AutoPostSaleRequest) ToSalePosting(userID string, now time.Time) (domain.SalePosting, error) {
	date, err := dateOrToday(r.Date, now)
	if err != nil {
		return domain.SalePosting{}, err
	}
	return domain.SalePosting{
		SaleID:        r.SaleID,
		Amount:        r.Amount,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		Note:          r.Note,
		Date:          date,
		PostedBy:      userID,
	}, nil
}

// AutoPostOrderRequest records an order sold on account.
type AutoPostOrderRequest struct {
	OrderID string          `json:"orderId" binding:"required,max=40"`
	Amount  decimal.Decimal `json:"amount" binding:"gt=0"`
	Note    string          `json:"note"`
	Date    string          `json:"date"`
}

// ToOrderPosting converts the payload, defaulting the date to today.
func (r AutoPostOrderRequest) ToOrderPosting(userID string, now time.Time) (domain.OrderPosting, error) {
	date, err := dateOrToday(r.Date, now)
	if err != nil {
		return domain.OrderPosting{}, err
	}
	return domain.OrderPosting{
		OrderID:  r.OrderID,
		Amount:   r.Amount,
		Note:     r.Note,
		Date:     date,
		PostedBy: userID,
	}, nil
}

func dateOrToday(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return domain.StartOfDay(now), nil
	}
	return ParseDate(value)
}

// LedgerLineResponse defines the data returned for a ledger line.
type LedgerLineResponse struct {
	LineID        string          `json:"lineID"`
	AccountNumber string          `json:"accountNumber"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalEntryID string          `json:"journalEntryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      string          `json:"entryDate"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference,omitempty"`
	ReferenceType  string          `json:"referenceType"`
	Memo           string          `json:"memo,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Status         string          `json:"status"`
	CreatedBy      string          `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// GetJournalEntryResponse combines an entry and its lines.
type GetJournalEntryResponse struct {
	Entry JournalEntryResponse `json:"entry"`
	Lines []LedgerLineResponse `json:"lines"`
}

// PostJournalEntryResponse is returned after a successful post.
type PostJournalEntryResponse struct {
	Entry        JournalEntryResponse `json:"entry"`
	Lines        []LedgerLineResponse `json:"lines"`
	TotalDebits  decimal.Decimal      `json:"totalDebits"`
	TotalCredits decimal.Decimal      `json:"totalCredits"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListJournalEntriesResponse is one page of entries, newest first.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		JournalEntryID: e.JournalEntryID,
		EntryNumber:    e.EntryNumber,
		EntryDate:      e.EntryDate.Format(DateLayout),
		Description:    e.Description,
		Reference:      e.Reference,
		ReferenceType:  string(e.ReferenceType),
		Memo:           e.Memo,
		TotalAmount:    e.TotalAmount,
		Status:         string(e.Status),
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}

// ToLedgerLineResponses converts a slice of domain.LedgerLine.
func ToLedgerLineResponses(lines []domain.LedgerLine) []LedgerLineResponse {
	responses := make([]LedgerLineResponse, len(lines))
	for i, l := range lines {
		responses[i] = LedgerLineResponse{
			LineID:        l.LineID,
			AccountNumber: l.AccountNumber,
			Debit:         l.DebitAmount,
			Credit:        l.CreditAmount,
			Description:   l.Description,
		}
	}
	return responses
}

// ToPostJournalEntryResponse converts a post result.
func ToPostJournalEntryResponse(res *domain.PostResult) PostJournalEntryResponse {
	return PostJournalEntryResponse{
		Entry:        ToJournalEntryResponse(&res.Entry),
		Lines:        ToLedgerLineResponses(res.Lines),
		TotalDebits:  res.TotalDebits,
		TotalCredits: res.TotalCredits,
	}
}

// GeneralLedgerParams defines the optional date range of a general ledger query.
type GeneralLedgerParams struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// ToDateRange parses the optional bounds.
func (p GeneralLedgerParams) ToDateRange() (domain.DateRange, error) {
	from, err := ParseOptionalDate(p.StartDate)
	if err != nil {
		return domain.DateRange{}, err
	}
	to, err := ParseOptionalDate(p.EndDate)
	if err != nil {
		return domain.DateRange{}, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return domain.DateRange{}, fmt.Errorf("%w: endDate is before startDate", apperrors.ErrValidation)
	}
	return domain.DateRange{From: from, To: to}, nil
}

// GeneralLedgerEntryResponse is a line with its running balance.
type GeneralLedgerEntryResponse struct {
	EntryDate      string          `json:"entryDate"`
	JournalEntryID string          `json:"journalEntryID"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference,omitempty"`
	ReferenceType  string          `json:"referenceType"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerResponse is the general ledger of one account.
type GeneralLedgerResponse struct {
	Account       AccountResponse              `json:"account"`
	Entries       []GeneralLedgerEntryResponse `json:"entries"`
	EndingBalance decimal.Decimal              `json:"endingBalance"`
}

// ToGeneralLedgerResponse converts a domain.GeneralLedger.
func ToGeneralLedgerResponse(gl *domain.GeneralLedger) GeneralLedgerResponse {
	res := GeneralLedgerResponse{
		Account:       ToAccountResponse(&gl.Account),
		Entries:       make([]GeneralLedgerEntryResponse, len(gl.Entries)),
		EndingBalance: decimal.Zero,
	}
	for i, e := range gl.Entries {
		res.Entries[i] = GeneralLedgerEntryResponse{
			EntryDate:      e.Line.EntryDate.Format(DateLayout),
			JournalEntryID: e.Line.JournalEntryID,
			Description:    e.Line.Description,
			Reference:      e.Line.Reference,
			ReferenceType:  string(e.Line.ReferenceType),
			Debit:          e.Line.DebitAmount,
			Credit:         e.Line.CreditAmount,
			RunningBalance: e.RunningBalance,
		}
		res.EndingBalance = e.RunningBalance
	}
	return res
}
