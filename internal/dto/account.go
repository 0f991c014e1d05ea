package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Type and normal balance are checked by the service so that an unknown
// value surfaces as InvalidAccountType rather than a binding failure.
type CreateAccountRequest struct {
	AccountNumber string `json:"accountNumber" yaml:"accountNumber" binding:"required,account_number"`
	AccountName   string `json:"accountName" yaml:"accountName" binding:"required,max=255"`
	AccountType   string `json:"accountType" yaml:"accountType" binding:"required"`
	NormalBalance string `json:"normalBalance" yaml:"normalBalance" binding:"required"`
	SubType       string `json:"subType" yaml:"subType"`
	Description   string `json:"description" yaml:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	AccountName *string `json:"accountName" binding:"omitempty,min=1,max=255"`
	SubType     *string `json:"subType"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// ToPatch converts the request to a domain patch.
func (r UpdateAccountRequest) ToPatch() domain.AccountPatch {
	return domain.AccountPatch{
		Name:        r.AccountName,
		SubType:     r.SubType,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Type   string `form:"type"`
	Active *bool  `form:"active"`
}

// ToFilter converts the query parameters to a domain filter.
func (p ListAccountsParams) ToFilter() domain.AccountFilter {
	filter := domain.AccountFilter{Active: p.Active}
	if p.Type != "" {
		t := domain.AccountType(p.Type)
		filter.Type = &t
	}
	return filter
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	SubType       string          `json:"subType,omitempty"`
	NormalBalance string          `json:"normalBalance"`
	Description   string          `json:"description,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountNumber: acc.Number,
		AccountName:   acc.Name,
		AccountType:   string(acc.AccountType),
		SubType:       acc.SubType,
		NormalBalance: string(acc.NormalBalance),
		Description:   acc.Description,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int               `json:"total"`
}
