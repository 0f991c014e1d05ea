package domain

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset           AccountType = "Asset"
	Liability       AccountType = "Liability"
	Equity          AccountType = "Equity"
	Revenue         AccountType = "Revenue"
	ExpenseType     AccountType = "Expense"
	ContraAsset     AccountType = "Contra-Asset"
	ContraLiability AccountType = "Contra-Liability"
)

// AccountTypes lists every account type in chart order.
var AccountTypes = []AccountType{Asset, ContraAsset, Liability, ContraLiability, Equity, Revenue, ExpenseType}

// Valid reports whether t is one of the enumerated account types.
func (t AccountType) Valid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

var accountNumberPattern = regexp.MustCompile(`^[0-9A-Za-z-]{1,10}$`)

// ValidAccountNumber reports whether number is a well-formed chart key:
// one to ten letters, digits or hyphens.
func ValidAccountNumber(number string) bool {
	return accountNumberPattern.MatchString(number)
}

// NormalBalance is the side on which an account's balance increases.
type NormalBalance string

const (
	Debit  NormalBalance = "Debit"
	Credit NormalBalance = "Credit"
)

// Valid reports whether n is Debit or Credit.
func (n NormalBalance) Valid() bool {
	return n == Debit || n == Credit
}

// Account represents a node in the chart of accounts.
// Number is the stable business key; AccountID is the storage identity.
type Account struct {
	AccountID     string          `json:"accountID"`
	Number        string          `json:"accountNumber"`
	Name          string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	SubType       string          `json:"subType"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	Description   string          `json:"description"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// AccountFilter narrows ListAccounts. Nil fields do not filter.
type AccountFilter struct {
	Type   *AccountType
	Active *bool
}

// Matches reports whether the account passes the filter.
func (f AccountFilter) Matches(a Account) bool {
	if f.Type != nil && a.AccountType != *f.Type {
		return false
	}
	if f.Active != nil && a.IsActive != *f.Active {
		return false
	}
	return true
}

// AccountPatch is a partial update. Nil fields are left unchanged.
type AccountPatch struct {
	Name        *string
	SubType     *string
	Description *string
	IsActive    *bool
}

// AccountRoles maps the logical accounts used by auto-posting to account numbers.
type AccountRoles struct {
	Cash               string
	AccountsReceivable string
	Revenue            string
	Expense            string
	// ExpenseByCategory overrides Expense for specific expense categories.
	ExpenseByCategory map[ExpenseCategory]string
}

// DefaultAccountRoles returns the role mapping of the default chart of accounts.
func DefaultAccountRoles() AccountRoles {
	return AccountRoles{
		Cash:               "1010",
		AccountsReceivable: "1200",
		Revenue:            "4000",
		Expense:            "5000",
	}
}

// ExpenseAccount resolves the expense account for a category.
func (r AccountRoles) ExpenseAccount(category ExpenseCategory) string {
	if number, ok := r.ExpenseByCategory[category]; ok && number != "" {
		return number
	}
	return r.Expense
}
