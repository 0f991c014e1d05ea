package models

import (
	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID     string          `db:"account_id"`
	AccountNumber string          `db:"account_number"`
	Name          string          `db:"name"`
	AccountType   string          `db:"account_type"`
	SubType       *string         `db:"sub_type"` // Nullable
	NormalBalance string          `db:"normal_balance"`
	Description   *string         `db:"description"` // Nullable
	Balance       decimal.Decimal `db:"balance"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
