package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource is not in a state that allows the operation.
var ErrConflict = errors.New("resource state conflict")

// ErrUnauthorized indicates a missing or invalid caller identity.
var ErrUnauthorized = errors.New("unauthorized")

// Ledger specific errors. Each wraps one of the generic errors above so callers
// can match either the precise cause or the category.
var (
	ErrDuplicateAccount     = fmt.Errorf("%w: account number already registered", ErrDuplicate)
	ErrInvalidAccountNumber = fmt.Errorf("%w: account number must be 1-10 letters, digits or hyphens", ErrValidation)
	ErrInvalidAccountType   = fmt.Errorf("%w: invalid account type", ErrValidation)
	ErrInvalidNormalBalance = fmt.Errorf("%w: invalid normal balance", ErrValidation)
	ErrUnknownAccount       = fmt.Errorf("%w: unknown account", ErrValidation)
	ErrInactiveAccount      = fmt.Errorf("%w: account is inactive", ErrValidation)
	ErrUnbalanced           = fmt.Errorf("%w: journal entry is not balanced", ErrValidation)
	ErrDuplicateEntry       = fmt.Errorf("%w: journal entry number already used", ErrDuplicate)
)

// UnbalancedError reports the totals of a rejected journal entry.
type UnbalancedError struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("journal entry is not balanced: debits %s, credits %s",
		e.TotalDebits.StringFixed(2), e.TotalCredits.StringFixed(2))
}

func (e *UnbalancedError) Unwrap() error { return ErrUnbalanced }

// UnknownAccountError names the account number a journal line could not resolve.
type UnknownAccountError struct {
	AccountNumber string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account %q", e.AccountNumber)
}

func (e *UnknownAccountError) Unwrap() error { return ErrUnknownAccount }

// InactiveAccountError names an inactive account referenced by a journal line.
type InactiveAccountError struct {
	AccountNumber string
}

func (e *InactiveAccountError) Error() string {
	return fmt.Sprintf("account %q is inactive", e.AccountNumber)
}

func (e *InactiveAccountError) Unwrap() error { return ErrInactiveAccount }

// AppError carries an HTTP-ish status code alongside an underlying storage error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error { return e.Err }
