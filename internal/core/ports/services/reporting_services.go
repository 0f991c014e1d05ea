package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)

	// IncomeStatement generates an income statement for a specific period
	IncomeStatement(ctx context.Context, start, end time.Time, basis domain.IncomeBasis) (*domain.IncomeStatement, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)

	// CashFlowStatement summarises the cash account's movements for a specific period
	CashFlowStatement(ctx context.Context, start, end time.Time) (*domain.CashFlowStatement, error)
}

// IntegritySvc verifies the ledger against its own lines
type IntegritySvc interface {
	VerifyLedger(ctx context.Context) (*domain.IntegrityReport, error)
}
