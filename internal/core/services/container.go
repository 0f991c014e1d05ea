package services

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// ContainerOptions carries the settings services are wired with at startup.
type ContainerOptions struct {
	Roles domain.AccountRoles
	// ReportCache is optional; reports are computed on every request without it.
	ReportCache portsrepo.ReportCache
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, opts ContainerOptions) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	accountOpts := []AccountServiceOption{}
	journalOpts := []JournalServiceOption{WithAccountRoles(opts.Roles)}
	reportingOpts := []ReportingServiceOption{WithCashAccount(opts.Roles.Cash)}
	if opts.ReportCache != nil {
		accountOpts = append(accountOpts, WithAccountReportCache(opts.ReportCache))
		journalOpts = append(journalOpts, WithJournalReportCache(opts.ReportCache))
		reportingOpts = append(reportingOpts, WithReportCache(opts.ReportCache))
	}

	container.Account = NewAccountService(repos.AccountRepo, accountOpts...)
	container.Journal = NewJournalService(repos.LedgerRepo, repos.AccountRepo, journalOpts...)
	container.Ledger = NewLedgerService(repos.LedgerRepo)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.LedgerRepo, reportingOpts...)
	container.Supplier = NewSupplierService(repos.SupplierRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.SupplierRepo, container.Journal)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.AccountRepo, repos.LedgerRepo)
	container.Integrity = NewIntegrityService(repos.LedgerRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.JournalSvcFacade = (*journalService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
)
