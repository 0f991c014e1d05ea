package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// reportingHandler handles HTTP requests for ledger views and financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	ledgerService    portssvc.LedgerReaderSvc
	integrityService portssvc.IntegritySvc
	now              func() time.Time
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, ls portssvc.LedgerReaderSvc, is portssvc.IntegritySvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		ledgerService:    ls,
		integrityService: is,
		now:              time.Now,
	}
}

// RegisterReportingRoutes registers the general ledger, report and integrity routes
func RegisterReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingService, ls portssvc.LedgerReaderSvc, is portssvc.IntegritySvc) {
	h := newReportingHandler(rs, ls, is)

	rg.GET("/general-ledger/:accountNumber", h.getGeneralLedger)
	rg.GET("/trial-balance", h.getTrialBalance)
	rg.GET("/income-statement", h.getIncomeStatement)
	rg.GET("/balance-sheet", h.getBalanceSheet)
	rg.GET("/cash-flow", h.getCashFlow)
	rg.GET("/integrity", h.getIntegrity)
}

// getGeneralLedger godoc
// @Summary Get an account's general ledger
// @Description Lists the account's lines in date order with the running balance after each line
// @Tags reports
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param startDate query string false "First date (YYYY-MM-DD)"
// @Param endDate query string false "Last date (YYYY-MM-DD)"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to build general ledger"
// @Security BearerAuth
// @Router /general-ledger/{accountNumber} [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	accountNumber := c.Param("accountNumber")
	var params dto.GeneralLedgerParams
	if !bindQuery(c, &params, "GeneralLedger") {
		return
	}
	dateRange, err := params.ToDateRange()
	if err != nil {
		respondError(c, err, "Failed to build general ledger")
		return
	}

	gl, err := h.ledgerService.GeneralLedger(c.Request.Context(), accountNumber, dateRange)
	if err != nil {
		respondError(c, err, "Failed to build general ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(gl))
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Lists every active account's balance in the debit or credit column
// @Tags reports
// @Produce json
// @Param asOfDate query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate trial balance"
// @Security BearerAuth
// @Router /trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.AsOfParams
	if !bindQuery(c, &params, "TrialBalance") {
		return
	}
	asOf, err := params.AsOf(h.now())
	if err != nil {
		respondError(c, err, "Failed to generate trial balance")
		return
	}

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err, "Failed to generate trial balance")
		return
	}

	if !tb.IsBalanced {
		logger.Error("Trial balance does not balance",
			slog.String("total_debits", tb.TotalDebits.StringFixed(2)),
			slog.String("total_credits", tb.TotalCredits.StringFixed(2)))
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Description Revenue and expense totals with net income and profit margin. The default basis uses live balances; basis=period sums only lines dated within the range.
// @Tags reports
// @Produce json
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Param basis query string false "cumulative or period" Enums(cumulative, period)
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Missing or invalid dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate income statement"
// @Security BearerAuth
// @Router /income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	var params dto.PeriodParams
	if !bindQuery(c, &params, "IncomeStatement") {
		return
	}
	start, end, err := params.Range()
	if err != nil {
		respondError(c, err, "Failed to generate income statement")
		return
	}

	is, err := h.reportingService.IncomeStatement(c.Request.Context(), start, end, params.IncomeBasis())
	if err != nil {
		respondError(c, err, "Failed to generate income statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(is))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet
// @Description Assets, liabilities and equity including current earnings
// @Tags reports
// @Produce json
// @Param asOfDate query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate balance sheet"
// @Security BearerAuth
// @Router /balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	var params dto.AsOfParams
	if !bindQuery(c, &params, "BalanceSheet") {
		return
	}
	asOf, err := params.AsOf(h.now())
	if err != nil {
		respondError(c, err, "Failed to generate balance sheet")
		return
	}

	bs, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err, "Failed to generate balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(bs))
}

// getCashFlow godoc
// @Summary Generate cash flow statement
// @Description Movements of the cash account within the range grouped into operating, investing and financing activities
// @Tags reports
// @Produce json
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Missing or invalid dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate cash flow statement"
// @Security BearerAuth
// @Router /cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	var params dto.PeriodParams
	if !bindQuery(c, &params, "CashFlow") {
		return
	}
	start, end, err := params.Range()
	if err != nil {
		respondError(c, err, "Failed to generate cash flow statement")
		return
	}

	cf, err := h.reportingService.CashFlowStatement(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err, "Failed to generate cash flow statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowResponse(cf))
}

// getIntegrity godoc
// @Summary Verify ledger integrity
// @Description Compares every stored balance with the sum of its lines and checks that total debits equal total credits
// @Tags reports
// @Produce json
// @Success 200 {object} dto.IntegrityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to verify ledger"
// @Security BearerAuth
// @Router /integrity [get]
func (h *reportingHandler) getIntegrity(c *gin.Context) {
	report, err := h.integrityService.VerifyLedger(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to verify ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToIntegrityResponse(report))
}
