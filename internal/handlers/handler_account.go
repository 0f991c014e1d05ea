package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountNumber", h.getAccount)
		accounts.PUT("/:accountNumber", h.updateAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Registers an account in the chart of accounts with a zero balance
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input, account type or normal balance"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account number already registered"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req, "CreateAccount") {
		return
	}
	creatorUserID, ok := callerID(c)
	if !ok {
		return
	}

	logger.Info("Received request to create account", slog.String("account_number", req.AccountNumber), slog.String("account_type", req.AccountType))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// getAccount godoc
// @Summary Get an account by number
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{accountNumber} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	accountNumber := c.Param("accountNumber")

	account, err := h.accountService.GetAccount(c.Request.Context(), accountNumber)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Description Lists accounts ordered by number, optionally filtered by type and active flag
// @Tags accounts
// @Produce  json
// @Param   type query string false "Account type" Enums(Asset, Liability, Equity, Revenue, Expense, Contra-Asset, Contra-Liability)
// @Param   active query bool false "Only active (true) or inactive (false) accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if !bindQuery(c, &params, "ListAccounts") {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}

	responses := dto.ToListAccountResponse(accounts)
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: responses, Total: len(responses)})
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates descriptive fields or the active flag. Deactivation requires a zero balance.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input or non-zero balance on deactivation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{accountNumber} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req, "UpdateAccount") {
		return
	}
	updaterUserID, ok := callerID(c)
	if !ok {
		return
	}

	logger.Info("Received request to update account", slog.String("account_number", accountNumber))

	updated, err := h.accountService.UpdateAccount(c.Request.Context(), accountNumber, req, updaterUserID)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(updated))
}
