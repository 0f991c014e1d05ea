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

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	now            func() time.Time
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
		now:            time.Now,
	}
}

// RegisterJournalRoutes registers manual posting, entry lookup and auto-post routes.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.postJournalEntry)
		entries.GET("", h.listJournalEntries)
		entries.GET("/:entryNumber", h.getJournalEntry)
	}

	autoPost := rg.Group("/auto-post")
	{
		autoPost.POST("/sales", h.autoPostSale)
		autoPost.POST("/orders", h.autoPostOrder)
	}
}

// postJournalEntry godoc
// @Summary Post a manual journal entry
// @Description Validates and posts a balanced entry. Nothing is written when validation fails.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.PostJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.PostJournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid request or structurally invalid lines"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Entry number already used"
// @Failure 422 {object} map[string]string "Unbalanced entry, unknown or inactive account"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) postJournalEntry(c *gin.Context) {
	var req dto.PostJournalEntryRequest
	if !bindJSON(c, &req, "PostJournalEntry") {
		return
	}
	creatorUserID, ok := callerID(c)
	if !ok {
		return
	}

	postReq, err := req.ToPostRequest(creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}

	result, err := h.journalService.PostJournalEntry(c.Request.Context(), postReq)
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostJournalEntryResponse(result))
}

// getJournalEntry godoc
// @Summary Get a journal entry and its lines
// @Tags journal
// @Produce  json
// @Param   entryNumber path string true "Entry number"
// @Success 200 {object} dto.GetJournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryNumber} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	entryNumber := c.Param("entryNumber")

	entry, lines, err := h.journalService.GetJournalEntry(c.Request.Context(), entryNumber)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.GetJournalEntryResponse{
		Entry: dto.ToJournalEntryResponse(entry),
		Lines: dto.ToLedgerLineResponses(lines),
	})
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first with token-based pagination
// @Tags journal
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters or token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	var params dto.ListJournalEntriesParams
	if !bindQuery(c, &params, "ListJournalEntries") {
		return
	}

	resp, err := h.journalService.ListJournalEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// autoPostSale godoc
// @Summary Record a completed sale
// @Description Debits cash (cash payments) or receivables (card payments) and credits sales revenue
// @Tags auto-post
// @Accept  json
// @Produce  json
// @Param   sale body dto.AutoPostSaleRequest true "Sale"
// @Success 201 {object} dto.PostJournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid request or payment method"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Sale already posted"
// @Failure 422 {object} map[string]string "Configured account missing or inactive"
// @Failure 500 {object} map[string]string "Failed to post sale"
// @Security BearerAuth
// @Router /auto-post/sales [post]
func (h *journalHandler) autoPostSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AutoPostSaleRequest
	if !bindJSON(c, &req, "AutoPostSale") {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	sale, err := req.ToSalePosting(userID, h.now())
	if err != nil {
		respondError(c, err, "Failed to post sale")
		return
	}

	logger.Info("Received sale to post", slog.String("sale_id", sale.SaleID), slog.String("payment_method", string(sale.PaymentMethod)))

	result, err := h.journalService.AutoPostSale(c.Request.Context(), sale)
	if err != nil {
		respondError(c, err, "Failed to post sale")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostJournalEntryResponse(result))
}

// autoPostOrder godoc
// @Summary Record an order sold on account
// @Description Debits accounts receivable and credits sales revenue
// @Tags auto-post
// @Accept  json
// @Produce  json
// @Param   order body dto.AutoPostOrderRequest true "Order"
// @Success 201 {object} dto.PostJournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Order already posted"
// @Failure 422 {object} map[string]string "Configured account missing or inactive"
// @Failure 500 {object} map[string]string "Failed to post order"
// @Security BearerAuth
// @Router /auto-post/orders [post]
func (h *journalHandler) autoPostOrder(c *gin.Context) {
	var req dto.AutoPostOrderRequest
	if !bindJSON(c, &req, "AutoPostOrder") {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	order, err := req.ToOrderPosting(userID, h.now())
	if err != nil {
		respondError(c, err, "Failed to post order")
		return
	}

	result, err := h.journalService.AutoPostOrder(c.Request.Context(), order)
	if err != nil {
		respondError(c, err, "Failed to post order")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostJournalEntryResponse(result))
}
