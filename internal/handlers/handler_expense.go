package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

type expenseHandler struct {
	expenseService portssvc.ExpenseSvc
}

// RegisterExpenseRoutes registers the expense recording and approval routes.
func RegisterExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvc) {
	h := &expenseHandler{expenseService: expenseService}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.recordExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID/approve", h.approveExpense)
		expenses.PUT("/:expenseID/reject", h.rejectExpense)
	}
}

// recordExpense godoc
// @Summary Record an expense
// @Description Records a pending expense. Nothing is posted until it is approved.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.RecordExpenseRequest true "Expense"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) recordExpense(c *gin.Context) {
	var req dto.RecordExpenseRequest
	if !bindJSON(c, &req, "RecordExpense") {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.RecordExpense(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce  json
// @Param   status query string false "pending, approved or rejected"
// @Param   category query string false "Expense category"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	var params dto.ListExpensesParams
	if !bindQuery(c, &params, "ListExpenses") {
		return
	}
	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	expense, err := h.expenseService.GetExpense(c.Request.Context(), c.Param("expenseID"))
	if err != nil {
		respondError(c, err, "Failed to get expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// approveExpense godoc
// @Summary Approve an expense
// @Description Posts the expense to the ledger and marks it approved. Only pending expenses can be approved.
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Expense is not pending"
// @Failure 422 {object} map[string]string "Expense account unknown or inactive"
// @Security BearerAuth
// @Router /expenses/{expenseID}/approve [put]
func (h *expenseHandler) approveExpense(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.ApproveExpense(c.Request.Context(), c.Param("expenseID"), userID)
	if err != nil {
		respondError(c, err, "Failed to approve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// rejectExpense godoc
// @Summary Reject an expense
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Expense is not pending"
// @Security BearerAuth
// @Router /expenses/{expenseID}/reject [put]
func (h *expenseHandler) rejectExpense(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.RejectExpense(c.Request.Context(), c.Param("expenseID"), userID)
	if err != nil {
		respondError(c, err, "Failed to reject expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
