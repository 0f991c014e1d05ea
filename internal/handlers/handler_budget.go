package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

type budgetHandler struct {
	budgetService portssvc.BudgetSvc
}

// RegisterBudgetRoutes registers budget allocation and analysis routes.
func RegisterBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvc) {
	h := &budgetHandler{budgetService: budgetService}

	rg.PUT("/budgets", h.setBudget)
	rg.GET("/budget-analysis", h.budgetAnalysis)
}

// setBudget godoc
// @Summary Set a monthly budget
// @Description Creates or replaces the allocation of one account for one fiscal month
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.SetBudgetRequest true "Allocation"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 422 {object} map[string]string "Unknown account"
// @Security BearerAuth
// @Router /budgets [put]
func (h *budgetHandler) setBudget(c *gin.Context) {
	var req dto.SetBudgetRequest
	if !bindJSON(c, &req, "SetBudget") {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	allocation, err := h.budgetService.SetBudget(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to set budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(allocation))
}

// budgetAnalysis godoc
// @Summary Budget versus actual
// @Description Compares each allocation with the account's activity in the fiscal month
// @Tags budgets
// @Produce  json
// @Param   fiscalYear query int true "Fiscal year"
// @Param   fiscalMonth query int false "Fiscal month (1-12)"
// @Success 200 {array} dto.BudgetVarianceResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /budget-analysis [get]
func (h *budgetHandler) budgetAnalysis(c *gin.Context) {
	var params dto.BudgetAnalysisParams
	if !bindQuery(c, &params, "BudgetAnalysis") {
		return
	}
	rows, err := h.budgetService.BudgetAnalysis(c.Request.Context(), params.FiscalYear, params.FiscalMonth)
	if err != nil {
		respondError(c, err, "Failed to analyse budgets")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetVarianceResponses(rows))
}
