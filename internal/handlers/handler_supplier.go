package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

type supplierHandler struct {
	supplierService portssvc.SupplierSvc
}

// RegisterSupplierRoutes registers the supplier routes.
func RegisterSupplierRoutes(rg *gin.RouterGroup, supplierService portssvc.SupplierSvc) {
	h := &supplierHandler{supplierService: supplierService}

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:supplierID", h.getSupplier)
	}
}

// createSupplier godoc
// @Summary Create a supplier
// @Tags suppliers
// @Accept  json
// @Produce  json
// @Param   supplier body dto.CreateSupplierRequest true "Supplier"
// @Success 201 {object} dto.SupplierResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /suppliers [post]
func (h *supplierHandler) createSupplier(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !bindJSON(c, &req, "CreateSupplier") {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create supplier")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSupplierResponse(supplier))
}

// listSuppliers godoc
// @Summary List suppliers
// @Tags suppliers
// @Produce  json
// @Param   activeOnly query bool false "Only active suppliers"
// @Success 200 {array} dto.SupplierResponse
// @Security BearerAuth
// @Router /suppliers [get]
func (h *supplierHandler) listSuppliers(c *gin.Context) {
	var params dto.ListSuppliersParams
	if !bindQuery(c, &params, "ListSuppliers") {
		return
	}
	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context(), params.ActiveOnly)
	if err != nil {
		respondError(c, err, "Failed to list suppliers")
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponses(suppliers))
}

// getSupplier godoc
// @Summary Get a supplier
// @Tags suppliers
// @Produce  json
// @Param   supplierID path string true "Supplier ID"
// @Success 200 {object} dto.SupplierResponse
// @Failure 404 {object} map[string]string "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{supplierID} [get]
func (h *supplierHandler) getSupplier(c *gin.Context) {
	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), c.Param("supplierID"))
	if err != nil {
		respondError(c, err, "Failed to get supplier")
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}
