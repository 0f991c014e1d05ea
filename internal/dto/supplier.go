package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateSupplierRequest defines the payload for registering a supplier.
type CreateSupplierRequest struct {
	SupplierName  string `json:"supplierName" binding:"required,max=255"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	TaxID         string `json:"taxId"`
	PaymentTerms  string `json:"paymentTerms"`
}

// ListSuppliersParams defines query parameters for listing suppliers.
type ListSuppliersParams struct {
	ActiveOnly bool `form:"activeOnly"`
}

// SupplierResponse defines the data returned for a supplier.
type SupplierResponse struct {
	SupplierID    string    `json:"supplierID"`
	SupplierName  string    `json:"supplierName"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	TaxID         string    `json:"taxId,omitempty"`
	PaymentTerms  string    `json:"paymentTerms,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
}

// ToSupplierResponse converts a domain.Supplier to its DTO.
func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID:    s.SupplierID,
		SupplierName:  s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		TaxID:         s.TaxID,
		PaymentTerms:  s.PaymentTerms,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
	}
}

// ToSupplierResponses converts a slice of suppliers.
func ToSupplierResponses(suppliers []domain.Supplier) []SupplierResponse {
	res := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		res[i] = ToSupplierResponse(&suppliers[i])
	}
	return res
}
