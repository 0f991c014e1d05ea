package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

type supplierService struct {
	BaseService
	supplierRepo portsrepo.SupplierRepositoryFacade
}

// NewSupplierService creates the supplier registry service.
func NewSupplierService(repo portsrepo.SupplierRepositoryFacade) portssvc.SupplierSvc {
	return &supplierService{supplierRepo: repo}
}

var _ portssvc.SupplierSvc = (*supplierService)(nil)

func (s *supplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, userID string) (*domain.Supplier, error) {
	name := strings.TrimSpace(req.SupplierName)
	if name == "" {
		return nil, fmt.Errorf("%w: supplier name is required", apperrors.ErrValidation)
	}
	now := s.Now()
	userID = orSystem(userID)
	supplier := domain.Supplier{
		SupplierID:    uuid.NewString(),
		Name:          name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		TaxID:         req.TaxID,
		PaymentTerms:  req.PaymentTerms,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		s.LogError(ctx, err, "Failed to save supplier")
		return nil, err
	}
	s.LogInfo(ctx, "Supplier created", slog.String("supplier_id", supplier.SupplierID))
	return &supplier, nil
}

func (s *supplierService) GetSupplier(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find supplier", slog.String("supplier_id", supplierID))
		}
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) ListSuppliers(ctx context.Context, activeOnly bool) ([]domain.Supplier, error) {
	suppliers, err := s.supplierRepo.ListSuppliers(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list suppliers")
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	if suppliers == nil {
		return []domain.Supplier{}, nil
	}
	return suppliers, nil
}
