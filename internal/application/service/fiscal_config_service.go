package service

import (
	"context"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	"github.com/endurancy/fiscal-api/internal/domain/repository"
	"github.com/endurancy/fiscal-api/pkg/apperror"
	"github.com/google/uuid"
)

// FiscalConfigService manages per-organization fiscal configuration
type FiscalConfigService struct {
	configRepo repository.FiscalConfigRepository
}

// NewFiscalConfigService creates a new fiscal config service
func NewFiscalConfigService(configRepo repository.FiscalConfigRepository) *FiscalConfigService {
	return &FiscalConfigService{configRepo: configRepo}
}

// CreateConfigInput represents the create config input
type CreateConfigInput struct {
	OrganizationID    uuid.UUID
	NextInvoiceNumber int
	PrinterModel      string
	PrinterPort       string
}

// UpdateConfigInput carries the fields to replace; nil fields are left untouched
type UpdateConfigInput struct {
	NextInvoiceNumber *int
	PrinterModel      *string
	PrinterPort       *string
}

// Get returns the organization's config
func (s *FiscalConfigService) Get(ctx context.Context, organizationID uuid.UUID) (*entity.FiscalConfig, error) {
	config, err := s.configRepo.GetByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, apperror.NewNotFoundError("Fiscal config")
	}
	return config, nil
}

// Create stores a new config, rejecting a second config for the same organization
func (s *FiscalConfigService) Create(ctx context.Context, input *CreateConfigInput) (*entity.FiscalConfig, error) {
	if input.OrganizationID == uuid.Nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "organization_id", Message: "organization_id is required"},
		})
	}

	existing, err := s.configRepo.GetByOrganization(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Fiscal config already exists for this organization")
	}

	config := &entity.FiscalConfig{
		OrganizationID:    input.OrganizationID,
		NextInvoiceNumber: input.NextInvoiceNumber,
		PrinterModel:      input.PrinterModel,
		PrinterPort:       input.PrinterPort,
	}
	if config.NextInvoiceNumber < 1 {
		config.NextInvoiceNumber = 1
	}

	if err := s.configRepo.Create(ctx, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Update replaces the provided fields of an existing config
func (s *FiscalConfigService) Update(ctx context.Context, organizationID uuid.UUID, input *UpdateConfigInput) (*entity.FiscalConfig, error) {
	config, err := s.configRepo.GetByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, apperror.NewNotFoundError("Fiscal config")
	}

	if input.NextInvoiceNumber != nil {
		if *input.NextInvoiceNumber < 1 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "next_invoice_number", Message: "next_invoice_number must be at least 1"},
			})
		}
		config.NextInvoiceNumber = *input.NextInvoiceNumber
	}
	if input.PrinterModel != nil {
		config.PrinterModel = *input.PrinterModel
	}
	if input.PrinterPort != nil {
		config.PrinterPort = *input.PrinterPort
	}

	if err := s.configRepo.Update(ctx, config); err != nil {
		return nil, err
	}
	return config, nil
}
