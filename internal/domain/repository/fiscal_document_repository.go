package repository

import (
	"context"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	"github.com/endurancy/fiscal-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmissionTotals aggregates issued documents for reporting.
type EmissionTotals struct {
	TotalAmount   decimal.Decimal
	DocumentCount int64
}

// FiscalDocumentRepository defines the interface for fiscal document persistence
type FiscalDocumentRepository interface {
	// CreateWithItems stores a document and its line items
	CreateWithItems(ctx context.Context, doc *entity.FiscalDocument, items []entity.FiscalDocumentItem) error
	// GetByID returns a document with its items, nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FiscalDocument, error)
	// ListByOrganization returns documents newest first
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, params *pagination.PaginationParams) ([]entity.FiscalDocument, int64, error)
	// Update persists a status transition
	Update(ctx context.Context, doc *entity.FiscalDocument) error
	// SumIssued totals the issued (non-cancelled) documents of an organization
	SumIssued(ctx context.Context, organizationID uuid.UUID) (*EmissionTotals, error)
}
