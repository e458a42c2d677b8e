package repository

import (
	"context"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	"github.com/google/uuid"
)

// FiscalConfigRepository defines the interface for fiscal config persistence
type FiscalConfigRepository interface {
	// GetByOrganization returns the config for an organization, nil when absent
	GetByOrganization(ctx context.Context, organizationID uuid.UUID) (*entity.FiscalConfig, error)
	// Create stores a new config
	Create(ctx context.Context, config *entity.FiscalConfig) error
	// Update replaces the mutable fields of an existing config
	Update(ctx context.Context, config *entity.FiscalConfig) error
	// AllocateSequence atomically increments the organization's invoice
	// counter and returns the allocated (pre-increment) number. found is
	// false when no config exists, in which case the sequence defaults to 1
	// and nothing is incremented.
	AllocateSequence(ctx context.Context, organizationID uuid.UUID) (seq int, found bool, err error)
}
