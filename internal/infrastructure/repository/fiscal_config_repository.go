package repository

import (
	"context"
	"errors"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	domainRepo "github.com/endurancy/fiscal-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fiscalConfigRepository struct {
	db *gorm.DB
}

// NewFiscalConfigRepository creates a new fiscal config repository
func NewFiscalConfigRepository(db *gorm.DB) domainRepo.FiscalConfigRepository {
	return &fiscalConfigRepository{db: db}
}

func (r *fiscalConfigRepository) GetByOrganization(ctx context.Context, organizationID uuid.UUID) (*entity.FiscalConfig, error) {
	var config entity.FiscalConfig
	err := dbFrom(ctx, r.db).WithContext(ctx).
		First(&config, "organization_id = ?", organizationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &config, err
}

func (r *fiscalConfigRepository) Create(ctx context.Context, config *entity.FiscalConfig) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(config).Error
}

func (r *fiscalConfigRepository) Update(ctx context.Context, config *entity.FiscalConfig) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(config).Error
}

// AllocateSequence performs the increment-and-read as a single statement so
// concurrent emissions for the same organization never observe the same
// number.
func (r *fiscalConfigRepository) AllocateSequence(ctx context.Context, organizationID uuid.UUID) (int, bool, error) {
	var next int
	res := dbFrom(ctx, r.db).WithContext(ctx).Raw(
		"UPDATE fiscal_configs SET next_invoice_number = next_invoice_number + 1, updated_at = NOW() WHERE organization_id = ? RETURNING next_invoice_number",
		organizationID,
	).Scan(&next)
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		// No config: first document for the organization starts at 1
		return 1, false, nil
	}
	return next - 1, true, nil
}
