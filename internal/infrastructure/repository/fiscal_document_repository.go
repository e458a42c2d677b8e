package repository

import (
	"context"
	"errors"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	"github.com/endurancy/fiscal-api/internal/domain/enum"
	domainRepo "github.com/endurancy/fiscal-api/internal/domain/repository"
	"github.com/endurancy/fiscal-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fiscalDocumentRepository struct {
	db *gorm.DB
}

// NewFiscalDocumentRepository creates a new fiscal document repository
func NewFiscalDocumentRepository(db *gorm.DB) domainRepo.FiscalDocumentRepository {
	return &fiscalDocumentRepository{db: db}
}

// CreateWithItems inserts the document and its items in one transaction so a
// partial item set is never visible.
func (r *fiscalDocumentRepository) CreateWithItems(ctx context.Context, doc *entity.FiscalDocument, items []entity.FiscalDocumentItem) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			for i := range items {
				items[i].DocumentID = doc.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		doc.Items = items
		return nil
	})
}

func (r *fiscalDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FiscalDocument, error) {
	var doc entity.FiscalDocument
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Items").
		First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *fiscalDocumentRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, params *pagination.PaginationParams) ([]entity.FiscalDocument, int64, error) {
	var docs []entity.FiscalDocument
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.FiscalDocument{}).
		Where("organization_id = ?", organizationID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("issued_at DESC, created_at DESC").
		Find(&docs).Error

	return docs, total, err
}

func (r *fiscalDocumentRepository) Update(ctx context.Context, doc *entity.FiscalDocument) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(doc).Error
}

func (r *fiscalDocumentRepository) SumIssued(ctx context.Context, organizationID uuid.UUID) (*domainRepo.EmissionTotals, error) {
	var totals domainRepo.EmissionTotals
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.FiscalDocument{}).
		Select("COALESCE(SUM(total_amount), 0) AS total_amount, COUNT(*) AS document_count").
		Where("organization_id = ? AND status = ?", organizationID, enum.DocumentStatusIssued).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
