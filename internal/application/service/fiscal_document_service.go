package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	"github.com/endurancy/fiscal-api/internal/domain/enum"
	"github.com/endurancy/fiscal-api/internal/domain/repository"
	"github.com/endurancy/fiscal-api/pkg/apperror"
	"github.com/endurancy/fiscal-api/pkg/fiscalprinter"
	"github.com/endurancy/fiscal-api/pkg/logger"
	"github.com/endurancy/fiscal-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FiscalDocumentService orchestrates document emission and cancellation
type FiscalDocumentService struct {
	uow        repository.UnitOfWork
	configRepo repository.FiscalConfigRepository
	docRepo    repository.FiscalDocumentRepository
	outboxRepo repository.OutboxRepository
	sessions   *fiscalprinter.SessionManager
	policy     entity.CancellationPolicy
	log        *logger.Logger
}

// NewFiscalDocumentService creates a new fiscal document service
func NewFiscalDocumentService(
	uow repository.UnitOfWork,
	configRepo repository.FiscalConfigRepository,
	docRepo repository.FiscalDocumentRepository,
	outboxRepo repository.OutboxRepository,
	sessions *fiscalprinter.SessionManager,
	policy entity.CancellationPolicy,
	log *logger.Logger,
) *FiscalDocumentService {
	return &FiscalDocumentService{
		uow:        uow,
		configRepo: configRepo,
		docRepo:    docRepo,
		outboxRepo: outboxRepo,
		sessions:   sessions,
		policy:     policy,
		log:        log,
	}
}

// DocumentItemInput represents a line item in a document request
type DocumentItemInput struct {
	ProductID     *uuid.UUID
	Code          string
	Description   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	UnitOfMeasure string
	NCM           string
	CFOP          string
	TaxAmount     decimal.Decimal
}

// CreateDocumentInput represents the create document input
type CreateDocumentInput struct {
	OrganizationID   uuid.UUID
	Type             string
	CustomerName     string
	CustomerDocument string
	PaymentMethod    string
	TotalAmount      decimal.Decimal
	Items            []DocumentItemInput
}

// CreateDocumentResult bundles the persisted document with the advisory
// print outcome. PrintResult is nil when no printer is configured.
type CreateDocumentResult struct {
	Document    *entity.FiscalDocument `json:"document"`
	PrintResult *fiscalprinter.Result  `json:"print_result,omitempty"`
}

// CreateDocument allocates the next sequence number, persists the document
// with its items and appends the emission event, all in one transaction, then
// prints a receipt best-effort.
func (s *FiscalDocumentService) CreateDocument(ctx context.Context, input *CreateDocumentInput) (*CreateDocumentResult, error) {
	if err := validateCreateDocument(input); err != nil {
		return nil, err
	}

	// Config is read up front for the printer settings; sequence allocation
	// happens inside the transaction.
	config, err := s.configRepo.GetByOrganization(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &entity.FiscalDocument{
		ID:                    uuid.New(),
		OrganizationID:        input.OrganizationID,
		Type:                  enum.DocumentType(input.Type),
		Status:                enum.DocumentStatusIssued,
		IssuedAt:              now,
		AccessKey:             generateAccessKey(),
		AuthorizationProtocol: generateAuthorizationProtocol(now),
		CustomerName:          input.CustomerName,
		CustomerDocument:      input.CustomerDocument,
		PaymentMethod:         input.PaymentMethod,
		TotalAmount:           input.TotalAmount,
	}

	items := make([]entity.FiscalDocumentItem, 0, len(input.Items))
	for _, in := range input.Items {
		item := entity.FiscalDocumentItem{
			ProductID:     in.ProductID,
			Code:          in.Code,
			Description:   in.Description,
			Quantity:      in.Quantity,
			UnitPrice:     in.UnitPrice,
			TotalPrice:    in.TotalPrice,
			UnitOfMeasure: in.UnitOfMeasure,
			NCM:           in.NCM,
			CFOP:          in.CFOP,
			TaxAmount:     in.TaxAmount,
		}
		if item.TotalPrice.IsZero() {
			item.TotalPrice = in.Quantity.Mul(in.UnitPrice)
		}
		item.ApplyDefaults()
		items = append(items, item)
	}

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		seq, _, err := s.configRepo.AllocateSequence(ctx, input.OrganizationID)
		if err != nil {
			return err
		}
		doc.DocumentNumber = entity.FormatDocumentNumber(seq)

		if err := s.docRepo.CreateWithItems(ctx, doc, items); err != nil {
			return err
		}

		return s.appendEvent(ctx, entity.EventDocumentEmitted, doc)
	})
	if err != nil {
		return nil, err
	}

	result := &CreateDocumentResult{Document: doc}

	// Printing is advisory: a failed print never rolls back the emission.
	if config != nil && config.HasPrinter() {
		printResult := s.sessions.Exec(input.OrganizationID, config.PrinterModel, config.PrinterPort, func(d fiscalprinter.Driver) fiscalprinter.Result {
			receipt := buildReceipt(doc)
			if doc.Type == enum.DocumentTypeNFCe {
				return d.PrintNFCe(receipt)
			}
			return d.PrintFiscalReceipt(receipt)
		})
		if !printResult.Success {
			s.log.Warn().
				Str("document_id", doc.ID.String()).
				Int("code", printResult.Code).
				Str("message", printResult.Message).
				Msg("receipt print failed")
		}
		result.PrintResult = &printResult
	}

	s.log.Info().
		Str("organization_id", doc.OrganizationID.String()).
		Str("document_number", doc.DocumentNumber).
		Str("type", doc.Type.String()).
		Msg("fiscal document emitted")

	return result, nil
}

// CancelDocument applies the one-way cancellation transition within the
// policy window.
func (s *FiscalDocumentService) CancelDocument(ctx context.Context, documentID uuid.UUID, cancelReason string) (*entity.FiscalDocument, error) {
	if strings.TrimSpace(cancelReason) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "cancel_reason", Message: "cancel_reason is required"},
		})
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Fiscal document")
	}

	now := time.Now()
	if err := s.policy.Check(doc, now); err != nil {
		return nil, apperror.NewPolicyError(err.Error())
	}
	if err := doc.Cancel(cancelReason, now); err != nil {
		return nil, apperror.NewPolicyError(err.Error())
	}

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.docRepo.Update(ctx, doc); err != nil {
			return err
		}
		return s.appendEvent(ctx, entity.EventDocumentCanceled, doc)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("document_id", doc.ID.String()).
		Str("document_number", doc.DocumentNumber).
		Msg("fiscal document cancelled")

	return doc, nil
}

// GetDocument returns a document with its items
func (s *FiscalDocumentService) GetDocument(ctx context.Context, documentID uuid.UUID) (*entity.FiscalDocument, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Fiscal document")
	}
	return doc, nil
}

// ListDocuments returns the organization's documents newest first
func (s *FiscalDocumentService) ListDocuments(ctx context.Context, organizationID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.FiscalDocument], error) {
	docs, total, err := s.docRepo.ListByOrganization(ctx, organizationID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(docs, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

func (s *FiscalDocumentService) appendEvent(ctx context.Context, eventType string, doc *entity.FiscalDocument) error {
	payload, err := json.Marshal(map[string]any{
		"document_id":     doc.ID,
		"organization_id": doc.OrganizationID,
		"document_number": doc.DocumentNumber,
		"type":            doc.Type,
		"status":          doc.Status,
		"total_amount":    doc.TotalAmount,
	})
	if err != nil {
		return err
	}
	return s.outboxRepo.Append(ctx, &entity.OutboxEvent{
		EventType:   eventType,
		AggregateID: doc.ID,
		Payload:     string(payload),
		OccurredAt:  time.Now(),
	})
}

func validateCreateDocument(input *CreateDocumentInput) error {
	var fieldErrors []apperror.FieldError

	if input.OrganizationID == uuid.Nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "organization_id", Message: "organization_id is required"})
	}
	if strings.TrimSpace(input.Type) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "type", Message: "type is required"})
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "customer_name is required"})
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_method", Message: "payment_method is required"})
	}
	if !input.TotalAmount.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "total_amount", Message: "total_amount must be positive"})
	}
	for i, item := range input.Items {
		if strings.TrimSpace(item.Description) == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].description", i), Message: "description is required"})
		}
		if !item.Quantity.IsPositive() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "quantity must be positive"})
		}
		if item.UnitPrice.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].unit_price", i), Message: "unit_price cannot be negative"})
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// generateAccessKey builds a unique opaque token standing in for the access
// key a tax authority would assign.
func generateAccessKey() string {
	raw := uuid.New().String() + uuid.New().String()
	return strings.ReplaceAll(raw, "-", "")[:44]
}

// generateAuthorizationProtocol builds a time-and-randomness derived token
// standing in for the authority's protocol number.
func generateAuthorizationProtocol(now time.Time) string {
	return fmt.Sprintf("%d%06d", now.Unix(), rand.Intn(1_000_000))
}

func buildReceipt(doc *entity.FiscalDocument) *fiscalprinter.Receipt {
	receipt := &fiscalprinter.Receipt{
		DocumentNumber:        doc.DocumentNumber,
		IssuedAt:              doc.IssuedAt,
		CustomerName:          doc.CustomerName,
		CustomerDocument:      doc.CustomerDocument,
		PaymentMethod:         doc.PaymentMethod,
		TotalAmount:           doc.TotalAmount,
		AccessKey:             doc.AccessKey,
		AuthorizationProtocol: doc.AuthorizationProtocol,
	}
	for _, item := range doc.Items {
		receipt.Items = append(receipt.Items, fiscalprinter.ReceiptItem{
			Code:          item.Code,
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitOfMeasure: item.UnitOfMeasure,
			UnitPrice:     item.UnitPrice,
			Total:         item.TotalPrice,
		})
	}
	return receipt
}
