package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/endurancy/fiscal-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrAlreadyCanceled is returned when cancelling a document twice.
	ErrAlreadyCanceled = errors.New("document is already cancelled")
	// ErrCancellationWindowExpired is returned when the cancellation window has passed.
	ErrCancellationWindowExpired = errors.New("cancellation window expired")
)

// FiscalDocument is an issued fiscal document (NFC-e or generic receipt).
// Documents are immutable after issuance except for the one-way
// emitida -> cancelada transition.
type FiscalDocument struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID        uuid.UUID           `gorm:"type:uuid;not null;index;uniqueIndex:idx_org_document_number" json:"organization_id"`
	DocumentNumber        string              `gorm:"size:10;not null;uniqueIndex:idx_org_document_number" json:"document_number"`
	Type                  enum.DocumentType   `gorm:"size:20;not null" json:"type"`
	Status                enum.DocumentStatus `gorm:"size:20;not null;default:emitida" json:"status"`
	IssuedAt              time.Time           `gorm:"not null" json:"issued_at"`
	CanceledAt            *time.Time          `json:"canceled_at,omitempty"`
	CancelReason          *string             `gorm:"size:255" json:"cancel_reason,omitempty"`
	AccessKey             string              `gorm:"size:64;uniqueIndex;not null" json:"access_key"`
	AuthorizationProtocol string              `gorm:"size:64;not null" json:"authorization_protocol"`
	CustomerName          string              `gorm:"size:255" json:"customer_name"`
	CustomerDocument      string              `gorm:"size:32" json:"customer_document"`
	PaymentMethod         string              `gorm:"size:50" json:"payment_method"`
	TotalAmount           decimal.Decimal     `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`

	Items []FiscalDocumentItem `gorm:"foreignKey:DocumentID" json:"items,omitempty"`
}

// FormatDocumentNumber renders a sequence number as the zero-padded
// six-digit document number (e.g. 15 -> "000015").
func FormatDocumentNumber(seq int) string {
	return fmt.Sprintf("%06d", seq)
}

// BeforeCreate generates a UUID before creating a new document
func (d *FiscalDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.IssuedAt.IsZero() {
		d.IssuedAt = time.Now()
	}
	if d.Status == "" {
		d.Status = enum.DocumentStatusIssued
	}
	return nil
}

// Cancel applies the one-way emitida -> cancelada transition.
// Cancelling an already-cancelled document is rejected.
func (d *FiscalDocument) Cancel(reason string, now time.Time) error {
	if d.Status == enum.DocumentStatusCanceled {
		return ErrAlreadyCanceled
	}
	d.Status = enum.DocumentStatusCanceled
	d.CanceledAt = &now
	d.CancelReason = &reason
	return nil
}

// TableName returns the table name for the FiscalDocument model
func (FiscalDocument) TableName() string {
	return "fiscal_documents"
}

// FiscalDocumentItem is a line item created atomically with its parent
// document and never mutated afterward.
type FiscalDocumentItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"document_id"`
	ProductID     *uuid.UUID      `gorm:"type:uuid" json:"product_id,omitempty"`
	Code          string          `gorm:"size:50" json:"code"`
	Description   string          `gorm:"size:255;not null" json:"description"`
	Quantity      decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_price"`
	UnitOfMeasure string          `gorm:"size:10;not null" json:"unit_of_measure"`
	NCM           string          `gorm:"size:8;not null" json:"ncm"`
	CFOP          string          `gorm:"size:4;not null" json:"cfop"`
	TaxAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"tax_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ApplyDefaults fills the optional fiscal fields omitted from input.
func (i *FiscalDocumentItem) ApplyDefaults() {
	if i.UnitOfMeasure == "" {
		i.UnitOfMeasure = "UN"
	}
	if i.NCM == "" {
		i.NCM = "00000000"
	}
	if i.CFOP == "" {
		i.CFOP = "5102"
	}
}

// BeforeCreate generates a UUID before creating a new item
func (i *FiscalDocumentItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FiscalDocumentItem model
func (FiscalDocumentItem) TableName() string {
	return "fiscal_document_items"
}
