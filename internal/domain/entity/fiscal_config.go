package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FiscalConfig holds the per-organization fiscal settings.
// At most one config exists per organization; NextInvoiceNumber is the only
// field mutated during normal operation (advanced on each emission).
type FiscalConfig struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"organization_id"`
	NextInvoiceNumber int       `gorm:"not null;default:1" json:"next_invoice_number"`
	PrinterModel      string    `gorm:"size:100" json:"printer_model"`
	PrinterPort       string    `gorm:"size:100" json:"printer_port"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new config
func (c *FiscalConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.NextInvoiceNumber < 1 {
		c.NextInvoiceNumber = 1
	}
	return nil
}

// HasPrinter reports whether a printer is configured for this organization.
func (c *FiscalConfig) HasPrinter() bool {
	return c.PrinterModel != ""
}

// TableName returns the table name for the FiscalConfig model
func (FiscalConfig) TableName() string {
	return "fiscal_configs"
}
