package request

import "github.com/shopspring/decimal"

// CreateConfigRequest is the payload for POST /fiscal/config
type CreateConfigRequest struct {
	OrganizationID    string `json:"organization_id" binding:"required,uuid"`
	NextInvoiceNumber int    `json:"next_invoice_number"`
	PrinterModel      string `json:"printer_model"`
	PrinterPort       string `json:"printer_port"`
}

// UpdateConfigRequest is the payload for PUT /fiscal/config/:organizationId.
// Absent fields are left untouched.
type UpdateConfigRequest struct {
	NextInvoiceNumber *int    `json:"next_invoice_number"`
	PrinterModel      *string `json:"printer_model"`
	PrinterPort       *string `json:"printer_port"`
}

// DocumentItemRequest is a line item in a document emission request
type DocumentItemRequest struct {
	ProductID     *string         `json:"product_id"`
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	NCM           string          `json:"ncm"`
	CFOP          string          `json:"cfop"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
}

// CreateDocumentRequest is the payload for POST /fiscal/documents
type CreateDocumentRequest struct {
	OrganizationID   string                `json:"organization_id" binding:"required,uuid"`
	Type             string                `json:"type" binding:"required"`
	CustomerName     string                `json:"customer_name"`
	CustomerDocument string                `json:"customer_document"`
	PaymentMethod    string                `json:"payment_method"`
	TotalAmount      decimal.Decimal       `json:"total_amount"`
	Items            []DocumentItemRequest `json:"items"`
}

// CancelDocumentRequest is the payload for POST /fiscal/documents/:id/cancel
type CancelDocumentRequest struct {
	CancelReason string `json:"cancel_reason"`
}

// TestPrinterRequest is the payload for POST /fiscal/printer/test
type TestPrinterRequest struct {
	PrinterModel string `json:"printer_model" binding:"required"`
	PrinterPort  string `json:"printer_port"`
}
