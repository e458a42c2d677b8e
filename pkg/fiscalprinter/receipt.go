package fiscalprinter

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptItem is a single line item on a printed receipt.
type ReceiptItem struct {
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
}

// Receipt is a value object describing a printable fiscal document.
// It is composed from document data at print time, not persisted.
type Receipt struct {
	DocumentNumber        string          `json:"document_number"`
	IssuedAt              time.Time       `json:"issued_at"`
	CustomerName          string          `json:"customer_name,omitempty"`
	CustomerDocument      string          `json:"customer_document,omitempty"`
	PaymentMethod         string          `json:"payment_method,omitempty"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	AccessKey             string          `json:"access_key,omitempty"`
	AuthorizationProtocol string          `json:"authorization_protocol,omitempty"`
	Items                 []ReceiptItem   `json:"items,omitempty"`
}
