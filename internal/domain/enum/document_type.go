package enum

// DocumentType discriminates which printer operation a document is rendered with.
// Types other than nfce are printed as a generic fiscal receipt.
type DocumentType string

const (
	DocumentTypeNFCe    DocumentType = "nfce"
	DocumentTypeReceipt DocumentType = "receipt"
)

func (t DocumentType) String() string {
	return string(t)
}
