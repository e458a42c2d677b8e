package enum

// DocumentStatus represents the lifecycle status of a fiscal document.
// The only permitted transition is emitida -> cancelada.
type DocumentStatus string

const (
	DocumentStatusIssued   DocumentStatus = "emitida"
	DocumentStatusCanceled DocumentStatus = "cancelada"
)

func (s DocumentStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is one of the known values.
func (s DocumentStatus) IsValid() bool {
	return s == DocumentStatusIssued || s == DocumentStatusCanceled
}
