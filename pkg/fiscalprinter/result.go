package fiscalprinter

// Result codes returned by driver operations.
const (
	CodeOK               = 0
	CodeNotConnected     = 1
	CodeUnsupportedModel = 2
	CodeDriverFailure    = 3
)

// Result is the outcome of a printer operation. Drivers report failures
// through Result rather than errors: printing is advisory and must never
// abort the calling flow.
type Result struct {
	Success bool           `json:"success"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// OK builds a successful result.
func OK(message string, data map[string]any) Result {
	return Result{Success: true, Code: CodeOK, Message: message, Data: data}
}

// Failed builds a failed result with the given code.
func Failed(code int, message string) Result {
	return Result{Success: false, Code: code, Message: message}
}

// Unsupported builds the result returned when no driver family matches a
// configured printer model.
func Unsupported(model string) Result {
	return Failed(CodeUnsupportedModel, "unsupported printer model: "+model)
}
