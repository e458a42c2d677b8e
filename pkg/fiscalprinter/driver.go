package fiscalprinter

import (
	"time"

	"github.com/shopspring/decimal"
)

// Driver is the capability interface over a fiscal printer. The provided
// implementation is simulated; real hardware families plug in through the
// Registry. Operations that need a connection establish one automatically,
// except CheckStatus which reports the session state as-is.
type Driver interface {
	// Connect establishes a session. Repeated calls re-affirm the session.
	Connect() Result
	// Disconnect clears the session. Always succeeds.
	Disconnect() Result
	// CheckStatus reports readiness; fails with CodeNotConnected before any Connect.
	CheckStatus() Result
	// OpenCashDrawer pulses the drawer kick.
	OpenCashDrawer() Result
	// PrintTestPage prints a configuration test page.
	PrintTestPage() Result
	// PrintFiscalReceipt prints a generic fiscal receipt.
	PrintFiscalReceipt(r *Receipt) Result
	// PrintNFCe prints an NFC-e consumer receipt with access key and protocol.
	PrintNFCe(r *Receipt) Result
	// PrintXReport prints a partial-day movement report.
	PrintXReport() Result
	// PrintZReport prints the day-close report.
	PrintZReport() Result
	// PrintDailySalesReport prints the aggregated sales summary for a date.
	PrintDailySalesReport(date time.Time, totalAmount decimal.Decimal, totalSales int64) Result
}
