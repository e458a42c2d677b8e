package fiscalprinter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SimulatedDriver emulates a thermal fiscal printer: it renders documents as
// fixed-width text and emits them to a writer (stdout by default). There is
// no error state; absence of a physical device always succeeds.
type SimulatedDriver struct {
	model string
	port  string
	width int
	out   io.Writer

	mu        sync.Mutex
	connected bool
	serial    string
}

// NewSimulatedDriver creates a simulated driver for the given model and port.
func NewSimulatedDriver(model, port string) *SimulatedDriver {
	return &SimulatedDriver{
		model: model,
		port:  port,
		width: 48, // 80mm paper
		out:   os.Stdout,
	}
}

// SetWidth changes the rendering width in characters. Values below 1 keep
// the 48-column default.
func (d *SimulatedDriver) SetWidth(w int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w > 0 {
		d.width = w
	}
}

// SetOutput redirects the simulated print output (tests pass a buffer).
func (d *SimulatedDriver) SetOutput(w io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out = w
}

// Connect establishes the simulated session, generating a serial number on
// first connect. Repeated calls keep the existing session.
func (d *SimulatedDriver) Connect() Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		d.connected = true
		d.serial = "SIM-" + strings.ToUpper(uuid.New().String()[:8])
	}
	return OK("printer connected", map[string]any{
		"serial_number": d.serial,
		"model":         d.model,
		"port":          d.port,
	})
}

// Disconnect clears the session. Always succeeds.
func (d *SimulatedDriver) Disconnect() Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.connected = false
	d.serial = ""
	return OK("printer disconnected", nil)
}

// CheckStatus reports readiness without connecting.
func (d *SimulatedDriver) CheckStatus() Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return Failed(CodeNotConnected, "printer not connected")
	}
	return OK("printer ready", map[string]any{
		"ready":       true,
		"paper":       "ok",
		"drawer_open": false,
	})
}

// OpenCashDrawer pulses the (simulated) drawer kick, connecting if needed.
func (d *SimulatedDriver) OpenCashDrawer() Result {
	d.ensureConnected()
	return OK("cash drawer opened", map[string]any{"drawer_open": true})
}

// PrintTestPage prints a configuration test page.
func (d *SimulatedDriver) PrintTestPage() Result {
	d.ensureConnected()

	doc := NewTextDocument(d.width)
	doc.Separator('=').
		Center("PRINTER TEST PAGE").
		Separator('=').
		KeyValue("Model:", d.model).
		KeyValue("Port:", d.port).
		KeyValue("Serial:", d.serialNumber()).
		KeyValue("Date:", time.Now().Format("02/01/2006 15:04:05")).
		Separator('-').
		Center("0123456789 ABCDEFGHIJKLMNOPQRSTUVWXYZ").
		Separator('=')

	return d.emit("test page printed", doc.String())
}

// PrintFiscalReceipt prints a generic fiscal receipt.
func (d *SimulatedDriver) PrintFiscalReceipt(r *Receipt) Result {
	d.ensureConnected()
	return d.emit("fiscal receipt printed", d.renderReceipt("CUPOM FISCAL", r))
}

// PrintNFCe prints an NFC-e consumer receipt.
func (d *SimulatedDriver) PrintNFCe(r *Receipt) Result {
	d.ensureConnected()
	return d.emit("NFC-e printed", d.renderReceipt("DANFE NFC-e", r))
}

// PrintXReport prints a partial-day movement report.
func (d *SimulatedDriver) PrintXReport() Result {
	d.ensureConnected()
	return d.emit("X report printed", d.renderReport("LEITURA X"))
}

// PrintZReport prints the day-close report.
func (d *SimulatedDriver) PrintZReport() Result {
	d.ensureConnected()
	return d.emit("Z report printed", d.renderReport("REDUCAO Z"))
}

// PrintDailySalesReport prints the aggregated sales summary for a date.
func (d *SimulatedDriver) PrintDailySalesReport(date time.Time, totalAmount decimal.Decimal, totalSales int64) Result {
	d.ensureConnected()

	doc := NewTextDocument(d.width)
	doc.Separator('=').
		Center("RELATORIO DE VENDAS DIARIO").
		Separator('=').
		KeyValue("Date:", date.Format("02/01/2006")).
		KeyValue("Documents issued:", fmt.Sprintf("%d", totalSales)).
		KeyValue("Total amount:", "R$ "+totalAmount.StringFixed(2)).
		Separator('=')

	return d.emit("daily sales report printed", doc.String())
}

func (d *SimulatedDriver) ensureConnected() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		d.connected = true
		d.serial = "SIM-" + strings.ToUpper(uuid.New().String()[:8])
	}
}

func (d *SimulatedDriver) serialNumber() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.serial
}

// emit writes the rendered text to the configured output and returns it in
// the result for audit/preview.
func (d *SimulatedDriver) emit(message, rendering string) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintln(d.out, rendering)
	return OK(message, map[string]any{"rendering": rendering})
}

func (d *SimulatedDriver) renderReceipt(title string, r *Receipt) string {
	doc := NewTextDocument(d.width)
	doc.Separator('=').
		Center(title).
		Separator('=').
		KeyValue("Document:", r.DocumentNumber).
		KeyValue("Date:", r.IssuedAt.Format("02/01/2006 15:04:05"))

	if r.CustomerName != "" {
		doc.KeyValue("Customer:", r.CustomerName)
	}
	if r.CustomerDocument != "" {
		doc.KeyValue("CPF/CNPJ:", r.CustomerDocument)
	}

	if len(r.Items) > 0 {
		doc.Separator('-')
		for _, item := range r.Items {
			name := item.Description
			if item.Code != "" {
				name = item.Code + " " + item.Description
			}
			doc.ItemLine(item.Quantity.String(), name, item.Total.StringFixed(2))
			doc.LineF("  %s x R$ %s %s", item.Quantity.String(), item.UnitPrice.StringFixed(2), item.UnitOfMeasure)
		}
	}

	doc.Separator('-')
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}
	doc.KeyValue("TOTAL:", "R$ "+r.TotalAmount.StringFixed(2))
	doc.Separator('-')

	if r.AccessKey != "" {
		doc.Line("Access key:").Line(r.AccessKey)
	}
	if r.AuthorizationProtocol != "" {
		doc.KeyValue("Protocol:", r.AuthorizationProtocol)
	}

	doc.Separator('=')
	return doc.String()
}

func (d *SimulatedDriver) renderReport(title string) string {
	doc := NewTextDocument(d.width)
	doc.Separator('=').
		Center(title).
		Separator('=').
		KeyValue("Model:", d.model).
		KeyValue("Serial:", d.serialNumber()).
		KeyValue("Date:", time.Now().Format("02/01/2006 15:04:05")).
		Separator('=')
	return doc.String()
}
