package fiscalprinter

import (
	"fmt"
	"strings"
)

// TextDocument builds the fixed-width textual rendering of a receipt or
// report. Real hardware families would translate this layer into their wire
// protocol; the simulated driver emits the text as-is.
type TextDocument struct {
	b     strings.Builder
	width int // print width in characters (default 48 for 80mm paper)
}

// NewTextDocument creates a document with the given character width.
// Common widths: 32 for 58mm paper, 48 for 80mm paper.
func NewTextDocument(charWidth int) *TextDocument {
	if charWidth <= 0 {
		charWidth = 48
	}
	return &TextDocument{width: charWidth}
}

// Line writes a line of text.
func (d *TextDocument) Line(s string) *TextDocument {
	d.b.WriteString(s)
	d.b.WriteByte('\n')
	return d
}

// LineF writes a formatted line of text.
func (d *TextDocument) LineF(format string, args ...interface{}) *TextDocument {
	return d.Line(fmt.Sprintf(format, args...))
}

// Center writes a line centered within the print width.
func (d *TextDocument) Center(s string) *TextDocument {
	pad := (d.width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return d.Line(strings.Repeat(" ", pad) + s)
}

// Blank writes an empty line.
func (d *TextDocument) Blank() *TextDocument {
	d.b.WriteByte('\n')
	return d
}

// Separator prints a full-width separator line (e.g. "------------------------").
func (d *TextDocument) Separator(char byte) *TextDocument {
	return d.Line(strings.Repeat(string(char), d.width))
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// Example: "TOTAL                    R$ 100.00"
func (d *TextDocument) KeyValue(key, value string) *TextDocument {
	spaces := d.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	d.b.WriteString(key)
	d.b.WriteString(strings.Repeat(" ", spaces))
	d.b.WriteString(value)
	d.b.WriteByte('\n')
	return d
}

// ItemLine prints a receipt item line: qty x name, then right-aligned total.
// Example: "2x Widget                    20.00"
func (d *TextDocument) ItemLine(qty, name, total string) *TextDocument {
	prefix := fmt.Sprintf("%sx %s", qty, name)
	spaces := d.width - len(prefix) - len(total)
	if spaces < 1 {
		spaces = 1
	}
	d.b.WriteString(prefix)
	d.b.WriteString(strings.Repeat(" ", spaces))
	d.b.WriteString(total)
	d.b.WriteByte('\n')
	return d
}

// String returns the accumulated text.
func (d *TextDocument) String() string {
	return d.b.String()
}
