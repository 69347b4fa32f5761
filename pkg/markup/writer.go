/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: writer.go
Description: Line-oriented markup writer shared by the tree serializer and the schema
renderer. Handles indentation, compaction and escaping so both artifacts follow the
same presentation rules.
*/

package markup

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// Declaration is the XML header written before the document element
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Options controls how markup is laid out
type Options struct {
	Indent      string `json:"indent" mapstructure:"indent"`           // Per-level indentation when not compact
	Compact     bool   `json:"compact" mapstructure:"compact"`         // Emit everything on one line
	Declaration bool   `json:"declaration" mapstructure:"declaration"` // Write the XML header
}

// DefaultOptions returns compact output with a declaration and two-space indent
func DefaultOptions() Options {
	return Options{
		Indent:      "  ",
		Compact:     true,
		Declaration: true,
	}
}

// Writer accumulates markup lines
type Writer struct {
	opts Options
	buf  strings.Builder
}

// NewWriter creates a writer with the given layout options
func NewWriter(opts Options) *Writer {
	return &Writer{opts: opts}
}

// Line writes s at the given nesting depth
func (w *Writer) Line(depth int, s string) {
	if w.opts.Compact {
		w.buf.WriteString(s)
		return
	}
	for i := 0; i < depth; i++ {
		w.buf.WriteString(w.opts.Indent)
	}
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

// Header writes the XML declaration when enabled
func (w *Writer) Header() {
	if w.opts.Declaration {
		w.Line(0, Declaration)
	}
}

// String returns everything written so far
func (w *Writer) String() string {
	return w.buf.String()
}

// Escape returns s escaped for use in text content or a quoted attribute value.
// Newlines, carriage returns and tabs are escaped as character references.
func Escape(s string) string {
	if !strings.ContainsAny(s, "<>&'\"\r\n\t") && isPlain(s) {
		return s
	}
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func isPlain(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0xFFFD {
			return false
		}
	}
	return true
}
