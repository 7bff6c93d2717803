// Package pdfsheet renders small single-page A4 reports: a title followed by
// sections of label/value rows.
package pdfsheet

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	pageWidth   = 595
	pageHeight  = 842
	marginLeft  = 50
	valueColumn = 220
	lineHeight  = 18
)

type Row struct {
	Label string
	Value string
}

type Section struct {
	Heading string
	Rows    []Row
}

type Sheet struct {
	Title    string
	Sections []Section
}

// Render lays the sheet out top to bottom. Rows that would fall below the
// bottom margin are dropped.
func (s Sheet) Render() []byte {
	var content strings.Builder
	y := pageHeight - 60

	text := func(font string, size, x int, v string) {
		fmt.Fprintf(&content, "BT /%s %d Tf %d %d Td (%s) Tj ET\n", font, size, x, y, Escape(v))
	}

	if s.Title != "" {
		text("F2", 16, marginLeft, s.Title)
		y -= lineHeight * 2
	}
	for _, sec := range s.Sections {
		if y < marginLeft {
			break
		}
		if sec.Heading != "" {
			text("F2", 11, marginLeft, sec.Heading)
			y -= lineHeight
		}
		for _, row := range sec.Rows {
			if y < marginLeft {
				break
			}
			text("F1", 11, marginLeft, row.Label)
			text("F1", 11, valueColumn, row.Value)
			y -= lineHeight
		}
		y -= lineHeight / 2
	}

	w := newObjectWriter()
	catalog := w.add("<< /Type /Catalog /Pages 2 0 R >>")
	w.add("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	w.add(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] "+
		"/Resources << /Font << /F1 4 0 R /F2 5 0 R >> >> /Contents 6 0 R >>", pageWidth, pageHeight))
	w.add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	w.add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>")
	stream := strings.TrimSuffix(content.String(), "\n")
	w.add(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	return w.finish(catalog)
}

// objectWriter numbers objects from 1 in the order they are added and
// remembers where each one starts for the xref table.
type objectWriter struct {
	buf     bytes.Buffer
	offsets []int
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteString("%PDF-1.4\n")
	return w
}

func (w *objectWriter) add(body string) int {
	w.offsets = append(w.offsets, w.buf.Len())
	n := len(w.offsets)
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nendobj\n", n, body)
	return n
}

func (w *objectWriter) finish(root int) []byte {
	start := w.buf.Len()
	size := len(w.offsets) + 1
	fmt.Fprintf(&w.buf, "xref\n0 %d\n0000000000 65535 f \n", size)
	for _, off := range w.offsets {
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, root, start)
	return w.buf.Bytes()
}

// Escape quotes string delimiters. The standard fonts only cover printable
// ASCII, so anything else becomes '?'.
func Escape(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r > 0x7e:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
