package pdfsheet

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSheet_Render(t *testing.T) {
	pdf := Sheet{
		Title: "Report",
		Sections: []Section{
			{Heading: "Who", Rows: []Row{{Label: "Name", Value: "(Sari)"}}},
		},
	}.Render()

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-1.4\n")))
	assert.True(t, bytes.HasSuffix(pdf, []byte("%%EOF\n")))
	body := string(pdf)
	assert.Contains(t, body, "BT /F2 16 Tf 50 782 Td (Report) Tj ET")
	assert.Contains(t, body, "BT /F2 11 Tf 50 746 Td (Who) Tj ET")
	assert.Contains(t, body, "BT /F1 11 Tf 50 728 Td (Name) Tj ET")
	assert.Contains(t, body, "BT /F1 11 Tf 220 728 Td (\\(Sari\\)) Tj ET")
	assert.Contains(t, body, "xref\n0 7\n")
	assert.Contains(t, body, "/Root 1 0 R")
}

func TestSheet_RenderXrefOffsets(t *testing.T) {
	pdf := string(Sheet{Title: "Empty"}.Render())

	xref := strings.Index(pdf, "xref\n")
	entries := strings.Split(pdf[xref:], "\n")[3:9]
	for i, entry := range entries {
		off, err := strconv.Atoi(entry[:10])
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(pdf[off:], fmt.Sprintf("%d 0 obj", i+1)), "object %d", i+1)
	}

	start := strings.Index(pdf, "startxref\n") + len("startxref\n")
	got, err := strconv.Atoi(strings.TrimSuffix(pdf[start:], "\n%%EOF\n"))
	assert.NoError(t, err)
	assert.Equal(t, xref, got)
}

func TestSheet_RenderDropsOverflowRows(t *testing.T) {
	rows := make([]Row, 60)
	for i := range rows {
		rows[i] = Row{Label: fmt.Sprintf("row %d", i), Value: "x"}
	}
	body := string(Sheet{Sections: []Section{{Rows: rows}}}.Render())

	assert.Contains(t, body, "(row 0) Tj")
	assert.NotContains(t, body, "(row 59) Tj")
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\\b \(c\)`, Escape(`a\b (c)`))
	assert.Equal(t, "Jos? ?", Escape("José ☃"))
}
