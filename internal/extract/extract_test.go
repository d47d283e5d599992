package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMinimalPDF produces a one-page PDF with a single text run, xref
// offsets computed from the actual byte positions.
func buildMinimalPDF(t *testing.T, text string) []byte {
	t.Helper()

	var b bytes.Buffer
	offsets := make([]int, 6)
	b.WriteString("%PDF-1.4\n")

	write := func(n int, s string) {
		offsets[n] = b.Len()
		b.WriteString(s)
	}

	write(1, "1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	write(2, "2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	write(3, "3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	write(4, fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream))
	write(5, "5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xref := b.Len()
	b.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		b.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	b.WriteString(fmt.Sprintf("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", xref))
	return b.Bytes()
}

// buildMinimalDOCX zips a word/document.xml (plus the rels entry the OOXML
// reader requires) containing the given paragraphs.
func buildMinimalDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	doc, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write(body.Bytes())
	require.NoError(t, err)

	rels, err := zw.Create("word/_rels/document.xml.rels")
	require.NoError(t, err)
	_, err = rels.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractTextFromBytes_PDF(t *testing.T) {
	data := buildMinimalPDF(t, "Hello PDF world")

	text, err := New().ExtractTextFromBytes(context.Background(), data, MimePDF)

	require.NoError(t, err)
	assert.Contains(t, text, "Hello PDF world")
}

func TestExtractTextFromBytes_DOCX(t *testing.T) {
	data := buildMinimalDOCX(t, "First paragraph.", "Second paragraph.")

	text, err := New().ExtractTextFromBytes(context.Background(), data, MimeDOCX)

	require.NoError(t, err)
	assert.Contains(t, text, "First paragraph.")
	assert.Contains(t, text, "Second paragraph.")
}

func TestExtractTextFromBytes_LegacyDOCRoutedThroughDOCX(t *testing.T) {
	data := buildMinimalDOCX(t, "Legacy upload.")

	text, err := New().ExtractTextFromBytes(context.Background(), data, MimeDOC)

	require.NoError(t, err)
	assert.Contains(t, text, "Legacy upload.")
}

func TestExtractTextFromBytes_MimeParamsIgnored(t *testing.T) {
	data := buildMinimalDOCX(t, "With charset param.")

	text, err := New().ExtractTextFromBytes(context.Background(),
		data, MimeDOCX+"; charset=utf-8")

	require.NoError(t, err)
	assert.Contains(t, text, "With charset param.")
}

func TestExtractTextFromBytes_UnsupportedType(t *testing.T) {
	_, err := New().ExtractTextFromBytes(context.Background(), []byte("plain text"), "text/plain")

	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractTextFromBytes_CorruptPDF(t *testing.T) {
	_, err := New().ExtractTextFromBytes(context.Background(), []byte("not a pdf"), MimePDF)

	assert.Error(t, err)
}

func TestExtractTextFromBytes_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ExtractTextFromBytes(ctx, buildMinimalDOCX(t, "x"), MimeDOCX)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestAllowedType(t *testing.T) {
	assert.True(t, AllowedType(MimePDF))
	assert.True(t, AllowedType(MimeDOCX))
	assert.True(t, AllowedType(MimeDOC))
	assert.True(t, AllowedType("application/pdf; charset=binary"))
	assert.False(t, AllowedType("text/plain"))
	assert.False(t, AllowedType(""))
}
