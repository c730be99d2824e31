package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-screener/internal/models"
)

func TestExtractTextPlain(t *testing.T) {
	extractor := NewTextExtractor()

	text, err := extractor.ExtractText(models.NewDocument("resume.txt", []byte("Jane Doe\njane.doe@company.com")))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\njane.doe@company.com", text)
}

func TestExtractTextInvalidUTF8(t *testing.T) {
	extractor := NewTextExtractor()

	_, err := extractor.ExtractText(models.NewDocument("broken.txt", []byte{0xff, 0xfe, 0xfd}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadableDocument)
}

func TestExtractTextMalformedPDF(t *testing.T) {
	extractor := NewTextExtractor()

	_, err := extractor.ExtractText(models.NewDocument("resume.pdf", []byte("definitely not a pdf")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadableDocument)
}

func TestExtractTextMalformedDocx(t *testing.T) {
	extractor := NewTextExtractor()

	_, err := extractor.ExtractText(models.NewDocument("resume.docx", []byte("not a zip archive")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadableDocument)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses horizontal whitespace",
			input: "John   \t Smith",
			want:  "John Smith",
		},
		{
			name:  "drops blank lines and unifies line endings",
			input: "John Smith\r\n\r\n  \nEmail: john@x.com\r",
			want:  "John Smith\nEmail: john@x.com",
		},
		{
			name:  "replaces invalid utf-8",
			input: "Python\xffSQL",
			want:  "Python SQL",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Python &amp; SQL</w:t><w:br/><w:t>AWS</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	assert.Equal(t, "Jane Doe\nSkills:\tPython & SQL\nAWS\n", docxXMLToText(xml))
}

// buildDocx packs paragraphs into a minimal WordprocessingML archive.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}

	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// buildPDF writes a single-page PDF that shows each line with Helvetica.
func buildPDF(lines ...string) []byte {
	var content bytes.Buffer
	content.WriteString("BT /F1 12 Tf 14 TL 72 720 Td")
	for i, line := range lines {
		if i > 0 {
			content.WriteString(" T*")
		}
		fmt.Fprintf(&content, " (%s) Tj", line)
	}
	content.WriteString(" ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractTextDocx(t *testing.T) {
	extractor := NewTextExtractor()

	data := buildDocx(t, "Jane Doe", "jane.doe@company.com", "Skills: Python &amp; SQL")
	text, err := extractor.ExtractText(models.NewDocument("jane.docx", data))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\njane.doe@company.com\nSkills: Python & SQL\n", text)
}

func TestExtractTextPDF(t *testing.T) {
	extractor := NewTextExtractor()

	data := buildPDF("Jane Doe", "Skills: python, sql")
	text, err := extractor.ExtractText(models.NewDocument("jane.pdf", data))
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe\nSkills: python, sql")

	profile := NewFieldExtractor(nil).Extract(text)
	assert.Equal(t, []string{"python", "sql"}, profile.Skills)
}
