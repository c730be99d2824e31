package models

import (
	"path/filepath"
	"strings"
)

type DocumentKind string

const (
	KindPDF  DocumentKind = "pdf"
	KindDOCX DocumentKind = "docx"
	KindText DocumentKind = "text"
)

// Document is an uploaded file as handed over by the transport layer.
type Document struct {
	Filename string
	Kind     DocumentKind
	Data     []byte
}

func NewDocument(filename string, data []byte) Document {
	return Document{
		Filename: filename,
		Kind:     KindFromFilename(filename),
		Data:     data,
	}
}

// KindFromFilename maps a file extension to a document kind. Anything that is
// not a PDF or DOCX is treated as plain text.
func KindFromFilename(filename string) DocumentKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	default:
		return KindText
	}
}

// Stem returns the filename without directory and extension.
func (d Document) Stem() string {
	base := filepath.Base(d.Filename)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
