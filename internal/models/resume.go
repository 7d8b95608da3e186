package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PDFContentType is the only document type the upload control accepts.
const PDFContentType = "application/pdf"

type ResumeFile struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Pages       int       `json:"pages,omitempty"`
	Data        []byte    `json:"-"`
	SelectedAt  time.Time `json:"selected_at"`
}

func (r *ResumeFile) IsPDF() bool {
	return r != nil && r.ContentType == PDFContentType
}

// SizeKB renders the size the way the drop zone shows it, e.g. "45.12 KB".
func (r *ResumeFile) SizeKB() string {
	if r == nil {
		return "0.00 KB"
	}
	return fmt.Sprintf("%.2f KB", float64(r.Size)/1024)
}
