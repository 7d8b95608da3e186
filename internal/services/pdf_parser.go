package services

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	// PageCount reads the page tree of an in-memory PDF.
	PageCount(data []byte) (int, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) PageCount(data []byte) (count int, err error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty PDF")
	}

	// The reader panics on some malformed trailers.
	defer func() {
		if r := recover(); r != nil {
			count, err = 0, fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	return r.NumPage(), nil
}
