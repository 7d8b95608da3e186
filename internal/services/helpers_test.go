package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-matcher/internal/models"
)

// minimalPDF builds a well-formed PDF with the given number of blank pages.
func minimalPDF(pages int) []byte {
	var buf bytes.Buffer
	offsets := []int{}

	buf.WriteString("%PDF-1.4\n")

	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}

	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		writeObj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

func fileHeader(t *testing.T, name, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, name))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["resume"][0]
}

func pdfResume(name string) *models.ResumeFile {
	data := minimalPDF(1)
	return &models.ResumeFile{
		Filename:    name,
		ContentType: models.PDFContentType,
		Size:        int64(len(data)),
		Data:        data,
	}
}

type analyzeCall struct {
	resume         *models.ResumeFile
	jobDescription string
}

type fakeAnalyzer struct {
	mu     sync.Mutex
	calls  []analyzeCall
	result *models.AnalysisResult
	err    error
	// block, when set, holds Analyze until it is closed.
	block chan struct{}
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, resume *models.ResumeFile, jobDescription string) (*models.AnalysisResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, analyzeCall{resume: resume, jobDescription: jobDescription})
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakePDFParser struct {
	pages int
	err   error
}

func (f *fakePDFParser) PageCount([]byte) (int, error) {
	return f.pages, f.err
}
