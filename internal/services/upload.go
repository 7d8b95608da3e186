package services

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
)

var (
	ErrNoFile              = errors.New("no file selected")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

type UploadService interface {
	ReadResume(file *multipart.FileHeader) (*models.ResumeFile, error)
}

type uploadService struct {
	pdfParser   PDFParserService
	maxFileSize int64
	logger      *zap.Logger
	now         func() time.Time
}

func NewUploadService(pdfParser PDFParserService, maxFileSize int64, l *zap.Logger) UploadService {
	return &uploadService{
		pdfParser:   pdfParser,
		maxFileSize: maxFileSize,
		logger:      logger.OrNop(l),
		now:         time.Now,
	}
}

// ReadResume validates the declared type and size of an uploaded file and
// loads it into memory. Nothing is written to disk.
func (s *uploadService) ReadResume(file *multipart.FileHeader) (*models.ResumeFile, error) {
	if file == nil {
		return nil, ErrNoFile
	}

	contentType := declaredType(file)
	if contentType != models.PDFContentType {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, contentType)
	}

	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrFileTooLarge, file.Size, s.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	resume := &models.ResumeFile{
		ID:          uuid.New(),
		Filename:    filepath.Base(file.Filename),
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
		SelectedAt:  s.now(),
	}

	pages, err := s.pdfParser.PageCount(data)
	if err != nil {
		s.logger.Debug("could not read page count", zap.String("filename", resume.Filename), zap.Error(err))
	} else {
		resume.Pages = pages
	}

	return resume, nil
}

func declaredType(file *multipart.FileHeader) string {
	raw := file.Header.Get("Content-Type")
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return mediaType
}
