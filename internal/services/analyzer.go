package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
)

const (
	analyzePath = "/analyze"

	fieldResume         = "resume"
	fieldJobDescription = "jobDescription"

	// GenericAnalysisError is shown when the service gives no usable message.
	GenericAnalysisError = "Failed to analyze your resume. Please try again later."
)

// AnalyzerError is a non-2xx answer from the analysis service.
type AnalyzerError struct {
	StatusCode int
	Message    string
}

func (e *AnalyzerError) Error() string {
	return fmt.Sprintf("analysis service returned status %d: %s", e.StatusCode, e.Message)
}

type AnalyzerClient interface {
	Analyze(ctx context.Context, resume *models.ResumeFile, jobDescription string) (*models.AnalysisResult, error)
}

type analyzerClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAnalyzerClient builds a client for {baseURL}/analyze. A zero timeout
// leaves requests unbounded.
func NewAnalyzerClient(baseURL string, timeout time.Duration, l *zap.Logger) AnalyzerClient {
	return &analyzerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.OrNop(l),
	}
}

func (c *analyzerClient) Analyze(ctx context.Context, resume *models.ResumeFile, jobDescription string) (*models.AnalysisResult, error) {
	body, contentType, err := buildAnalyzeBody(resume, jobDescription)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + analyzePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("make request", zap.String("url", url), zap.Int64("resume_size", resume.Size))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call analysis service: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AnalyzerError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
		}
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}
	result.Normalize()

	return &result, nil
}

func buildAnalyzeBody(resume *models.ResumeFile, jobDescription string) (io.Reader, string, error) {
	if resume == nil {
		return nil, "", ErrNoFile
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldResume, resume.Filename))
	header.Set("Content-Type", resume.ContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create resume part: %w", err)
	}
	if _, err := part.Write(resume.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write resume part: %w", err)
	}

	if err := writer.WriteField(fieldJobDescription, jobDescription); err != nil {
		return nil, "", fmt.Errorf("failed to write job description field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

// errorMessage pulls the "error" string out of a failure body, falling back
// to the generic message for any other shape.
func errorMessage(body []byte) string {
	var resp models.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return GenericAnalysisError
	}
	if msg := strings.TrimSpace(resp.Error); msg != "" {
		return msg
	}
	return GenericAnalysisError
}
