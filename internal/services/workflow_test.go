package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
)

func newTestWorkflow(analyzer AnalyzerClient) *Workflow {
	return NewWorkflow(uuid.New(), analyzer, nil, zap.NewNop())
}

// analyzeNow starts a run and completes it on the calling goroutine.
func analyzeNow(w *Workflow) error {
	job, err := w.Start()
	if err != nil {
		return err
	}
	w.Run(context.Background(), job)
	return nil
}

func TestWorkflowSelectFile(t *testing.T) {
	t.Run("rejects non-PDF and keeps current selection", func(t *testing.T) {
		w := newTestWorkflow(&fakeAnalyzer{})
		first := pdfResume("first.pdf")
		require.NoError(t, w.SelectFile(first))

		for _, contentType := range []string{"image/png", "text/plain", "application/msword", ""} {
			err := w.SelectFile(&models.ResumeFile{Filename: "x", ContentType: contentType})
			assert.ErrorIs(t, err, ErrUnsupportedFileType, contentType)
			assert.Same(t, first, w.State().Resume, contentType)
		}
	})

	t.Run("second PDF replaces the first", func(t *testing.T) {
		w := newTestWorkflow(&fakeAnalyzer{})
		first := pdfResume("first.pdf")
		second := pdfResume("second.pdf")

		require.NoError(t, w.SelectFile(first))
		require.NoError(t, w.SelectFile(second))

		assert.Same(t, second, w.State().Resume)
	})

	t.Run("nil file", func(t *testing.T) {
		w := newTestWorkflow(&fakeAnalyzer{})
		assert.ErrorIs(t, w.SelectFile(nil), ErrNoFile)
	})
}

func TestWorkflowRemoveFile(t *testing.T) {
	w := newTestWorkflow(&fakeAnalyzer{})
	require.NoError(t, w.SelectFile(pdfResume("cv.pdf")))

	w.RemoveFile()

	state := w.State()
	assert.Nil(t, state.Resume)
	assert.False(t, state.CanAnalyze)
}

func TestWorkflowStartPreconditions(t *testing.T) {
	tests := []struct {
		name        string
		resume      *models.ResumeFile
		description string
		wantErr     error
	}{
		{name: "no file", resume: nil, description: "Go developer", wantErr: ErrResumeRequired},
		{name: "no file and no text reports the file first", resume: nil, description: "", wantErr: ErrResumeRequired},
		{name: "empty description", resume: pdfResume("cv.pdf"), description: "", wantErr: ErrDescriptionRequired},
		{name: "whitespace description", resume: pdfResume("cv.pdf"), description: " \n\t ", wantErr: ErrDescriptionRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{}
			w := newTestWorkflow(analyzer)
			if tt.resume != nil {
				require.NoError(t, w.SelectFile(tt.resume))
			}
			w.SetDescription(tt.description)

			err := analyzeNow(w)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, analyzer.callCount())
			assert.Nil(t, w.Result())
			assert.False(t, w.Analyzing())
		})
	}
}

func TestWorkflowAnalyzeSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{result: &models.AnalysisResult{
		MatchedKeywords: []string{"A"},
		MissingKeywords: []string{},
		Suggestions:     []string{"S"},
	}}
	w := newTestWorkflow(analyzer)
	resume := pdfResume("cv.pdf")
	require.NoError(t, w.SelectFile(resume))
	w.SetDescription("Needs A")

	require.NoError(t, analyzeNow(w))

	result := w.Result()
	require.NotNil(t, result)
	assert.Equal(t, models.StatusCompleted, result.Status)
	assert.Empty(t, result.Error)
	require.NotNil(t, result.Data)
	assert.Empty(t, result.Data.MissingKeywords)
	assert.Equal(t, []string{"A"}, result.Data.MatchedKeywords)
	assert.False(t, w.Analyzing())

	require.Equal(t, 1, analyzer.callCount())
	assert.Same(t, resume, analyzer.calls[0].resume)
	assert.Equal(t, "Needs A", analyzer.calls[0].jobDescription)
}

func TestWorkflowAnalyzeFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "server message is surfaced",
			err:     &AnalyzerError{StatusCode: 400, Message: "bad file"},
			wantMsg: "bad file",
		},
		{
			name:    "wrapped server error",
			err:     errors.Join(errors.New("outer"), &AnalyzerError{StatusCode: 500, Message: "boom"}),
			wantMsg: "boom",
		},
		{
			name:    "transport error falls back to generic message",
			err:     errors.New("connection refused"),
			wantMsg: GenericAnalysisError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorkflow(&fakeAnalyzer{err: tt.err})
			require.NoError(t, w.SelectFile(pdfResume("cv.pdf")))
			w.SetDescription("jd")

			require.NoError(t, analyzeNow(w))

			result := w.Result()
			require.NotNil(t, result)
			assert.Equal(t, models.StatusFailed, result.Status)
			assert.Equal(t, tt.wantMsg, result.Error)
			assert.Nil(t, result.Data)
			assert.False(t, w.Analyzing())
		})
	}
}

func TestWorkflowLoadingStateAndSingleFlight(t *testing.T) {
	analyzer := &fakeAnalyzer{
		result: &models.AnalysisResult{},
		block:  make(chan struct{}),
	}
	w := newTestWorkflow(analyzer)
	require.NoError(t, w.SelectFile(pdfResume("cv.pdf")))
	w.SetDescription("jd")

	job, err := w.Start()
	require.NoError(t, err)

	state := w.State()
	assert.True(t, state.Analyzing)
	assert.False(t, state.CanAnalyze)
	require.NotNil(t, state.Result)
	assert.True(t, state.Result.IsLoading())

	_, err = w.Start()
	assert.ErrorIs(t, err, ErrAnalysisInProgress)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background(), job)
		close(done)
	}()
	close(analyzer.block)
	<-done

	assert.False(t, w.Analyzing())
	assert.Equal(t, models.StatusCompleted, w.Result().Status)
	assert.Equal(t, job.RunID, w.Result().RunID)
	assert.Equal(t, 1, analyzer.callCount())
}

func TestWorkflowInputChangeDiscardsResult(t *testing.T) {
	newCompleted := func(t *testing.T) *Workflow {
		w := newTestWorkflow(&fakeAnalyzer{result: &models.AnalysisResult{}})
		require.NoError(t, w.SelectFile(pdfResume("cv.pdf")))
		w.SetDescription("jd")
		require.NoError(t, analyzeNow(w))
		require.NotNil(t, w.Result())
		return w
	}

	t.Run("new file", func(t *testing.T) {
		w := newCompleted(t)
		require.NoError(t, w.SelectFile(pdfResume("other.pdf")))
		assert.Nil(t, w.Result())
	})

	t.Run("removed file", func(t *testing.T) {
		w := newCompleted(t)
		w.RemoveFile()
		assert.Nil(t, w.Result())
	})

	t.Run("new description", func(t *testing.T) {
		w := newCompleted(t)
		w.SetDescription("jd, edited")
		assert.Nil(t, w.Result())
	})

	t.Run("example description", func(t *testing.T) {
		w := newCompleted(t)
		w.LoadExample()
		assert.Nil(t, w.Result())
		assert.Equal(t, ExampleJobDescription, w.State().Description)
	})

	t.Run("identical description keeps result", func(t *testing.T) {
		w := newCompleted(t)
		w.SetDescription("jd")
		assert.NotNil(t, w.Result())
	})

	t.Run("rejected file keeps result", func(t *testing.T) {
		w := newCompleted(t)
		_ = w.SelectFile(&models.ResumeFile{ContentType: "image/png"})
		assert.NotNil(t, w.Result())
	})
}

func TestWorkflowDropsStaleResponse(t *testing.T) {
	analyzer := &fakeAnalyzer{
		result: &models.AnalysisResult{MatchedKeywords: []string{"stale"}},
		block:  make(chan struct{}),
	}
	w := newTestWorkflow(analyzer)
	require.NoError(t, w.SelectFile(pdfResume("cv.pdf")))
	w.SetDescription("jd")

	job, err := w.Start()
	require.NoError(t, err)

	w.SetDescription("a different job")
	assert.Nil(t, w.Result())
	assert.True(t, w.Analyzing())

	close(analyzer.block)
	w.Run(context.Background(), job)

	assert.Nil(t, w.Result())
	assert.False(t, w.Analyzing())
	assert.True(t, w.State().CanAnalyze)
}

func TestWorkflowAbort(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	w := newTestWorkflow(analyzer)
	require.NoError(t, w.SelectFile(pdfResume("cv.pdf")))
	w.SetDescription("jd")

	job, err := w.Start()
	require.NoError(t, err)

	w.Abort(job, "")

	assert.False(t, w.Analyzing())
	assert.Equal(t, models.StatusFailed, w.Result().Status)
	assert.Equal(t, GenericAnalysisError, w.Result().Error)
	assert.Equal(t, 0, analyzer.callCount())
}

func TestWorkflowMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	w := NewWorkflow(uuid.New(), &fakeAnalyzer{result: &models.AnalysisResult{}}, metrics, zap.NewNop())
	assert.ErrorIs(t, analyzeNow(w), ErrResumeRequired)

	require.NoError(t, w.SelectFile(pdfResume("cv.pdf")))
	w.SetDescription("jd")
	require.NoError(t, analyzeNow(w))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.refused.WithLabelValues("resume_missing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.analyses.WithLabelValues(OutcomeCompleted)))
}

func TestWorkflowLastSeen(t *testing.T) {
	w := newTestWorkflow(&fakeAnalyzer{})
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	w.now = func() time.Time { return base }

	w.SetDescription("jd")

	assert.Equal(t, base, w.LastSeen())
}

func TestWorkflowSyncDescriptionIgnoresStaleUpdates(t *testing.T) {
	w := newTestWorkflow(&fakeAnalyzer{})

	assert.True(t, w.SyncDescription("Go", 1))
	assert.True(t, w.SyncDescription("Go dev", 3))
	assert.False(t, w.SyncDescription("Go d", 2))
	assert.False(t, w.SyncDescription("Go de", 3))

	state := w.State()
	assert.Equal(t, "Go dev", state.Description)
	assert.Equal(t, int64(3), state.SyncSeq)
}

func TestWorkflowSyncDescriptionClearsResult(t *testing.T) {
	w := newTestWorkflow(&fakeAnalyzer{result: &models.AnalysisResult{}})
	require.NoError(t, w.SelectFile(pdfResume("cv.pdf")))
	w.SetDescription("jd")
	require.NoError(t, analyzeNow(w))

	assert.True(t, w.SyncDescription("jd", 4))
	assert.NotNil(t, w.Result())

	assert.True(t, w.SyncDescription("other", 5))
	assert.Nil(t, w.Result())
}

func TestWorkflowSyncDescriptionUnsequenced(t *testing.T) {
	w := newTestWorkflow(&fakeAnalyzer{})
	require.True(t, w.SyncDescription("first", 7))

	assert.True(t, w.SyncDescription("plain client", 0))
	assert.Equal(t, "plain client", w.State().Description)
	assert.Equal(t, int64(7), w.State().SyncSeq)
}
