package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
)

var (
	ErrResumeRequired      = errors.New("resume required")
	ErrDescriptionRequired = errors.New("job description required")
	ErrAnalysisInProgress  = errors.New("analysis in progress")
)

const ExampleJobDescription = `Job Title: Frontend Developer

Responsibilities:
- Develop and maintain responsive web applications using React.js
- Collaborate with UI/UX designers to implement intuitive interfaces
- Write clean, efficient, and maintainable code
- Optimize applications for maximum speed and scalability
- Troubleshoot and debug issues in frontend applications

Requirements:
- 2+ years of experience with React.js
- Strong proficiency in JavaScript, HTML, and CSS
- Experience with responsive design and CSS frameworks like Tailwind
- Familiarity with RESTful APIs and modern frontend build pipelines
- Knowledge of state management solutions (Redux, Context API)
- Bachelor's degree in Computer Science or related field preferred`

// AnalysisJob is a snapshot of the inputs of one accepted run.
type AnalysisJob struct {
	RunID          uuid.UUID
	WorkflowID     uuid.UUID
	Resume         *models.ResumeFile
	JobDescription string

	workflow *Workflow
}

// Workflow owns the selected file, the description text and the result of
// one browser session. Every event is applied under the lock, so the derived
// state returned by State is always consistent.
type Workflow struct {
	id       uuid.UUID
	analyzer AnalyzerClient
	metrics  *Metrics
	logger   *zap.Logger
	now      func() time.Time

	mu          sync.Mutex
	resume      *models.ResumeFile
	description string
	result      *models.Result
	inFlight    bool
	lastSeen    time.Time
	// syncSeq is the highest keystroke sequence applied by SyncDescription.
	syncSeq int64
}

func NewWorkflow(id uuid.UUID, analyzer AnalyzerClient, metrics *Metrics, l *zap.Logger) *Workflow {
	w := &Workflow{
		id:       id,
		analyzer: analyzer,
		metrics:  metrics,
		logger:   logger.OrNop(l).With(zap.String(logger.FieldWorkflowID, id.String())),
		now:      time.Now,
	}
	w.lastSeen = w.now()
	return w
}

func (w *Workflow) ID() uuid.UUID {
	return w.id
}

// SelectFile replaces the selection with an accepted PDF. Anything else is
// refused and the current selection is kept.
func (w *Workflow) SelectFile(file *models.ResumeFile) error {
	if file == nil {
		return ErrNoFile
	}
	if !file.IsPDF() {
		return ErrUnsupportedFileType
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.touch()
	w.resume = file
	w.result = nil
	return nil
}

func (w *Workflow) RemoveFile() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.touch()
	w.resume = nil
	w.result = nil
}

// SetDescription replaces the text. Identical text is not a change and keeps
// the current result.
func (w *Workflow) SetDescription(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.touch()
	w.setDescription(text)
}

// SyncDescription applies a keystroke update. Sequenced updates (seq > 0)
// at or below the last applied sequence are stale and ignored; unsequenced
// ones always apply. It reports whether the text was applied.
func (w *Workflow) SyncDescription(text string, seq int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.touch()
	if seq > 0 {
		if seq <= w.syncSeq {
			return false
		}
		w.syncSeq = seq
	}
	w.setDescription(text)
	return true
}

func (w *Workflow) setDescription(text string) {
	if text == w.description {
		return
	}
	w.description = text
	w.result = nil
}

func (w *Workflow) LoadExample() {
	w.SetDescription(ExampleJobDescription)
}

func (w *Workflow) State() models.WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()

	return models.WorkflowState{
		ID:          w.id,
		Resume:      w.resume,
		Description: w.description,
		Result:      w.result,
		Analyzing:   w.inFlight,
		CanAnalyze:  !w.inFlight && w.resume != nil && strings.TrimSpace(w.description) != "",
		SyncSeq:     w.syncSeq,
	}
}

func (w *Workflow) Result() *models.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

func (w *Workflow) Analyzing() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

// Start checks the preconditions, publishes a loading result and returns the
// job to run. A refused start leaves all state untouched.
func (w *Workflow) Start() (*AnalysisJob, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.touch()

	if w.inFlight {
		w.metrics.ObserveRefused("in_progress")
		return nil, ErrAnalysisInProgress
	}
	if w.resume == nil {
		w.metrics.ObserveRefused("resume_missing")
		return nil, ErrResumeRequired
	}
	if strings.TrimSpace(w.description) == "" {
		w.metrics.ObserveRefused("description_missing")
		return nil, ErrDescriptionRequired
	}

	runID := uuid.New()
	w.inFlight = true
	w.result = models.NewLoadingResult(runID, w.now())

	w.logger.Info("📥 analysis started", zap.String(logger.FieldRunID, runID.String()))

	return &AnalysisJob{
		RunID:          runID,
		WorkflowID:     w.id,
		Resume:         w.resume,
		JobDescription: w.description,
		workflow:       w,
	}, nil
}

// Run performs the outbound call for job and stores its outcome.
func (w *Workflow) Run(ctx context.Context, job *AnalysisJob) {
	started := w.now()

	data, err := w.analyzer.Analyze(ctx, job.Resume, job.JobDescription)
	if err != nil {
		w.logger.Warn("❌ analysis failed", zap.String(logger.FieldRunID, job.RunID.String()), zap.Error(err))
		w.finish(job, nil, userMessage(err), started)
		return
	}

	w.finish(job, data, "", started)
}

// Abort fails job without calling the analysis service.
func (w *Workflow) Abort(job *AnalysisJob, message string) {
	if message == "" {
		message = GenericAnalysisError
	}
	w.finish(job, nil, message, w.now())
}

func (w *Workflow) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

func (w *Workflow) finish(job *AnalysisJob, data *models.AnalysisResult, errMsg string, started time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	finished := w.now()
	w.inFlight = false

	// An input change cleared or replaced the loading result; the answer is stale.
	if w.result == nil || w.result.RunID != job.RunID {
		w.metrics.ObserveAnalysis(OutcomeDropped, finished.Sub(started))
		w.logger.Info("analysis result dropped", zap.String(logger.FieldRunID, job.RunID.String()))
		return
	}

	if data != nil {
		w.result = w.result.Complete(data, finished)
		w.metrics.ObserveAnalysis(OutcomeCompleted, finished.Sub(started))
	} else {
		w.result = w.result.Fail(errMsg, finished)
		w.metrics.ObserveAnalysis(OutcomeFailed, finished.Sub(started))
	}

	w.logger.Info("✅ analysis finished",
		zap.String(logger.FieldRunID, job.RunID.String()),
		zap.String(logger.FieldStatus, string(w.result.Status)),
	)
}

func (w *Workflow) touch() {
	w.lastSeen = w.now()
}

func userMessage(err error) string {
	var analyzerErr *AnalyzerError
	if errors.As(err, &analyzerErr) && analyzerErr.Message != "" {
		return analyzerErr.Message
	}
	return GenericAnalysisError
}
