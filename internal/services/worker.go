package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
)

var (
	ErrQueueFull     = errors.New("analysis queue is full")
	ErrWorkerStopped = errors.New("analysis worker stopped")
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	// EnqueueJob hands job to the pool. On error the job has already been
	// failed on its workflow.
	EnqueueJob(job *AnalysisJob) error
}

type worker struct {
	jobQueue    chan *AnalysisJob
	concurrency int
	metrics     *Metrics
	logger      *zap.Logger

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once

	// mu orders enqueues against Stop so nothing lands in the queue after
	// it has been drained.
	mu      sync.Mutex
	stopped bool
}

func NewWorker(concurrency, queueSize int, metrics *Metrics, l *zap.Logger) Worker {
	return &worker{
		jobQueue:    make(chan *AnalysisJob, queueSize),
		concurrency: concurrency,
		metrics:     metrics,
		logger:      logger.OrNop(l),
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("🚀 starting analysis workers", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. Jobs still queued are failed so their workflows
// leave the loading state.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("🛑 stopping analysis workers")

		w.mu.Lock()
		w.stopped = true
		close(w.stopChan)
		w.mu.Unlock()

		w.wg.Wait()

		for {
			select {
			case job := <-w.jobQueue:
				job.workflow.Abort(job, GenericAnalysisError)
			default:
				w.metrics.SetQueueDepth(0)
				w.logger.Info("✅ analysis workers stopped")
				return
			}
		}
	})
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(job *AnalysisJob) error {
	err := w.enqueue(job)
	switch err {
	case nil:
		w.logger.Debug("job enqueued", zap.String(logger.FieldRunID, job.RunID.String()))
	case ErrQueueFull:
		w.logger.Warn("⚠️  analysis queue full", zap.String(logger.FieldRunID, job.RunID.String()))
	}
	if err != nil {
		job.workflow.Abort(job, GenericAnalysisError)
	}
	return err
}

func (w *worker) enqueue(job *AnalysisJob) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return ErrWorkerStopped
	}

	select {
	case w.jobQueue <- job:
		w.metrics.SetQueueDepth(len(w.jobQueue))
		return nil
	default:
		return ErrQueueFull
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.logger.Debug("worker stopped", zap.Int("worker", workerID))
			return
		case <-ctx.Done():
			return
		case job := <-w.jobQueue:
			w.metrics.SetQueueDepth(len(w.jobQueue))
			w.logger.Debug("processing job",
				zap.Int("worker", workerID),
				zap.String(logger.FieldRunID, job.RunID.String()),
			)
			job.workflow.Run(ctx, job)
		}
	}
}
