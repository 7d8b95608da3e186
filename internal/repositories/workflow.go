package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/services"
)

// WorkflowFactory builds the workflow bound to a new session.
type WorkflowFactory func(id uuid.UUID) *services.Workflow

type WorkflowRepository interface {
	// GetOrCreate returns the workflow for id, creating it on first use.
	GetOrCreate(id uuid.UUID) *services.Workflow
	// Sweep removes workflows idle for longer than idle and returns how many
	// were removed. Workflows with an analysis in flight are kept.
	Sweep(idle time.Duration) int
	Count() int
	StartJanitor(ctx context.Context, interval, idle time.Duration)
}

type workflowRepository struct {
	factory WorkflowFactory
	metrics *services.Metrics
	logger  *zap.Logger
	now     func() time.Time

	mu        sync.RWMutex
	workflows map[uuid.UUID]*services.Workflow
}

func NewWorkflowRepository(factory WorkflowFactory, metrics *services.Metrics, l *zap.Logger) WorkflowRepository {
	return &workflowRepository{
		factory:   factory,
		metrics:   metrics,
		logger:    logger.OrNop(l),
		now:       time.Now,
		workflows: make(map[uuid.UUID]*services.Workflow),
	}
}

// GetOrCreate implements WorkflowRepository.
func (r *workflowRepository) GetOrCreate(id uuid.UUID) *services.Workflow {
	r.mu.RLock()
	w, ok := r.workflows[id]
	r.mu.RUnlock()
	if ok {
		return w
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.workflows[id]; ok {
		return w
	}

	w = r.factory(id)
	r.workflows[id] = w
	r.metrics.SetSessions(len(r.workflows))
	r.logger.Debug("workflow created", zap.String(logger.FieldWorkflowID, id.String()))
	return w
}

// Sweep implements WorkflowRepository.
func (r *workflowRepository) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, w := range r.workflows {
		if w.Analyzing() || w.LastSeen().After(cutoff) {
			continue
		}
		delete(r.workflows, id)
		removed++
	}
	r.metrics.SetSessions(len(r.workflows))
	return removed
}

// Count implements WorkflowRepository.
func (r *workflowRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workflows)
}

// StartJanitor sweeps idle workflows every interval until ctx is done.
func (r *workflowRepository) StartJanitor(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 || idle <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := r.Sweep(idle); removed > 0 {
					r.logger.Info("🧹 expired idle workflows",
						zap.Int("removed", removed),
						zap.Int("remaining", r.Count()),
					)
				}
			}
		}
	}()
}
