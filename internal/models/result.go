package models

import (
	"time"

	"github.com/google/uuid"
)

type ResultStatus string

const (
	StatusLoading   ResultStatus = "loading"
	StatusCompleted ResultStatus = "completed"
	StatusFailed    ResultStatus = "failed"
)

// Result is the tri-state outcome of one analysis run. Exactly one of
// loading, failed (Error) or completed (Data) holds, selected by Status.
type Result struct {
	RunID     uuid.UUID       `json:"run_id"`
	Status    ResultStatus    `json:"status"`
	Data      *AnalysisResult `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	StartedAt time.Time       `json:"started_at"`
	// FinishedAt is zero while loading.
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

func NewLoadingResult(runID uuid.UUID, startedAt time.Time) *Result {
	return &Result{
		RunID:     runID,
		Status:    StatusLoading,
		StartedAt: startedAt,
	}
}

func (r *Result) Complete(data *AnalysisResult, at time.Time) *Result {
	data.Normalize()
	return &Result{
		RunID:      r.RunID,
		Status:     StatusCompleted,
		Data:       data,
		StartedAt:  r.StartedAt,
		FinishedAt: at,
	}
}

func (r *Result) Fail(message string, at time.Time) *Result {
	return &Result{
		RunID:      r.RunID,
		Status:     StatusFailed,
		Error:      message,
		StartedAt:  r.StartedAt,
		FinishedAt: at,
	}
}

func (r *Result) IsLoading() bool {
	return r != nil && r.Status == StatusLoading
}
