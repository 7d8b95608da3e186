package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/services"
)

const formFieldJobDescription = "jobDescription"

type AnalyzeHandler struct {
	worker services.Worker
	logger *zap.Logger
}

func NewAnalyzeHandler(worker services.Worker, l *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		worker: worker,
		logger: logger.OrNop(l),
	}
}

// HandleAnalyze handles POST /analyze. The form carries the textarea so the
// analysed text is what the user sees.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	wf := workflowFrom(c)

	if args := c.Request().PostArgs(); args.Has(formFieldJobDescription) {
		wf.SetDescription(string(args.Peek(formFieldJobDescription)))
	}

	job, err := wf.Start()
	if err != nil {
		setNotice(c, analyzeNotice(err))
		return redirectHome(c)
	}

	// A refused enqueue has already failed the run, which the page shows.
	if err := h.worker.EnqueueJob(job); err != nil {
		h.logger.Warn("failed to enqueue analysis",
			zap.String(logger.FieldWorkflowID, wf.ID().String()),
			zap.String(logger.FieldRunID, job.RunID.String()),
			zap.Error(err),
		)
	}

	return c.Redirect("/#results-section", fiber.StatusSeeOther)
}
