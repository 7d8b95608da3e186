package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/services"
)

const formFieldResume = "resume"

type UploadHandler struct {
	uploadService services.UploadService
	metrics       *services.Metrics
	logger        *zap.Logger
}

func NewUploadHandler(uploadService services.UploadService, metrics *services.Metrics, l *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		metrics:       metrics,
		logger:        logger.OrNop(l),
	}
}

// HandleUpload handles POST /resume. Only the first file of the form is
// considered; a rejected file leaves the current selection in place.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	wf := workflowFrom(c)

	file, err := c.FormFile(formFieldResume)
	if err != nil {
		return redirectHome(c)
	}

	resume, err := h.uploadService.ReadResume(file)
	if err == nil {
		err = wf.SelectFile(resume)
	}
	if err != nil {
		h.metrics.ObserveUpload(services.UploadRejected)
		h.logger.Info("resume rejected",
			zap.String(logger.FieldWorkflowID, wf.ID().String()),
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		setNotice(c, uploadNotice(err))
		return redirectHome(c)
	}

	h.metrics.ObserveUpload(services.UploadAccepted)
	h.logger.Info("📄 resume selected",
		zap.String(logger.FieldWorkflowID, wf.ID().String()),
		zap.String("filename", resume.Filename),
		zap.Int64("size", resume.Size),
		zap.Int("pages", resume.Pages),
	)

	return redirectHome(c)
}

// HandleRemove handles POST /resume/remove.
func (h *UploadHandler) HandleRemove(c *fiber.Ctx) error {
	workflowFrom(c).RemoveFile()
	return redirectHome(c)
}
