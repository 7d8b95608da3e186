package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"alfredoptarigan/resume-matcher/internal/models"
)

type DescriptionHandler struct{}

func NewDescriptionHandler() *DescriptionHandler {
	return &DescriptionHandler{}
}

// HandleUpdate handles POST /description.
func (h *DescriptionHandler) HandleUpdate(c *fiber.Ctx) error {
	req, err := parseDescription(c)
	if err != nil {
		return redirectHome(c)
	}

	workflowFrom(c).SetDescription(req.JobDescription)
	return redirectHome(c)
}

// HandleExample handles POST /description/example.
func (h *DescriptionHandler) HandleExample(c *fiber.Ctx) error {
	workflowFrom(c).LoadExample()
	return redirectHome(c)
}

// HandleSync handles POST /api/v1/description, sent on every keystroke.
// Keystrokes may arrive out of order; stale ones are ignored by sequence.
func (h *DescriptionHandler) HandleSync(c *fiber.Ctx) error {
	req, err := parseDescription(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	wf := workflowFrom(c)
	applied := wf.SyncDescription(req.JobDescription, req.Seq)

	state := wf.State()
	return c.JSON(models.DescriptionResponse{
		CanAnalyze: state.CanAnalyze,
		Analyzing:  state.Analyzing,
		Applied:    applied,
	})
}

// parseDescription binds the request body. Form values alias the pooled
// request buffer, so the text is copied before it outlives the request.
func parseDescription(c *fiber.Ctx) (models.DescriptionRequest, error) {
	var req models.DescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return req, err
	}
	req.JobDescription = utils.CopyString(req.JobDescription)
	return req, nil
}
