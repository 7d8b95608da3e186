package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/services"
	"alfredoptarigan/resume-matcher/internal/views"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// HandleIndex handles GET /.
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	wf := workflowFrom(c)
	view := views.BuildIndexView(wf.State(), takeNotice(c), services.ExampleJobDescription)

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Render(views.ViewIndex, view, views.LayoutMain)
}

// HandleResults handles GET /results, polled while an analysis is loading.
func (h *PageHandler) HandleResults(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Render(views.ViewResults, views.BuildResultView(workflowFrom(c).Result()))
}

// HandleState handles GET /api/v1/state.
func (h *PageHandler) HandleState(c *fiber.Ctx) error {
	return c.JSON(workflowFrom(c).State())
}

// HandleHealth handles GET /api/v1/health.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}
