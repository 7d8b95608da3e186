package handlers

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	Session     *SessionMiddleware
	Page        *PageHandler
	Upload      *UploadHandler
	Description *DescriptionHandler
	Analyze     *AnalyzeHandler
}

func (h *Handlers) Register(app *fiber.App) {
	api := app.Group("/api/v1")
	api.Get("/health", HandleHealth)

	app.Use(h.Session.Handle)

	app.Get("/", h.Page.HandleIndex)
	app.Get("/results", h.Page.HandleResults)
	app.Post("/resume", h.Upload.HandleUpload)
	app.Post("/resume/remove", h.Upload.HandleRemove)
	app.Post("/description", h.Description.HandleUpdate)
	app.Post("/description/example", h.Description.HandleExample)
	app.Post("/analyze", h.Analyze.HandleAnalyze)

	api.Get("/state", h.Page.HandleState)
	api.Post("/description", h.Description.HandleSync)
}

// ErrorHandler renders unhandled errors as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
