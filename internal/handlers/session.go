package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

const (
	SessionCookieName = "resumesync_session"

	sessionKeyWorkflow = "workflow_id"

	flashTitle       = "notice_title"
	flashDescription = "notice_description"
	flashDestructive = "notice_destructive"

	localsWorkflow = "workflow"
	localsSession  = "session"
)

// SessionMiddleware binds every request to the workflow of its browser
// session, creating both on first visit.
type SessionMiddleware struct {
	store  *session.Store
	repo   repositories.WorkflowRepository
	logger *zap.Logger
}

func NewSessionMiddleware(store *session.Store, repo repositories.WorkflowRepository, l *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		store:  store,
		repo:   repo,
		logger: logger.OrNop(l),
	}
}

func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	id, ok := sessionWorkflowID(sess)
	if !ok {
		id = uuid.New()
		sess.Set(sessionKeyWorkflow, id.String())
	}

	c.Locals(localsWorkflow, m.repo.GetOrCreate(id))
	c.Locals(localsSession, sess)

	err = c.Next()

	if saveErr := sess.Save(); saveErr != nil {
		m.logger.Warn("failed to save session",
			zap.String(logger.FieldWorkflowID, id.String()),
			zap.Error(saveErr),
		)
		if err == nil {
			err = saveErr
		}
	}

	return err
}

func sessionWorkflowID(sess *session.Session) (uuid.UUID, bool) {
	raw, ok := sess.Get(sessionKeyWorkflow).(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func workflowFrom(c *fiber.Ctx) *services.Workflow {
	w, ok := c.Locals(localsWorkflow).(*services.Workflow)
	if !ok {
		panic("handlers: session middleware not installed")
	}
	return w
}

// setNotice stores a notice to show once on the next page render.
func setNotice(c *fiber.Ctx, notice models.Notice) {
	sess, ok := c.Locals(localsSession).(*session.Session)
	if !ok {
		return
	}
	sess.Set(flashTitle, notice.Title)
	sess.Set(flashDescription, notice.Description)
	sess.Set(flashDestructive, notice.Destructive)
}

func takeNotice(c *fiber.Ctx) *models.Notice {
	sess, ok := c.Locals(localsSession).(*session.Session)
	if !ok {
		return nil
	}

	title, _ := sess.Get(flashTitle).(string)
	if title == "" {
		return nil
	}
	description, _ := sess.Get(flashDescription).(string)
	destructive, _ := sess.Get(flashDestructive).(bool)

	sess.Delete(flashTitle)
	sess.Delete(flashDescription)
	sess.Delete(flashDestructive)

	return &models.Notice{Title: title, Description: description, Destructive: destructive}
}

func redirectHome(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusSeeOther)
}
