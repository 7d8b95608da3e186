package views

import (
	"alfredoptarigan/resume-matcher/internal/models"
)

const (
	ViewIndex   = "index"
	ViewResults = "partials/results"
	LayoutMain  = "layouts/main"
)

// IndexView is the binding of the main page.
type IndexView struct {
	Title   string
	State   models.WorkflowState
	Notice  *models.Notice
	Example string
	Result  ResultView
}

func BuildIndexView(state models.WorkflowState, notice *models.Notice, example string) IndexView {
	return IndexView{
		Title:   "ResumeSync",
		State:   state,
		Notice:  notice,
		Example: example,
		Result:  BuildResultView(state.Result),
	}
}
