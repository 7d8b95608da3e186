package views

import (
	"fmt"
	"math"

	"alfredoptarigan/resume-matcher/internal/models"
)

type Branch string

const (
	BranchNone    Branch = ""
	BranchError   Branch = "error"
	BranchLoading Branch = "loading"
	BranchFull    Branch = "full"
)

type Tier string

const (
	TierFavorable   Tier = "favorable"
	TierNeutral     Tier = "neutral"
	TierUnfavorable Tier = "unfavorable"
)

const (
	NoMatchedKeywords = "No matching keywords found. Try optimizing your resume."
	NoMissingKeywords = "Impressive! Your resume includes all important keywords."
	NoSuggestions     = "No specific suggestions at this time. Your resume appears well-optimized for this job!"

	ErrorTitle       = "Error"
	ErrorDescription = "Something went wrong while analyzing your resume."
)

// scoreRadius is the radius of the circular score indicator in SVG units.
const scoreRadius = 40

// ScoreTier buckets a 0-100 match score.
func ScoreTier(score float64) Tier {
	switch {
	case score >= 80:
		return TierFavorable
	case score >= 60:
		return TierNeutral
	default:
		return TierUnfavorable
	}
}

func (t Tier) TextClass() string {
	switch t {
	case TierFavorable:
		return "text-success"
	case TierNeutral:
		return "text-warning"
	default:
		return "text-destructive"
	}
}

func (t Tier) BarClass() string {
	switch t {
	case TierFavorable:
		return "bg-success"
	case TierNeutral:
		return "bg-warning"
	default:
		return "bg-destructive"
	}
}

type ScoreView struct {
	Value int
	Tier  Tier
	// Percent is the bar width, clamped to 0-100.
	Percent       int
	Circumference string
	DashOffset    string
	TextClass     string
	BarClass      string
}

type RequirementView struct {
	Label      string
	Match      bool
	Verdict    string
	Confidence string
	Message    string
	BadgeClass string
}

type ResultView struct {
	Branch Branch
	// Status mirrors the stored result so the polling script can detect the
	// loading to finished transition.
	Status string
	Error  string

	Score      *ScoreView
	Experience *RequirementView
	Education  *RequirementView

	MatchedKeywords []string
	MissingKeywords []string
	MissingSections []string
	Suggestions     []string
}

func (v ResultView) Visible() bool { return v.Branch != BranchNone }
func (v ResultView) IsError() bool { return v.Branch == BranchError }
func (v ResultView) IsLoading() bool { return v.Branch == BranchLoading }
func (v ResultView) IsFull() bool { return v.Branch == BranchFull }

// BuildResultView maps a stored result to what the result region shows. An
// error wins over loading, which wins over the full layout.
func BuildResultView(result *models.Result) ResultView {
	if result == nil {
		return ResultView{}
	}

	view := ResultView{Status: string(result.Status)}

	switch {
	case result.Status == models.StatusFailed || result.Error != "":
		view.Branch = BranchError
		view.Error = result.Error
		return view
	case result.Status == models.StatusLoading:
		view.Branch = BranchLoading
		return view
	}

	view.Branch = BranchFull
	data := result.Data
	if data == nil {
		data = &models.AnalysisResult{}
	}

	if data.MatchScore != nil {
		view.Score = buildScore(*data.MatchScore)
	}
	view.Experience = buildRequirement("Experience", data.ExperienceMatch)
	view.Education = buildRequirement("Education", data.EducationMatch)

	view.MatchedKeywords = data.MatchedKeywords
	view.MissingKeywords = data.MissingKeywords
	view.MissingSections = data.MissingSections
	view.Suggestions = data.Suggestions

	return view
}

func buildScore(score float64) *ScoreView {
	tier := ScoreTier(score)
	percent := math.Max(0, math.Min(100, score))
	circumference := 2 * math.Pi * scoreRadius

	return &ScoreView{
		Value:         int(math.Round(score)),
		Tier:          tier,
		Percent:       int(math.Round(percent)),
		Circumference: fmt.Sprintf("%.2f", circumference),
		DashOffset:    fmt.Sprintf("%.2f", circumference*(1-percent/100)),
		TextClass:     tier.TextClass(),
		BarClass:      tier.BarClass(),
	}
}

func buildRequirement(label string, match *models.RequirementMatch) *RequirementView {
	if match == nil {
		return nil
	}

	view := &RequirementView{
		Label:      label,
		Match:      match.Match,
		Confidence: string(match.Confidence),
		Message:    match.Message,
	}
	if match.Match {
		view.Verdict = "Match"
		view.BadgeClass = "bg-success/20 text-success border-success/40"
	} else {
		view.Verdict = "No Match"
		view.BadgeClass = "bg-destructive/20 text-destructive border-destructive/40"
	}
	return view
}
