package models

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// RequirementMatch is the analysis service's verdict on one requirement
// (experience or education).
type RequirementMatch struct {
	Match      bool       `json:"match"`
	Confidence Confidence `json:"confidence"`
	Message    string     `json:"message"`
}

// AnalysisResult is the success body of POST /analyze.
type AnalysisResult struct {
	MatchedKeywords []string          `json:"matched_keywords"`
	MissingKeywords []string          `json:"missing_keywords"`
	Suggestions     []string          `json:"suggestions"`
	MatchScore      *float64          `json:"match_score,omitempty"`
	MissingSections []string          `json:"missing_sections,omitempty"`
	ExperienceMatch *RequirementMatch `json:"experience_match,omitempty"`
	EducationMatch  *RequirementMatch `json:"education_match,omitempty"`
}

// Normalize replaces absent keyword and suggestion arrays with empty ones.
func (a *AnalysisResult) Normalize() {
	if a.MatchedKeywords == nil {
		a.MatchedKeywords = []string{}
	}
	if a.MissingKeywords == nil {
		a.MissingKeywords = []string{}
	}
	if a.Suggestions == nil {
		a.Suggestions = []string{}
	}
}

// ErrorResponse is the failure body of POST /analyze.
type ErrorResponse struct {
	Error string `json:"error"`
}
