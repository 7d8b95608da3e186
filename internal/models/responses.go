package models

import "github.com/google/uuid"

// Notice is a blocking, user-facing message shown once after a redirect.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Destructive bool   `json:"destructive"`
}

// WorkflowState is the derived UI state of one workflow at a point in time.
type WorkflowState struct {
	ID          uuid.UUID   `json:"id"`
	Resume      *ResumeFile `json:"resume,omitempty"`
	Description string      `json:"job_description"`
	Result      *Result     `json:"result,omitempty"`
	Analyzing   bool        `json:"analyzing"`
	CanAnalyze  bool        `json:"can_analyze"`
	// SyncSeq is the last applied keystroke sequence; the page continues
	// numbering from it.
	SyncSeq int64 `json:"sync_seq"`
}

type DescriptionRequest struct {
	JobDescription string `json:"jobDescription" form:"jobDescription"`
	Seq            int64  `json:"seq" form:"seq"`
}

type DescriptionResponse struct {
	CanAnalyze bool `json:"can_analyze"`
	Analyzing  bool `json:"analyzing"`
	// Applied is false when the update was older than one already applied.
	Applied bool `json:"applied"`
}
