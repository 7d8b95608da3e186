package handlers

import (
	"errors"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

var (
	noticeResumeRequired = models.Notice{
		Title:       "Resume Required",
		Description: "Please upload your resume PDF first.",
		Destructive: true,
	}
	noticeDescriptionRequired = models.Notice{
		Title:       "Job Description Required",
		Description: "Please enter or paste the job description.",
		Destructive: true,
	}
	noticeInProgress = models.Notice{
		Title:       "Analysis In Progress",
		Description: "Please wait for the current analysis to finish.",
	}
	noticeInvalidFile = models.Notice{
		Title:       "Invalid File",
		Description: "Please upload a PDF file",
		Destructive: true,
	}
	noticeFileTooLarge = models.Notice{
		Title:       "File Too Large",
		Description: "The selected PDF exceeds the maximum upload size.",
		Destructive: true,
	}
	noticeUploadFailed = models.Notice{
		Title:       "Upload Failed",
		Description: "The selected file could not be read. Please try again.",
		Destructive: true,
	}
)

func analyzeNotice(err error) models.Notice {
	switch {
	case errors.Is(err, services.ErrResumeRequired):
		return noticeResumeRequired
	case errors.Is(err, services.ErrDescriptionRequired):
		return noticeDescriptionRequired
	case errors.Is(err, services.ErrAnalysisInProgress):
		return noticeInProgress
	default:
		return models.Notice{Title: "Analysis Failed", Description: services.GenericAnalysisError, Destructive: true}
	}
}

func uploadNotice(err error) models.Notice {
	switch {
	case errors.Is(err, services.ErrUnsupportedFileType):
		return noticeInvalidFile
	case errors.Is(err, services.ErrFileTooLarge):
		return noticeFileTooLarge
	default:
		return noticeUploadFailed
	}
}
