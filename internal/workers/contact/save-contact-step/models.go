package savecontactstep

import "consultancy-workers/internal/contact"

// Step outcomes.
const (
	StatusCreated   = "created"
	StatusExists    = "exists"
	StatusUpdated   = "updated"
	StatusCompleted = "completed"
)

type Input struct {
	contact.Form
	Step         int    `json:"step"`
	SubmissionID string `json:"submissionId"`
	ClientIP     string `json:"clientIp"`
	UserAgent    string `json:"userAgent"`
}

type Output struct {
	SubmissionID string `json:"submissionId"`
	FormStep     int    `json:"formStep"`
	Complete     bool   `json:"complete"`
	Status       string `json:"status"`
	// Set once the final step is saved.
	LeadScore         *int   `json:"leadScore,omitempty"`
	IsQualified       *bool  `json:"isQualified,omitempty"`
	QualificationTier string `json:"qualificationTier,omitempty"`
}
