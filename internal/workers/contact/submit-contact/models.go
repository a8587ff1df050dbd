package submitcontact

import "consultancy-workers/internal/contact"

type Input struct {
	contact.Form
	ClientIP  string `json:"clientIp"`
	UserAgent string `json:"userAgent"`
}

type Output struct {
	SubmissionID string `json:"submissionId"`
	contact.Evaluation
	FormStep  int    `json:"formStep"`
	CreatedAt string `json:"createdAt"` // ISO 8601
}
