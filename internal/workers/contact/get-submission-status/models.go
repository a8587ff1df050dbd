package getsubmissionstatus

import "consultancy-workers/internal/contact"

type Input struct {
	SubmissionID string `json:"submissionId"`
}

type Output struct {
	contact.Status
}
