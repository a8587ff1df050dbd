package listcontactsubmissions

import "consultancy-workers/internal/contact"

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

type Input struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

type Output struct {
	Submissions []contact.Submission `json:"submissions"`
	Count       int                  `json:"count"`
	Skip        int                  `json:"skip"`
	Limit       int                  `json:"limit"`
}
