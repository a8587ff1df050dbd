package getsimilarcasestudies

import "consultancy-workers/internal/casestudy"

const (
	DefaultLimit = 4
	MaxLimit     = 10
)

type Input struct {
	CaseStudyID string `json:"caseStudyId"`
	Limit       int    `json:"limit"`
}

type Output struct {
	CaseStudies []casestudy.Summary `json:"caseStudies"`
	Count       int                 `json:"count"`
}
