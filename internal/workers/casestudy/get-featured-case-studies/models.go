package getfeaturedcasestudies

import "consultancy-workers/internal/casestudy"

const (
	DefaultLimit = 6
	MaxLimit     = 20
)

type Input struct {
	Limit int `json:"limit"`
}

type Output struct {
	CaseStudies []casestudy.Summary `json:"caseStudies"`
	Count       int                 `json:"count"`
	Cached      bool                `json:"cached"`
}
