package getcasestudy

import "consultancy-workers/internal/casestudy"

type Input struct {
	Slug string `json:"slug"`
}

type Output struct {
	CaseStudy *casestudy.CaseStudy `json:"caseStudy"`
}
