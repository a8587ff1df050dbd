package indexcasestudy

// Input names the case study by id or slug.
type Input struct {
	CaseStudyID string `json:"caseStudyId"`
	Slug        string `json:"slug"`
}

type Output struct {
	Slug        string `json:"slug"`
	Index       string `json:"index"`
	IndexResult string `json:"indexResult"`
	IndexedAt   string `json:"indexedAt"`
}
