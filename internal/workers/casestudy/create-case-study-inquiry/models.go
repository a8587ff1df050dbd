package createcasestudyinquiry

type Input struct {
	CaseStudyID        string   `json:"caseStudyId"`
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	Email              string   `json:"email"`
	Company            string   `json:"company"`
	JobTitle           string   `json:"jobTitle"`
	InquiryMessage     string   `json:"inquiryMessage"`
	SimilarChallenge   bool     `json:"similarChallenge"`
	InterestedServices []string `json:"interestedServices"`
	ReferrerURL        string   `json:"referrerUrl"`
	ClientIP           string   `json:"clientIp"`
	UserAgent          string   `json:"userAgent"`
}

type Output struct {
	InquiryID   string `json:"inquiryId"`
	CaseStudyID string `json:"caseStudyId"`
	CreatedAt   string `json:"createdAt"`
}
