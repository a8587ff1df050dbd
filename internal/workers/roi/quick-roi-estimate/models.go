package quickroiestimate

import "consultancy-workers/internal/roi"

type Input struct {
	roi.QuickInput
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
	ProcessType string `json:"processType"`
	ClientIP    string `json:"clientIp"`
}

type Output struct {
	roi.QuickResult
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
	ProcessType string `json:"processType"`
}
