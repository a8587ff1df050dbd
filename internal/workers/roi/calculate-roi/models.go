package calculateroi

import "consultancy-workers/internal/roi"

type Input struct {
	roi.BusinessProfile
	Email   string `json:"email"`
	Company string `json:"company"`
}

type Output struct {
	roi.Result
	Calculator   string `json:"calculator"`
	CalculatedAt string `json:"calculatedAt"` // ISO 8601
}
