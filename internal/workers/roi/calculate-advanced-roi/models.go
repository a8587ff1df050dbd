package calculateadvancedroi

import "consultancy-workers/internal/roi"

type Input struct {
	roi.BusinessProfile
	roi.AdvancedContext
}

// Summary carries the handful of figures the process gateways branch on.
type Summary struct {
	Recommendation  roi.Tier `json:"recommendation"`
	Priority        string   `json:"priority"`
	ConfidenceScore int      `json:"confidenceScore"`
	NetSavings      float64  `json:"netSavings"`
	RiskScore       float64  `json:"riskScore"`
}

type Output struct {
	Analysis     *roi.AdvancedResult `json:"analysis"`
	Summary      Summary             `json:"summary"`
	Calculator   string              `json:"calculator"`
	CalculatedAt string              `json:"calculatedAt"`
}
