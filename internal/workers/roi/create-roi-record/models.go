package createroirecord

import (
	"encoding/json"

	"consultancy-workers/internal/roi"
)

// Input is the profile a calculator ran on plus the figures it produced,
// as they sit in the process variables after calculate-roi.
type Input struct {
	roi.BusinessProfile
	roi.Result
	Email      string `json:"email"`
	Company    string `json:"company"`
	Calculator string `json:"calculator"`
	// Analysis is the calculate-advanced-roi output, when that ran too.
	Analysis json.RawMessage `json:"analysis,omitempty"`
}

type Output struct {
	CalculationID string `json:"calculationId"`
	CreatedAt     string `json:"createdAt"` // ISO 8601
}

type storedResults struct {
	roi.Result
	Calculator string          `json:"calculator"`
	Advanced   json.RawMessage `json:"advanced,omitempty"`
}
