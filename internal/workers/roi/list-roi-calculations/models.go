package listroicalculations

import "encoding/json"

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

type Input struct {
	// CalculationID switches the worker to a single-record lookup.
	CalculationID string `json:"calculationId"`
	Skip          int    `json:"skip"`
	Limit         int    `json:"limit"`
}

type Calculation struct {
	ID                    string          `json:"id"`
	Email                 string          `json:"email"`
	Company               string          `json:"company,omitempty"`
	Industry              string          `json:"industry"`
	CompanySize           string          `json:"companySize"`
	ProcessType           string          `json:"processType"`
	CurrentRevenue        float64         `json:"currentRevenue"`
	CurrentCosts          float64         `json:"currentCosts"`
	CurrentProcessingTime float64         `json:"currentProcessingTime"`
	VolumeProcessed       float64         `json:"volumeProcessed"`
	ErrorRate             *float64        `json:"errorRate,omitempty"`
	LaborCosts            *float64        `json:"laborCosts,omitempty"`
	PotentialSavings      float64         `json:"potentialSavings"`
	EfficiencyGain        float64         `json:"efficiencyGain"`
	PaybackPeriod         float64         `json:"paybackPeriod"`
	ThreeYearROI          float64         `json:"threeYearRoi"`
	ImplementationCost    float64         `json:"implementationCost"`
	Results               json.RawMessage `json:"calculationResults,omitempty"`
	PDFGenerated          bool            `json:"pdfGenerated"`
	FollowUpRequested     bool            `json:"followUpRequested"`
	ReportSentAt          string          `json:"reportSentAt,omitempty"`
	CreatedAt             string          `json:"createdAt"`
}

type Output struct {
	Calculations []Calculation `json:"calculations"`
	Calculation  *Calculation  `json:"calculation,omitempty"`
	Count        int           `json:"count"`
	Skip         int           `json:"skip"`
	Limit        int           `json:"limit"`
}
