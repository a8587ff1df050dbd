// Package roi estimates the savings, payback and return of an AI automation
// project from a prospect's business profile. Every calculator is a pure
// function over the read-only tables in tables.go.
package roi

import (
	"errors"
	"fmt"
	"math"
)

const (
	// PaybackNever is reported when savings never cover the implementation cost.
	PaybackNever = 999.0

	defaultErrorRate  = 5.0
	defaultHourlyRate = 50.0
	maxFinancialValue = 1e12

	baseImplementationCost = 50000.0
)

var ErrInvalidInput = errors.New("INVALID_ROI_INPUT")

// BusinessProfile is the prospect's description of the process to automate.
// ErrorRate is a percentage. LaborCosts defaults to ProcessingTime ×
// VolumeProcessed × 50.
type BusinessProfile struct {
	Industry        string   `json:"industry"`
	ProcessType     string   `json:"processType"`
	CompanySize     string   `json:"companySize"`
	CurrentRevenue  float64  `json:"currentRevenue"`
	CurrentCosts    float64  `json:"currentCosts"`
	ProcessingTime  float64  `json:"currentProcessingTime"`
	VolumeProcessed float64  `json:"volumeProcessed"`
	ErrorRate       *float64 `json:"errorRate,omitempty"`
	LaborCosts      *float64 `json:"laborCosts,omitempty"`
}

// Validate rejects profiles the formulas are not defined for.
func (p BusinessProfile) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"currentRevenue", p.CurrentRevenue},
		{"currentCosts", p.CurrentCosts},
		{"currentProcessingTime", p.ProcessingTime},
		{"volumeProcessed", p.VolumeProcessed},
	}
	for _, f := range positive {
		if math.IsNaN(f.value) || f.value <= 0 {
			return fmt.Errorf("%w: %s must be greater than 0", ErrInvalidInput, f.name)
		}
		if f.value > maxFinancialValue {
			return fmt.Errorf("%w: %s is unreasonably large", ErrInvalidInput, f.name)
		}
	}
	if p.ErrorRate != nil && (*p.ErrorRate < 0 || *p.ErrorRate > 100) {
		return fmt.Errorf("%w: errorRate must be between 0 and 100", ErrInvalidInput)
	}
	if p.LaborCosts != nil && (*p.LaborCosts < 0 || *p.LaborCosts > maxFinancialValue) {
		return fmt.Errorf("%w: laborCosts must be between 0 and %.0f", ErrInvalidInput, maxFinancialValue)
	}
	return nil
}

func (p BusinessProfile) errorRate() float64 {
	if p.ErrorRate == nil {
		return defaultErrorRate
	}
	return *p.ErrorRate
}

func (p BusinessProfile) laborCosts() float64 {
	if p.LaborCosts == nil {
		return p.ProcessingTime * p.VolumeProcessed * defaultHourlyRate
	}
	return *p.LaborCosts
}

// Result is the base calculator's output. Currency fields are rounded to
// cents; percentages, hours and months to one decimal.
type Result struct {
	PotentialSavings      float64 `json:"potentialSavings"`
	EfficiencyGain        float64 `json:"efficiencyGain"`
	PaybackPeriod         float64 `json:"paybackPeriod"`
	ThreeYearROI          float64 `json:"threeYearRoi"`
	ImplementationCost    float64 `json:"implementationCost"`
	TimeSavings           float64 `json:"timeSavings"`
	CostReduction         float64 `json:"costReduction"`
	ErrorReductionSavings float64 `json:"errorReductionSavings"`
	ProductivityIncrease  float64 `json:"productivityIncrease"`
	MonthlySavings        float64 `json:"monthlySavings"`
	MonthlyROI            float64 `json:"monthlyRoi"`
}

// Calculate runs the base estimator.
func Calculate(p BusinessProfile) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	industry := ParseIndustry(p.Industry)
	size := ParseCompanySize(p.CompanySize)
	process := ParseProcessType(p.ProcessType)

	errorRate := p.errorRate() / 100
	efficiency := processEfficiency(process)

	annualVolume := p.VolumeProcessed * 12
	annualHours := annualVolume * p.ProcessingTime
	timeSaved := annualHours * efficiency

	hourlyRate := defaultHourlyRate
	if denom := p.VolumeProcessed * p.ProcessingTime; denom > 0 {
		hourlyRate = p.laborCosts() / denom
	}
	directLabor := timeSaved * hourlyRate

	costPerIncident := p.CurrentCosts / annualVolume * 0.1
	currentErrorCost := annualVolume * errorRate * costPerIncident
	newErrorCost := annualVolume * (errorRate * 0.3) * costPerIncident
	errorSavings := currentErrorCost - newErrorCost

	productivity := efficiency * 0.8
	productivityValue := p.CurrentRevenue * productivity * 0.2

	total := (directLabor + errorSavings + productivityValue) * industryMultiplier(industry) * sizeMultiplier(size)

	implementation := baseImplementationCost * complexityMultiplier(p.CompanySize)
	monthly := total / 12

	payback := PaybackNever
	if monthly > 0 {
		payback = implementation / monthly
	}
	threeYear := (total*3 - implementation) / implementation * 100

	monthlyROI := 0.0
	if implementation > 0 {
		monthlyROI = monthly / implementation * 100
	}

	return &Result{
		PotentialSavings:      round2(total),
		EfficiencyGain:        round1(efficiency * 100),
		PaybackPeriod:         round1(payback),
		ThreeYearROI:          round1(threeYear),
		ImplementationCost:    round2(implementation),
		TimeSavings:           round1(timeSaved),
		CostReduction:         round2(directLabor),
		ErrorReductionSavings: round2(errorSavings),
		ProductivityIncrease:  round1(productivity * 100),
		MonthlySavings:        round2(monthly),
		MonthlyROI:            round2(monthlyROI),
	}, nil
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func round1(x float64) float64 { return roundTo(x, 1) }
func round2(x float64) float64 { return roundTo(x, 2) }
