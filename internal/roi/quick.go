package roi

import (
	"fmt"
	"math"
)

const quickEfficiency = 0.65

// QuickInput is the anonymous three-field estimate. HourlyRate defaults to 50.
type QuickInput struct {
	MonthlyVolume float64  `json:"monthlyVolume"`
	HoursPerTask  float64  `json:"hoursPerTask"`
	HourlyRate    *float64 `json:"hourlyRate,omitempty"`
}

type QuickResult struct {
	MonthlyHoursSaved      float64 `json:"monthlyHoursSaved"`
	MonthlyCostSavings     float64 `json:"monthlyCostSavings"`
	AnnualSavings          float64 `json:"annualSavings"`
	ROIPercentage          float64 `json:"roiPercentage"`
	PaybackMonths          float64 `json:"paybackMonths"`
	ImplementationEstimate float64 `json:"implementationEstimate"`
}

func (q QuickInput) Validate() error {
	if math.IsNaN(q.MonthlyVolume) || q.MonthlyVolume < 1 {
		return fmt.Errorf("%w: monthlyVolume must be at least 1", ErrInvalidInput)
	}
	if math.IsNaN(q.HoursPerTask) || q.HoursPerTask < 0.01 {
		return fmt.Errorf("%w: hoursPerTask must be at least 0.01", ErrInvalidInput)
	}
	if q.HourlyRate != nil && *q.HourlyRate < 1 {
		return fmt.Errorf("%w: hourlyRate must be at least 1", ErrInvalidInput)
	}
	if q.MonthlyVolume > maxFinancialValue || q.HoursPerTask > maxFinancialValue {
		return fmt.Errorf("%w: value is unreasonably large", ErrInvalidInput)
	}
	return nil
}

// QuickEstimate assumes a flat 65% efficiency gain and prices the project
// by monthly volume alone.
func QuickEstimate(q QuickInput) (*QuickResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	rate := valueOr(q.HourlyRate, defaultHourlyRate)
	hoursSaved := q.MonthlyVolume * q.HoursPerTask * quickEfficiency
	monthly := hoursSaved * rate
	annual := monthly * 12

	cost := quickImplementationCost(q.MonthlyVolume)

	payback := PaybackNever
	if monthly > 0 {
		payback = cost / monthly
	}

	return &QuickResult{
		MonthlyHoursSaved:      round1(hoursSaved),
		MonthlyCostSavings:     round2(monthly),
		AnnualSavings:          round2(annual),
		ROIPercentage:          round1((annual - cost) / cost * 100),
		PaybackMonths:          round1(payback),
		ImplementationEstimate: round2(cost),
	}, nil
}

func quickImplementationCost(monthlyVolume float64) float64 {
	switch {
	case monthlyVolume < 100:
		return 25000
	case monthlyVolume < 500:
		return 50000
	case monthlyVolume < 1000:
		return 75000
	default:
		return 100000
	}
}
