package roi

import (
	"fmt"
	"math"
)

const (
	advancedBaseCost         = 75000.0
	workingHoursPerYear      = 2080.0
	defaultDataQuality       = 70.0
	defaultMarketAIAdoption  = 30.0
	defaultDevelopmentDays   = 180.0
	defaultPhaseBudget       = 75000.0
	maxRiskScore             = 50.0
	annualGrowthImprovements = 0.05 + 0.03 + 0.04 // learning curve, technology, scale
	projectionYears          = 5
)

// AdvancedContext carries the optional inputs only the advanced calculator
// reads. Email and Company count towards input completeness.
type AdvancedContext struct {
	Email                  string   `json:"email,omitempty"`
	Company                string   `json:"company,omitempty"`
	DataQuality            *float64 `json:"dataQuality,omitempty"`
	MarketAIAdoption       *float64 `json:"marketAiAdoption,omitempty"`
	CurrentDevelopmentTime *float64 `json:"currentDevelopmentTime,omitempty"`
	ImplementationCost     *float64 `json:"implementationCost,omitempty"`
}

func (c AdvancedContext) validate() error {
	if c.DataQuality != nil && (*c.DataQuality < 0 || *c.DataQuality > 100) {
		return fmt.Errorf("%w: dataQuality must be between 0 and 100", ErrInvalidInput)
	}
	if c.MarketAIAdoption != nil && (*c.MarketAIAdoption < 0 || *c.MarketAIAdoption > 100) {
		return fmt.Errorf("%w: marketAiAdoption must be between 0 and 100", ErrInvalidInput)
	}
	if c.CurrentDevelopmentTime != nil && *c.CurrentDevelopmentTime <= 0 {
		return fmt.Errorf("%w: currentDevelopmentTime must be greater than 0", ErrInvalidInput)
	}
	if c.ImplementationCost != nil && (*c.ImplementationCost < 0 || *c.ImplementationCost > maxFinancialValue) {
		return fmt.Errorf("%w: implementationCost must be between 0 and %.0f", ErrInvalidInput, maxFinancialValue)
	}
	return nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

type BaseMetrics struct {
	PotentialSavings     float64 `json:"potentialSavings"`
	NetSavings           float64 `json:"netSavings"`
	ImplementationCost   float64 `json:"implementationCost"`
	AnnualMaintenance    float64 `json:"annualMaintenance"`
	EfficiencyGain       float64 `json:"efficiencyGain"`
	PaybackPeriod        float64 `json:"paybackPeriod"`
	ThreeYearROI         float64 `json:"threeYearRoi"`
	FiveYearROI          float64 `json:"fiveYearRoi"`
	TimeSavings          float64 `json:"timeSavings"`
	ErrorReduction       float64 `json:"errorReduction"`
	ProductivityIncrease float64 `json:"productivityIncrease"`
}

type RiskFactors struct {
	ImplementationComplexity float64 `json:"implementationComplexity"`
	OrganizationalReadiness  float64 `json:"organizationalReadiness"`
	DataQuality              float64 `json:"dataQuality"`
}

type ConfidenceInterval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type RiskAnalysis struct {
	RiskScore            float64            `json:"riskScore"`
	RiskFactors          RiskFactors        `json:"riskFactors"`
	RiskAdjustmentFactor float64            `json:"riskAdjustmentFactor"`
	ConfidenceInterval   ConfidenceInterval `json:"confidenceInterval"`
}

type YearProjection struct {
	Year       int     `json:"year"`
	Savings    float64 `json:"savings"`
	Cumulative float64 `json:"cumulative"`
	ROI        float64 `json:"roi"`
}

type CompetitiveAdvantages struct {
	EarlyAdopterBenefit     float64 `json:"earlyAdopterBenefit"`
	TimeToMarketImprovement float64 `json:"timeToMarketImprovement"`
	QualityScoreIncrease    float64 `json:"qualityScoreIncrease"`
	MarketPositioningScore  float64 `json:"marketPositioningScore"`
}

type Phase struct {
	Name           string  `json:"name"`
	DurationWeeks  int     `json:"durationWeeks"`
	CostPercentage float64 `json:"costPercentage"`
	Cost           float64 `json:"cost"`
}

// AdvancedResult is the full advanced analysis. Growth projections are
// derived from the unadjusted net savings; the risk adjustment factor is
// reported alongside but not applied.
type AdvancedResult struct {
	BaseMetrics
	RiskAnalysis
	GrowthProjections     []YearProjection      `json:"growthProjections"`
	CompetitiveAdvantages CompetitiveAdvantages `json:"competitiveAdvantages"`
	ImplementationPhases  []Phase               `json:"implementationPhases"`
	ConfidenceScore       int                   `json:"confidenceScore"`
	Recommendation        Recommendation        `json:"recommendation"`
}

// CalculateAdvanced runs the advanced estimator. Unknown industries use the
// technology profile and unknown processes the data_processing profile.
func CalculateAdvanced(p BusinessProfile, c AdvancedContext) (*AdvancedResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	size := ParseCompanySize(p.CompanySize)
	process := ParseProcessType(p.ProcessType)
	industry := IndustryProfileFor(ParseIndustry(p.Industry))
	processProfile := ProcessProfileFor(process)

	base := baseMetrics(p, industry, processProfile)
	risk := riskAnalysis(industry, size, process, valueOr(c.DataQuality, defaultDataQuality))

	return &AdvancedResult{
		BaseMetrics:           base,
		RiskAnalysis:          risk,
		GrowthProjections:     growthProjections(base.NetSavings, base.ImplementationCost, industry.Scalability),
		CompetitiveAdvantages: competitiveAdvantages(industry, c),
		ImplementationPhases:  implementationPhases(valueOr(c.ImplementationCost, defaultPhaseBudget), processProfile.Complexity),
		ConfidenceScore:       confidenceScore(p, c, industry, size, process),
		Recommendation:        Recommend(base.ThreeYearROI, base.PaybackPeriod, risk.RiskScore),
	}, nil
}

func baseMetrics(p BusinessProfile, industry IndustryProfile, process ProcessProfile) BaseMetrics {
	errorRate := p.errorRate() / 100

	annualVolume := p.VolumeProcessed * 12
	annualHours := annualVolume * p.ProcessingTime
	combined := industry.BaseEfficiency * process.AIImpact

	timeSaved := annualHours * combined
	hourlyRate := defaultHourlyRate
	if p.CurrentCosts > 0 {
		hourlyRate = p.CurrentCosts / workingHoursPerYear
	}
	direct := timeSaved * hourlyRate

	costPerIncident := p.CurrentCosts / annualVolume * 0.15
	reducedRate := errorRate * (1 - combined*0.8)
	errorSavings := annualVolume*errorRate*costPerIncident - annualVolume*reducedRate*costPerIncident

	productivityGain := combined * industry.Scalability * 0.3
	productivityValue := p.CurrentRevenue * productivityGain * 0.25

	total := direct + errorSavings + productivityValue
	implementation := advancedBaseCost * (1 + (process.Complexity - 0.5))
	maintenance := implementation * industry.MaintenanceCost
	net := total - maintenance

	payback := PaybackNever
	if net > 0 {
		payback = round1(implementation / (net / 12))
	}

	errorReduction := 0.0
	if errorRate > 0 {
		errorReduction = (errorRate - reducedRate) / errorRate * 100
	}

	return BaseMetrics{
		PotentialSavings:     round2(total),
		NetSavings:           round2(net),
		ImplementationCost:   round2(implementation),
		AnnualMaintenance:    round2(maintenance),
		EfficiencyGain:       round1(combined * 100),
		PaybackPeriod:        payback,
		ThreeYearROI:         round1((net*3 - implementation) / implementation * 100),
		FiveYearROI:          round1((net*5 - implementation) / implementation * 100),
		TimeSavings:          round1(timeSaved),
		ErrorReduction:       round1(errorReduction),
		ProductivityIncrease: round1(productivityGain * 100),
	}
}

func riskAnalysis(industry IndustryProfile, size CompanySize, process ProcessType, dataQualityPct float64) RiskAnalysis {
	complexity := riskComplexity(process)
	dataQuality := dataQualityPct / 100
	dataRisk := 1 - dataQuality

	total := (industry.RiskFactor*sizeRiskMultiplier(size) + complexity*0.3 + dataRisk*0.2) / 2
	adjustment := 1 - total*0.5

	return RiskAnalysis{
		RiskScore: round1(math.Min(total*100, maxRiskScore)),
		RiskFactors: RiskFactors{
			ImplementationComplexity: round1(complexity * 100),
			OrganizationalReadiness:  round1((1 - industry.RiskFactor) * 100),
			DataQuality:              round1(dataQuality * 100),
		},
		RiskAdjustmentFactor: round2(adjustment),
		ConfidenceInterval: ConfidenceInterval{
			Low:  round2(adjustment * 0.8),
			High: round2(math.Min(adjustment*1.2, 1.0)),
		},
	}
}

// growthProjections works from the already rounded net savings and
// implementation cost.
func growthProjections(netSavings, implementationCost, scalability float64) []YearProjection {
	out := make([]YearProjection, 0, projectionYears)
	cumulative := 0.0
	for year := 1; year <= projectionYears; year++ {
		yearMultiplier := 1 + annualGrowthImprovements*float64(year-1)
		scale := math.Min(math.Pow(scalability, float64(year)*0.3), scalability*1.5)

		savings := netSavings * yearMultiplier * scale
		cumulative += savings

		out = append(out, YearProjection{
			Year:       year,
			Savings:    round2(savings),
			Cumulative: round2(cumulative),
			ROI:        round1((cumulative - implementationCost) / implementationCost * 100),
		})
	}
	return out
}

func competitiveAdvantages(industry IndustryProfile, c AdvancedContext) CompetitiveAdvantages {
	adoption := valueOr(c.MarketAIAdoption, defaultMarketAIAdoption) / 100
	early := math.Max(0, (1-adoption)*0.2)

	current := valueOr(c.CurrentDevelopmentTime, defaultDevelopmentDays)
	next := current * (1 - industry.BaseEfficiency*0.6)
	timeToMarket := (current - next) / current

	quality := industry.BaseEfficiency * 0.8

	return CompetitiveAdvantages{
		EarlyAdopterBenefit:     round1(early * 100),
		TimeToMarketImprovement: round1(timeToMarket * 100),
		QualityScoreIncrease:    round1(quality * 100),
		MarketPositioningScore:  round1((early + timeToMarket + quality) / 3 * 100),
	}
}

var phaseTemplate = []struct {
	name  string
	weeks float64
	share float64
}{
	{"Discovery & Planning", 2, 0.15},
	{"Data Preparation", 3, 0.20},
	{"Model Development", 4, 0.30},
	{"Integration & Testing", 3, 0.20},
	{"Deployment & Training", 2, 0.15},
}

func implementationPhases(totalCost, complexity float64) []Phase {
	phases := make([]Phase, len(phaseTemplate))
	for i, t := range phaseTemplate {
		phases[i] = Phase{
			Name:           t.name,
			DurationWeeks:  int(math.Ceil(t.weeks * (1 + complexity*0.5))),
			CostPercentage: t.share,
			Cost:           round2(totalCost * t.share),
		}
	}
	return phases
}

// confidenceScore blends input completeness, industry maturity, process
// certainty and company size into an integer in [0, 100].
func confidenceScore(p BusinessProfile, c AdvancedContext, industry IndustryProfile, size CompanySize, process ProcessType) int {
	provided := []bool{
		c.Email != "",
		c.Company != "",
		p.Industry != "",
		p.CompanySize != "",
		p.CurrentRevenue != 0,
		p.CurrentCosts != 0,
		p.ProcessType != "",
		p.ProcessingTime != 0,
		p.VolumeProcessed != 0,
		p.ErrorRate != nil,
		p.LaborCosts != nil,
	}
	present := 0
	for _, ok := range provided {
		if ok {
			present++
		}
	}
	completeness := float64(present) / float64(len(provided))

	confidence := completeness*0.3 +
		(1-industry.RiskFactor)*0.25 +
		processCertainty(process)*0.25 +
		sizeConfidence(size)*0.2

	score := int(math.Round(confidence * 100))
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return score
}
