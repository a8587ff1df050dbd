package roi

// Tier is the recommendation verdict shown to the prospect.
type Tier string

const (
	TierHighlyRecommended        Tier = "HIGHLY RECOMMENDED"
	TierRecommended              Tier = "RECOMMENDED"
	TierConditionallyRecommended Tier = "CONDITIONALLY RECOMMENDED"
	TierFurtherAnalysisNeeded    Tier = "FURTHER ANALYSIS NEEDED"
)

type Recommendation struct {
	Recommendation Tier     `json:"recommendation"`
	Priority       string   `json:"priority"`
	Reasoning      string   `json:"reasoning"`
	NextSteps      []string `json:"nextSteps"`
}

var recommendationTable = []struct {
	minROI     float64
	maxPayback float64
	maxRisk    float64
	rec        Recommendation
}{
	{200, 12, 20, Recommendation{
		Recommendation: TierHighlyRecommended,
		Priority:       "immediate",
		Reasoning:      "Exceptional ROI with low risk and fast payback.",
		NextSteps: []string{
			"Schedule executive presentation",
			"Begin vendor selection process",
			"Allocate budget and resources",
			"Form implementation team",
		},
	}},
	{100, 18, 30, Recommendation{
		Recommendation: TierRecommended,
		Priority:       "high",
		Reasoning:      "Strong business case with manageable risk.",
		NextSteps: []string{
			"Conduct detailed feasibility study",
			"Identify pilot use case",
			"Assess organizational readiness",
			"Develop implementation roadmap",
		},
	}},
	{50, 24, 40, Recommendation{
		Recommendation: TierConditionallyRecommended,
		Priority:       "medium",
		Reasoning:      "Positive ROI but requires careful risk management.",
		NextSteps: []string{
			"Address identified risk factors",
			"Improve data quality initiatives",
			"Consider phased implementation",
			"Seek additional stakeholder buy-in",
		},
	}},
}

var fallbackRecommendation = Recommendation{
	Recommendation: TierFurtherAnalysisNeeded,
	Priority:       "low",
	Reasoning:      "ROI projection requires optimization or risk mitigation.",
	NextSteps: []string{
		"Refine business requirements",
		"Explore alternative approaches",
		"Conduct market research",
		"Consider consulting engagement",
	},
}

// Recommend picks the first tier whose three thresholds are all met,
// comparing strictly.
func Recommend(threeYearROI, paybackMonths, riskScore float64) Recommendation {
	for _, row := range recommendationTable {
		if threeYearROI > row.minROI && paybackMonths < row.maxPayback && riskScore < row.maxRisk {
			return copyRecommendation(row.rec)
		}
	}
	return copyRecommendation(fallbackRecommendation)
}

func copyRecommendation(r Recommendation) Recommendation {
	r.NextSteps = append([]string(nil), r.NextSteps...)
	return r
}
