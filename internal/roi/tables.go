package roi

import "strings"

// Industry is a closed set of industries the estimator has coefficients for.
// Anything else parses to IndustryUnknown and takes the default branch of
// every table.
type Industry int

const (
	IndustryUnknown Industry = iota
	IndustryTechnology
	IndustryFinance
	IndustryHealthcare
	IndustryManufacturing
	IndustryRetail
	IndustryLogistics
	IndustryAutomotive
)

var industryNames = map[string]Industry{
	"technology":    IndustryTechnology,
	"finance":       IndustryFinance,
	"healthcare":    IndustryHealthcare,
	"manufacturing": IndustryManufacturing,
	"retail":        IndustryRetail,
	"logistics":     IndustryLogistics,
	"automotive":    IndustryAutomotive,
}

// ParseIndustry is case-insensitive and never fails.
func ParseIndustry(s string) Industry {
	if v, ok := industryNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v
	}
	return IndustryUnknown
}

func (i Industry) String() string {
	for name, v := range industryNames {
		if v == i {
			return name
		}
	}
	return "default"
}

// ProcessType is the business process being automated.
type ProcessType int

const (
	ProcessUnknown ProcessType = iota
	ProcessDataProcessing
	ProcessDocumentAnalysis
	ProcessCustomerService
	ProcessQualityControl
	ProcessInventoryManagement
	ProcessFinancialAnalysis
	ProcessHRScreening
	ProcessPredictiveMaintenance
)

var processNames = map[string]ProcessType{
	"data_processing":        ProcessDataProcessing,
	"document_analysis":      ProcessDocumentAnalysis,
	"customer_service":       ProcessCustomerService,
	"quality_control":        ProcessQualityControl,
	"inventory_management":   ProcessInventoryManagement,
	"financial_analysis":     ProcessFinancialAnalysis,
	"hr_screening":           ProcessHRScreening,
	"predictive_maintenance": ProcessPredictiveMaintenance,
}

func ParseProcessType(s string) ProcessType {
	if v, ok := processNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v
	}
	return ProcessUnknown
}

// CompanySize is the coarse headcount bucket a prospect picks on the form.
type CompanySize int

const (
	SizeUnknown CompanySize = iota
	SizeStartup
	SizeSmall
	SizeMedium
	SizeLarge
	SizeEnterprise
)

var sizeNames = map[string]CompanySize{
	"startup":    SizeStartup,
	"small":      SizeSmall,
	"medium":     SizeMedium,
	"large":      SizeLarge,
	"enterprise": SizeEnterprise,
}

func ParseCompanySize(s string) CompanySize {
	if v, ok := sizeNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v
	}
	return SizeUnknown
}

// IndustryProfile holds the advanced calculator's per-industry coefficients.
type IndustryProfile struct {
	BaseEfficiency  float64 `json:"baseEfficiency"`
	AdoptionCurve   float64 `json:"adoptionCurve"`
	RiskFactor      float64 `json:"riskFactor"`
	MaintenanceCost float64 `json:"maintenanceCost"`
	Scalability     float64 `json:"scalability"`
}

// ProcessProfile holds the advanced calculator's per-process coefficients.
type ProcessProfile struct {
	Complexity float64 `json:"complexity"`
	AIImpact   float64 `json:"aiImpact"`
}

// IndustryProfileFor resolves unknown industries to the technology profile.
func IndustryProfileFor(i Industry) IndustryProfile {
	switch i {
	case IndustryFinance:
		return IndustryProfile{0.80, 0.90, 0.10, 0.15, 1.2}
	case IndustryHealthcare:
		return IndustryProfile{0.70, 0.75, 0.20, 0.18, 1.1}
	case IndustryManufacturing:
		return IndustryProfile{0.85, 0.95, 0.12, 0.10, 1.4}
	case IndustryRetail:
		return IndustryProfile{0.72, 0.88, 0.18, 0.14, 1.25}
	case IndustryLogistics:
		return IndustryProfile{0.78, 0.92, 0.15, 0.11, 1.35}
	default:
		return IndustryProfile{0.75, 0.85, 0.15, 0.12, 1.3}
	}
}

// ProcessProfileFor resolves unknown processes to the data_processing profile.
func ProcessProfileFor(p ProcessType) ProcessProfile {
	switch p {
	case ProcessDocumentAnalysis:
		return ProcessProfile{0.70, 0.90}
	case ProcessCustomerService:
		return ProcessProfile{0.80, 0.70}
	case ProcessQualityControl:
		return ProcessProfile{0.75, 0.88}
	case ProcessInventoryManagement:
		return ProcessProfile{0.65, 0.82}
	case ProcessFinancialAnalysis:
		return ProcessProfile{0.85, 0.92}
	case ProcessHRScreening:
		return ProcessProfile{0.70, 0.80}
	case ProcessPredictiveMaintenance:
		return ProcessProfile{0.90, 0.95}
	default:
		return ProcessProfile{0.60, 0.85}
	}
}

// Base calculator tables.

func industryMultiplier(i Industry) float64 {
	switch i {
	case IndustryTechnology, IndustryRetail, IndustryAutomotive:
		return 1.2
	case IndustryFinance, IndustryLogistics:
		return 1.3
	case IndustryHealthcare:
		return 1.1
	case IndustryManufacturing:
		return 1.4
	default:
		return 1.0
	}
}

func sizeMultiplier(s CompanySize) float64 {
	switch s {
	case SizeEnterprise:
		return 1.3
	case SizeLarge:
		return 1.2
	case SizeMedium:
		return 1.1
	case SizeStartup:
		return 0.9
	default:
		return 1.0
	}
}

func processEfficiency(p ProcessType) float64 {
	switch p {
	case ProcessDataProcessing, ProcessHRScreening:
		return 0.75
	case ProcessDocumentAnalysis:
		return 0.80
	case ProcessCustomerService:
		return 0.60
	case ProcessQualityControl, ProcessFinancialAnalysis:
		return 0.70
	default:
		return 0.65
	}
}

// complexityMultiplier reads the raw company_size text by substring, so
// "Large Enterprise" or "medium-sized" still classify. It is deliberately
// independent of sizeMultiplier.
func complexityMultiplier(companySize string) float64 {
	s := strings.ToLower(companySize)
	switch {
	case strings.Contains(s, "enterprise"), strings.Contains(s, "large"):
		return 1.6
	case strings.Contains(s, "medium"):
		return 1.3
	case strings.Contains(s, "small"):
		return 1.0
	default:
		return 0.8
	}
}

// Advanced calculator tables.

func sizeRiskMultiplier(s CompanySize) float64 {
	switch s {
	case SizeStartup:
		return 1.4
	case SizeSmall:
		return 1.2
	case SizeLarge:
		return 0.8
	case SizeEnterprise:
		return 0.6
	default:
		return 1.0
	}
}

func sizeConfidence(s CompanySize) float64 {
	switch s {
	case SizeStartup:
		return 0.6
	case SizeSmall:
		return 0.7
	case SizeLarge:
		return 0.9
	case SizeEnterprise:
		return 0.95
	default:
		return 0.8
	}
}

// riskComplexity and certainty use 0.7 for processes outside the table
// rather than the data_processing fallback.
func riskComplexity(p ProcessType) float64 {
	if p == ProcessUnknown {
		return 0.7
	}
	return ProcessProfileFor(p).Complexity
}

func processCertainty(p ProcessType) float64 {
	if p == ProcessUnknown {
		return 0.7
	}
	return ProcessProfileFor(p).AIImpact
}
