// Package contact holds the contact-form model shared by the contact
// workers: validation against the form schemas, sanitization, lead scoring
// and the contact_submissions table.
package contact

import (
	"encoding/json"
	"fmt"
	"strings"

	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/validation"
	"consultancy-workers/internal/leadscore"
)

// Form is the contact form as it travels in job variables. Empty fields are
// omitted from Document so that the schemas see them as missing.
type Form struct {
	FirstName          string                 `json:"firstName,omitempty"`
	LastName           string                 `json:"lastName,omitempty"`
	Email              string                 `json:"email,omitempty"`
	Company            string                 `json:"company,omitempty"`
	JobTitle           string                 `json:"jobTitle,omitempty"`
	Phone              string                 `json:"phone,omitempty"`
	CompanySize        string                 `json:"companySize,omitempty"`
	Industry           string                 `json:"industry,omitempty"`
	BudgetRange        string                 `json:"budgetRange,omitempty"`
	ProjectTimeline    string                 `json:"projectTimeline,omitempty"`
	ProjectDescription string                 `json:"projectDescription,omitempty"`
	AIExperience       string                 `json:"aiExperience,omitempty"`
	SpecificChallenges string                 `json:"specificChallenges,omitempty"`
	CurrentAITools     string                 `json:"currentAiTools,omitempty"`
	ExpectedOutcomes   string                 `json:"expectedOutcomes,omitempty"`
	FormStep           int                    `json:"formStep,omitempty"`
	UTMSource          string                 `json:"utmSource,omitempty"`
	UTMMedium          string                 `json:"utmMedium,omitempty"`
	UTMCampaign        string                 `json:"utmCampaign,omitempty"`
	Referrer           string                 `json:"referrer,omitempty"`
	AdditionalData     map[string]interface{} `json:"additionalData,omitempty"`
}

// Maximum stored lengths of the free-text fields.
const (
	maxNameLen      = 100
	maxCompanyLen   = 255
	maxPhoneLen     = 50
	maxIndustryLen  = 100
	maxLongTextLen  = 5000
	maxShortTextLen = 1000
	maxUTMLen       = 100
	maxReferrerLen  = 500
)

// Document renders f as the JSON document the form schemas validate.
func (f Form) Document() (map[string]interface{}, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	doc := map[string]interface{}{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Sanitized returns a copy of f with markup characters stripped from every
// free-text field and the email normalized.
func (f Form) Sanitized() Form {
	f.FirstName = validation.Sanitize(f.FirstName, maxNameLen)
	f.LastName = validation.Sanitize(f.LastName, maxNameLen)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Company = validation.Sanitize(f.Company, maxCompanyLen)
	f.JobTitle = validation.Sanitize(f.JobTitle, maxCompanyLen)
	f.Phone = validation.Sanitize(f.Phone, maxPhoneLen)
	f.CompanySize = validation.Sanitize(f.CompanySize, maxShortTextLen)
	f.Industry = validation.Sanitize(f.Industry, maxIndustryLen)
	f.BudgetRange = validation.Sanitize(f.BudgetRange, maxShortTextLen)
	f.ProjectTimeline = validation.Sanitize(f.ProjectTimeline, maxShortTextLen)
	f.ProjectDescription = validation.Sanitize(f.ProjectDescription, maxLongTextLen)
	f.AIExperience = validation.Sanitize(f.AIExperience, maxShortTextLen)
	f.SpecificChallenges = validation.Sanitize(f.SpecificChallenges, maxLongTextLen)
	f.CurrentAITools = validation.Sanitize(f.CurrentAITools, maxLongTextLen)
	f.ExpectedOutcomes = validation.Sanitize(f.ExpectedOutcomes, maxLongTextLen)
	f.UTMSource = validation.Sanitize(f.UTMSource, maxUTMLen)
	f.UTMMedium = validation.Sanitize(f.UTMMedium, maxUTMLen)
	f.UTMCampaign = validation.Sanitize(f.UTMCampaign, maxUTMLen)
	f.Referrer = validation.Sanitize(f.Referrer, maxReferrerLen)
	return f
}

// ValidateSubmission checks a one-shot submission against the full schema
// plus the email and phone formats.
func ValidateSubmission(f Form) error {
	doc, err := f.Document()
	if err != nil {
		return errors.NewInputParsingFailedError(err)
	}
	result, err := validation.ValidateContactSubmission(doc)
	if err != nil {
		return errors.NewInternalError(err)
	}
	return checkFormats(f, result, true)
}

// ValidateStep checks the fields one progressive-form step supplies.
func ValidateStep(step int, f Form) error {
	if step < validation.FirstFormStep || step > validation.LastFormStep {
		return errors.NewFormStepInvalidError(step,
			fmt.Sprintf("form step must be between %d and %d", validation.FirstFormStep, validation.LastFormStep))
	}
	doc, err := f.Document()
	if err != nil {
		return errors.NewInputParsingFailedError(err)
	}
	result, err := validation.ValidateContactStep(step, doc)
	if err != nil {
		return errors.NewInternalError(err)
	}
	return checkFormats(f, result, step == validation.FirstFormStep)
}

func checkFormats(f Form, result *validation.ValidationResult, checkEmail bool) error {
	if checkEmail && f.Email != "" && !result.HasErrors("email") && !validation.ValidateEmail(strings.TrimSpace(f.Email)) {
		result.Valid = false
		result.Errors = append(result.Errors, validation.ValidationError{
			Field: "email", Message: "Invalid email format", Code: "FORMAT",
		})
	}
	if !validation.ValidatePhone(f.Phone) {
		result.Valid = false
		result.Errors = append(result.Errors, validation.ValidationError{
			Field: "phone", Message: "Invalid phone number format", Code: "FORMAT",
		})
	}
	if !result.Valid {
		return errors.NewContactValidationFailedError(result.Summary())
	}
	return nil
}

// Evaluation is a scored lead.
type Evaluation struct {
	LeadScore         int                 `json:"leadScore"`
	IsQualified       bool                `json:"isQualified"`
	QualificationTier string              `json:"qualificationTier"`
	Breakdown         leadscore.Breakdown `json:"scoreBreakdown"`
}

// Record is the part of f the lead scorer reads.
func (f Form) Record() leadscore.ContactRecord {
	return leadscore.ContactRecord{
		CompanySize:        f.CompanySize,
		BudgetRange:        f.BudgetRange,
		ProjectTimeline:    f.ProjectTimeline,
		Industry:           f.Industry,
		AIExperience:       f.AIExperience,
		JobTitle:           f.JobTitle,
		FormStep:           f.FormStep,
		ProjectDescription: f.ProjectDescription,
	}
}

// Evaluate scores f against the qualification threshold.
func Evaluate(f Form, threshold int) Evaluation {
	breakdown := leadscore.Score(f.Record())
	score := breakdown.Total()
	return Evaluation{
		LeadScore:         score,
		IsQualified:       leadscore.IsQualified(score, threshold),
		QualificationTier: leadscore.Tier(score, threshold),
		Breakdown:         breakdown,
	}
}
