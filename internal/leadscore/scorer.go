// Package leadscore turns a contact-form record into a 0-100 sales
// qualification score using additive keyword buckets.
package leadscore

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxScore = 100

	// DefaultQualificationThreshold is the score at which a lead is routed
	// to sales as qualified.
	DefaultQualificationThreshold = 70
)

// ContactRecord is the subset of a contact submission the scorer reads.
// FormStep of zero is treated as step 1.
type ContactRecord struct {
	CompanySize        string `json:"companySize"`
	BudgetRange        string `json:"budgetRange"`
	ProjectTimeline    string `json:"projectTimeline"`
	Industry           string `json:"industry"`
	AIExperience       string `json:"aiExperience"`
	JobTitle           string `json:"jobTitle"`
	FormStep           int    `json:"formStep"`
	ProjectDescription string `json:"projectDescription"`
}

// Breakdown holds the points each bucket contributed before clamping.
type Breakdown struct {
	CompanySize  int `json:"companySize"`
	Budget       int `json:"budget"`
	Timeline     int `json:"timeline"`
	Industry     int `json:"industry"`
	AIExperience int `json:"aiExperience"`
	JobTitle     int `json:"jobTitle"`
	FormStep     int `json:"formStep"`
	Description  int `json:"description"`
}

// Raw is the unclamped sum.
func (b Breakdown) Raw() int {
	return b.CompanySize + b.Budget + b.Timeline + b.Industry +
		b.AIExperience + b.JobTitle + b.FormStep + b.Description
}

// Total is the sum clamped to MaxScore.
func (b Breakdown) Total() int {
	if raw := b.Raw(); raw < MaxScore {
		return raw
	}
	return MaxScore
}

type rule struct {
	keywords []string
	points   int
}

// Rules within a bucket are checked in order; the first match wins.
var (
	companySizeRules = []rule{
		{[]string{"enterprise", "1000+", "500+"}, 25},
		{[]string{"medium", "100-500", "50-100"}, 20},
		{[]string{"small", "10-50"}, 15},
		{[]string{"startup", "1-10"}, 10},
	}
	budgetRules = []rule{
		{[]string{"$100k+", "$500k+", "$1m+"}, 30},
		{[]string{"$50k-$100k"}, 25},
		{[]string{"$25k-$50k"}, 20},
		{[]string{"$10k-$25k"}, 15},
		{[]string{"$5k-$10k"}, 10},
	}
	timelineRules = []rule{
		{[]string{"immediate", "1 month", "1-3 months"}, 20},
		{[]string{"3-6 months"}, 15},
		{[]string{"6-12 months"}, 10},
		{[]string{"12+ months"}, 5},
	}
	industryRules = []rule{
		{[]string{"technology", "healthcare", "finance", "manufacturing", "retail", "logistics", "automotive", "pharma"}, 15},
	}
	experienceRules = []rule{
		{[]string{"advanced", "expert"}, 15},
		{[]string{"intermediate", "some"}, 10},
		{[]string{"beginner", "basic"}, 5},
	}
	titleRules = []rule{
		{[]string{"ceo", "cto", "cio", "vp", "director", "head", "chief", "president"}, 15},
		{[]string{"manager", "lead"}, 10},
	}
)

func match(value string, rules []rule) int {
	v := strings.ToLower(value)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(v, kw) {
				return r.points
			}
		}
	}
	return 0
}

func formStepPoints(step int) int {
	if step <= 0 {
		step = 1
	}
	switch {
	case step >= 5:
		return 20
	case step >= 3:
		return 15
	case step >= 2:
		return 10
	}
	return 0
}

func descriptionPoints(desc string) int {
	switch n := utf8.RuneCountInString(desc); {
	case n > 200:
		return 10
	case n > 100:
		return 5
	}
	return 0
}

// Score returns the breakdown for c.
func Score(c ContactRecord) Breakdown {
	return Breakdown{
		CompanySize:  match(c.CompanySize, companySizeRules),
		Budget:       match(c.BudgetRange, budgetRules),
		Timeline:     match(c.ProjectTimeline, timelineRules),
		Industry:     match(c.Industry, industryRules),
		AIExperience: match(c.AIExperience, experienceRules),
		JobTitle:     match(c.JobTitle, titleRules),
		FormStep:     formStepPoints(c.FormStep),
		Description:  descriptionPoints(c.ProjectDescription),
	}
}

// Calculate is shorthand for Score(c).Total().
func Calculate(c ContactRecord) int {
	return Score(c).Total()
}

// IsQualified reports whether score reaches threshold. A non-positive
// threshold means DefaultQualificationThreshold.
func IsQualified(score, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultQualificationThreshold
	}
	return score >= threshold
}

// Tier buckets a score for routing: hot leads are qualified, warm leads get
// nurture mail.
func Tier(score, threshold int) string {
	switch {
	case IsQualified(score, threshold):
		return "hot"
	case score >= 40:
		return "warm"
	default:
		return "cold"
	}
}
