package leadscore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func hotLead() ContactRecord {
	return ContactRecord{
		CompanySize:        "Enterprise (1000+)",
		BudgetRange:        "$500k+",
		ProjectTimeline:    "Immediate",
		Industry:           "Healthcare",
		AIExperience:       "Expert",
		JobTitle:           "CTO",
		FormStep:           5,
		ProjectDescription: strings.Repeat("a", 250),
	}
}

// ==========================
// Score Tests
// ==========================

func TestScore_ClampsToMax(t *testing.T) {
	b := Score(hotLead())

	assert.Equal(t, 25, b.CompanySize)
	assert.Equal(t, 30, b.Budget)
	assert.Equal(t, 20, b.Timeline)
	assert.Equal(t, 15, b.Industry)
	assert.Equal(t, 15, b.AIExperience)
	assert.Equal(t, 15, b.JobTitle)
	assert.Equal(t, 20, b.FormStep)
	assert.Equal(t, 10, b.Description)

	assert.Equal(t, 150, b.Raw())
	assert.Equal(t, MaxScore, b.Total())
	assert.Equal(t, MaxScore, Calculate(hotLead()))
}

func TestScore_EmptyRecord(t *testing.T) {
	assert.Equal(t, 0, Calculate(ContactRecord{}))
}

func TestScore_CompanySizeBuckets(t *testing.T) {
	tests := []struct {
		value    string
		expected int
	}{
		{"enterprise", 25},
		{"500+ employees", 25},
		{"Medium (100-500)", 20},
		{"50-100", 20},
		{"small", 15},
		{"10-50", 15},
		{"Startup", 10},
		{"1-10", 10},
		{"solo", 0},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(ContactRecord{CompanySize: tt.value}).CompanySize)
		})
	}
}

func TestScore_BudgetBuckets(t *testing.T) {
	tests := []struct {
		value    string
		expected int
	}{
		{"$100k+", 30},
		{"$1M+", 30},
		{"$50k-$100k", 25},
		{"$25k-$50k", 20},
		{"$10k-$25k", 15},
		{"$5k-$10k", 10},
		{"under $5k", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(ContactRecord{BudgetRange: tt.value}).Budget)
		})
	}
}

func TestScore_TimelineBuckets(t *testing.T) {
	tests := []struct {
		value    string
		expected int
	}{
		{"immediate", 20},
		{"within 1 month", 20},
		{"1-3 months", 20},
		{"3-6 months", 15},
		{"6-12 months", 10},
		{"12+ months", 5},
		{"someday", 0},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(ContactRecord{ProjectTimeline: tt.value}).Timeline)
		})
	}
}

func TestScore_TitleAndExperience(t *testing.T) {
	assert.Equal(t, 15, Score(ContactRecord{JobTitle: "VP Engineering"}).JobTitle)
	assert.Equal(t, 15, Score(ContactRecord{JobTitle: "Head of Data"}).JobTitle)
	assert.Equal(t, 10, Score(ContactRecord{JobTitle: "Product Manager"}).JobTitle)
	assert.Equal(t, 0, Score(ContactRecord{JobTitle: "Analyst"}).JobTitle)

	assert.Equal(t, 15, Score(ContactRecord{AIExperience: "advanced"}).AIExperience)
	assert.Equal(t, 10, Score(ContactRecord{AIExperience: "some experience"}).AIExperience)
	assert.Equal(t, 5, Score(ContactRecord{AIExperience: "basic"}).AIExperience)
	assert.Equal(t, 0, Score(ContactRecord{AIExperience: "none"}).AIExperience)
}

func TestScore_FormStepAndDescription(t *testing.T) {
	steps := map[int]int{0: 0, 1: 0, 2: 10, 3: 15, 4: 15, 5: 20}
	for step, expected := range steps {
		assert.Equal(t, expected, Score(ContactRecord{FormStep: step}).FormStep, "step %d", step)
	}

	assert.Equal(t, 0, Score(ContactRecord{ProjectDescription: strings.Repeat("x", 100)}).Description)
	assert.Equal(t, 5, Score(ContactRecord{ProjectDescription: strings.Repeat("x", 101)}).Description)
	assert.Equal(t, 5, Score(ContactRecord{ProjectDescription: strings.Repeat("x", 200)}).Description)
	assert.Equal(t, 10, Score(ContactRecord{ProjectDescription: strings.Repeat("x", 201)}).Description)
	// counted in characters, not bytes
	assert.Equal(t, 5, Score(ContactRecord{ProjectDescription: strings.Repeat("é", 150)}).Description)
}

func TestScore_FirstMatchWins(t *testing.T) {
	// "enterprise" appears before "small" in the rule order
	assert.Equal(t, 25, Score(ContactRecord{CompanySize: "small enterprise"}).CompanySize)
}

// ==========================
// Qualification Tests
// ==========================

func TestIsQualified(t *testing.T) {
	assert.True(t, IsQualified(70, 0))
	assert.False(t, IsQualified(69, 0))
	assert.True(t, IsQualified(60, 60))
	assert.False(t, IsQualified(59, 60))
	assert.True(t, IsQualified(100, -1))
}

func TestTier(t *testing.T) {
	assert.Equal(t, "hot", Tier(85, 0))
	assert.Equal(t, "warm", Tier(69, 0))
	assert.Equal(t, "warm", Tier(40, 0))
	assert.Equal(t, "cold", Tier(39, 0))
	assert.Equal(t, "hot", Tier(50, 50))
}
