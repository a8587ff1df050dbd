package contact

import (
	stderrors "errors"
	"strings"
	"testing"

	"consultancy-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeForm() Form {
	return Form{
		FirstName:          "Ada",
		LastName:           "Lovelace",
		Email:              "ada@analytical.example",
		Company:            "Analytical Engines Ltd",
		JobTitle:           "CTO",
		Phone:              "+44 20 7946 0958",
		CompanySize:        "Medium (100-500)",
		Industry:           "Manufacturing",
		BudgetRange:        "$50k-$100k",
		ProjectTimeline:    "1-3 months",
		ProjectDescription: "Automate quality inspection on the assembly line using computer vision.",
		AIExperience:       "Intermediate",
		SpecificChallenges: "Manual inspection misses 4% of defects.",
		ExpectedOutcomes:   "Halve the defect escape rate within a quarter.",
		FormStep:           5,
	}
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) *errors.StandardError {
	t.Helper()
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr), "expected StandardError, got %v", err)
	assert.Equal(t, code, stdErr.Code)
	return stdErr
}

// ==========================
// Document & Sanitize Tests
// ==========================

func TestDocument_OmitsEmptyFields(t *testing.T) {
	doc, err := Form{FirstName: "Ada", Email: "ada@example.com"}.Document()
	require.NoError(t, err)

	assert.Equal(t, "Ada", doc["firstName"])
	assert.NotContains(t, doc, "lastName")
	assert.NotContains(t, doc, "formStep")
}

func TestSanitized(t *testing.T) {
	f := Form{
		FirstName:          `  <script>Ada</script> `,
		Email:              "  Ada@Example.COM ",
		Company:            `O'Reilly "Media"`,
		ProjectDescription: strings.Repeat("x", 6000),
	}.Sanitized()

	assert.Equal(t, "scriptAdascript", f.FirstName)
	assert.Equal(t, "ada@example.com", f.Email)
	assert.Equal(t, "OReilly Media", f.Company)
	assert.Len(t, f.ProjectDescription, 5000)
}

// ==========================
// Validation Tests
// ==========================

func TestValidateSubmission(t *testing.T) {
	assert.NoError(t, ValidateSubmission(completeForm()))
}

func TestValidateSubmission_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *Form)
		field  string
	}{
		{"missing first name", func(f *Form) { f.FirstName = "" }, "firstName"},
		{"bad email", func(f *Form) { f.Email = "ada.example.com" }, "email"},
		{"bad phone", func(f *Form) { f.Phone = "call me" }, "phone"},
		{"form step out of range", func(f *Form) { f.FormStep = 9 }, "formStep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := completeForm()
			tt.mutate(&f)

			stdErr := requireCode(t, ValidateSubmission(f), errors.ErrCodeContactValidationFailed)
			assert.Contains(t, stdErr.Details, tt.field)
		})
	}
}

func TestValidateStep(t *testing.T) {
	for step := 1; step <= 5; step++ {
		assert.NoError(t, ValidateStep(step, completeForm()), "step %d", step)
	}
}

func TestValidateStep_Errors(t *testing.T) {
	requireCode(t, ValidateStep(0, completeForm()), errors.ErrCodeFormStepInvalid)
	requireCode(t, ValidateStep(6, completeForm()), errors.ErrCodeFormStepInvalid)

	short := completeForm()
	short.ProjectDescription = "AI pls"
	stdErr := requireCode(t, ValidateStep(4, short), errors.ErrCodeContactValidationFailed)
	assert.Contains(t, stdErr.Details, "projectDescription")

	// step 2 does not look at the step 4 fields
	assert.NoError(t, ValidateStep(2, short))
}

// ==========================
// Scoring Tests
// ==========================

func TestEvaluate(t *testing.T) {
	eval := Evaluate(completeForm(), 70)

	// 20 size + 25 budget + 20 timeline + 15 industry + 10 experience + 15 title + 20 step
	assert.Equal(t, 100, eval.LeadScore)
	assert.True(t, eval.IsQualified)
	assert.Equal(t, "hot", eval.QualificationTier)
	assert.Equal(t, 25, eval.Breakdown.Budget)
	assert.Equal(t, 0, eval.Breakdown.Description)
}

func TestEvaluate_EarlyStep(t *testing.T) {
	eval := Evaluate(Form{FirstName: "Ada", Email: "ada@example.com", FormStep: 1}, 70)

	assert.Equal(t, 0, eval.LeadScore)
	assert.False(t, eval.IsQualified)
	assert.Equal(t, "cold", eval.QualificationTier)
}
