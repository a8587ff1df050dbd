package scorelead

import (
	"context"
	"strings"
	"testing"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/contact"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Execute_Tiers(t *testing.T) {
	tests := []struct {
		name          string
		form          contact.Form
		expectedScore int
		expectedTier  string
		qualified     bool
	}{
		{
			name: "hot lead clamps to 100",
			form: contact.Form{
				CompanySize: "Enterprise", BudgetRange: "$500k+", ProjectTimeline: "Immediate",
				Industry: "Healthcare", AIExperience: "Expert", JobTitle: "Chief Data Officer",
				FormStep: 5, ProjectDescription: strings.Repeat("d", 201),
			},
			expectedScore: 100,
			expectedTier:  "hot",
			qualified:     true,
		},
		{
			name: "warm lead",
			// 15 size + 15 budget + 10 timeline + 0 industry + 5 experience + 10 title
			form: contact.Form{
				CompanySize: "Small (10-50)", BudgetRange: "$10k-$25k", ProjectTimeline: "6-12 months",
				Industry: "Education", AIExperience: "Basic", JobTitle: "Project Manager",
			},
			expectedScore: 55,
			expectedTier:  "warm",
		},
		{
			name:          "cold lead",
			form:          contact.Form{CompanySize: "Startup", FormStep: 2},
			expectedScore: 20,
			expectedTier:  "cold",
		},
	}

	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := h.Execute(context.Background(), &Input{Form: tt.form})
			require.NoError(t, err)

			assert.Equal(t, tt.expectedScore, output.LeadScore)
			assert.Equal(t, tt.expectedTier, output.QualificationTier)
			assert.Equal(t, tt.qualified, output.IsQualified)
			assert.Equal(t, 70, output.Threshold)
		})
	}
}

func TestHandler_Execute_CustomThreshold(t *testing.T) {
	cfg := LoadConfig()
	cfg.QualificationThreshold = 50
	h := NewHandler(cfg, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), &Input{Form: contact.Form{
		CompanySize: "Small (10-50)", BudgetRange: "$10k-$25k", ProjectTimeline: "6-12 months",
		AIExperience: "Basic", JobTitle: "Project Manager",
	}})
	require.NoError(t, err)

	assert.Equal(t, 55, output.LeadScore)
	assert.True(t, output.IsQualified)
	assert.Equal(t, "hot", output.QualificationTier)
}

func TestInputDecoding_SnakeCaseIgnored(t *testing.T) {
	job := entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       3,
		Type:      TaskType,
		Variables: `{"companySize":"Enterprise","budgetRange":"$100k+","formStep":3,"company_size":"ignored"}`,
	}}

	var input Input
	require.NoError(t, camunda.DecodeVariables(job, nil, &input))
	assert.Equal(t, "Enterprise", input.CompanySize)
	assert.Equal(t, "$100k+", input.BudgetRange)
	assert.Equal(t, 3, input.FormStep)
}
