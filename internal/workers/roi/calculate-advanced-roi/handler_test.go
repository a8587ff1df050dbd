package calculateadvancedroi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/roi"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func createTestInput() *Input {
	return &Input{
		BusinessProfile: roi.BusinessProfile{
			Industry:        "technology",
			ProcessType:     "data_processing",
			CompanySize:     "medium",
			CurrentRevenue:  1_000_000,
			CurrentCosts:    500_000,
			ProcessingTime:  2.0,
			VolumeProcessed: 1000,
			ErrorRate:       floatPtr(5.0),
		},
		AdvancedContext: roi.AdvancedContext{
			Email:   "cto@example.com",
			Company: "Example Corp",
		},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.Equal(t, "advanced", output.Calculator)
	assert.Equal(t, roi.TierHighlyRecommended, output.Summary.Recommendation)
	assert.Equal(t, "immediate", output.Summary.Priority)
	assert.Equal(t, 86, output.Summary.ConfidenceScore)
	assert.InDelta(t, 19.5, output.Summary.RiskScore, 0.001)
	assert.Equal(t, output.Analysis.NetSavings, output.Summary.NetSavings)
	assert.InDelta(t, 82500.0, output.Analysis.ImplementationCost, 0.001)
}

func TestHandler_Execute_InvalidContext(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, logger.NewTestLogger(t))

	input := createTestInput()
	input.DataQuality = floatPtr(120)

	_, err := h.Execute(context.Background(), input)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeInvalidROIInput, stdErr.Code)
}

func TestOutput_JSONShape(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	raw, err := json.Marshal(output)
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &vars))

	summary := vars["summary"].(map[string]interface{})
	assert.Equal(t, "HIGHLY RECOMMENDED", summary["recommendation"])

	analysis := vars["analysis"].(map[string]interface{})
	assert.Contains(t, analysis, "growthProjections")
	assert.Contains(t, analysis, "implementationPhases")
	assert.Contains(t, analysis, "riskScore")
}

// ==========================
// Input Decoding Tests
// ==========================

func TestInputDecoding_ProfileAndContext(t *testing.T) {
	job := entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:  7,
		Type: TaskType,
		Variables: `{"industry":"finance","processType":"document_analysis","companySize":"large",
			"currentRevenue":5000000,"currentCosts":2000000,"currentProcessingTime":3,
			"volumeProcessed":2500,"dataQuality":80,"implementationCost":120000,"email":"cfo@bank.example"}`,
	}}

	var input Input
	require.NoError(t, camunda.DecodeVariables(job, inputSchema, &input))
	assert.Equal(t, "finance", input.Industry)
	assert.Equal(t, 2500.0, input.VolumeProcessed)
	require.NotNil(t, input.DataQuality)
	assert.Equal(t, 80.0, *input.DataQuality)
	require.NotNil(t, input.ImplementationCost)
	assert.Equal(t, 120000.0, *input.ImplementationCost)
	assert.Equal(t, "cfo@bank.example", input.Email)
}
