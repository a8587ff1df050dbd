package createroirecord

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/roi"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func createTestInput() *Input {
	errorRate := 5.0
	return &Input{
		BusinessProfile: roi.BusinessProfile{
			Industry:        "technology",
			ProcessType:     "data_processing",
			CompanySize:     "medium",
			CurrentRevenue:  1_000_000,
			CurrentCosts:    500_000,
			ProcessingTime:  2.0,
			VolumeProcessed: 1000,
			ErrorRate:       &errorRate,
		},
		Result: roi.Result{
			PotentialSavings:   1348710,
			EfficiencyGain:     75,
			PaybackPeriod:      0.6,
			ThreeYearROI:       6124.8,
			ImplementationCost: 65000,
		},
		Email:      " CTO@Example.com ",
		Company:    "Example Corp",
		Calculator: "base",
	}
}

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewHandler(LoadConfig(), db, logger.NewTestLogger(t))
	h.now = func() time.Time { return fixedNow }
	return h, mock
}

func expectInsert(mock sqlmock.Sqlmock) *sqlmock.ExpectedExec {
	return mock.ExpectExec(`INSERT INTO roi_calculations`).
		WithArgs(
			sqlmock.AnyArg(), // calculation ID (UUID)
			"cto@example.com",
			sqlmock.AnyArg(), // company
			"technology",
			"medium",
			1_000_000.0,
			500_000.0,
			"data_processing",
			2.0,
			1000.0,
			sqlmock.AnyArg(), // error rate
			sqlmock.AnyArg(), // labor costs
			1348710.0,
			75.0,
			0.6,
			6124.8,
			65000.0,
			sqlmock.AnyArg(), // inputs JSON
			sqlmock.AnyArg(), // results JSON
			fixedNow,
		)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	h, mock := newTestHandler(t)

	expectInsert(mock).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(sqlmock.AnyArg(), "roi_calculation", sqlmock.AnyArg(), "created", sqlmock.AnyArg(), fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	_, err = uuid.Parse(output.CalculationID)
	assert.NoError(t, err)
	assert.Equal(t, "2026-10-19T09:00:00Z", output.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_EveryCalculationIsANewRow(t *testing.T) {
	h, mock := newTestHandler(t)

	for i := 0; i < 2; i++ {
		expectInsert(mock).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO audit_log`).WillReturnResult(sqlmock.NewResult(1, 1))
	}

	first, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.CalculationID, second.CalculationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_AuditFailureIsNonFatal(t *testing.T) {
	h, mock := newTestHandler(t)

	expectInsert(mock).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnError(stderrors.New("audit table locked"))

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	assert.NotEmpty(t, output.CalculationID)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_InsertFailed(t *testing.T) {
	h, mock := newTestHandler(t)

	expectInsert(mock).WillReturnError(stderrors.New("connection reset by peer"))

	_, err := h.Execute(context.Background(), createTestInput())

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeDatabaseInsertFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestHandler_Execute_InvalidEmail(t *testing.T) {
	h, mock := newTestHandler(t)

	input := createTestInput()
	input.Email = "not-an-email"

	_, err := h.Execute(context.Background(), input)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Stored Results Tests
// ==========================

func TestStoredResults_IncludesAdvancedAnalysis(t *testing.T) {
	raw, err := json.Marshal(storedResults{
		Result:     roi.Result{PotentialSavings: 100},
		Calculator: "advanced",
		Advanced:   json.RawMessage(`{"confidenceScore":86}`),
	})
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 100.0, doc["potentialSavings"])
	assert.Equal(t, "advanced", doc["calculator"])
	assert.Equal(t, 86.0, doc["advanced"].(map[string]interface{})["confidenceScore"])
}
