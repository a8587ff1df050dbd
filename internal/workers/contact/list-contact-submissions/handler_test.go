package listcontactsubmissions

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var columns = []string{
	"id", "first_name", "last_name", "email", "company", "job_title", "phone",
	"company_size", "industry", "budget_range", "project_timeline", "project_description",
	"ai_experience", "specific_challenges", "current_ai_tools", "expected_outcomes",
	"form_step", "is_qualified", "lead_score", "utm_source", "utm_medium", "utm_campaign", "referrer",
	"ip_address", "user_agent", "additional_data", "created_at", "updated_at",
}

var createdAt = time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC)

func addRow(rows *sqlmock.Rows, id, email string, step, score int, qualified bool) *sqlmock.Rows {
	return rows.AddRow(
		id, "Ada", "Lovelace", email, "Analytical Engines Ltd", nil, nil,
		nil, nil, nil, nil, nil,
		nil, nil, nil, nil,
		step, qualified, score, nil, nil, nil, nil,
		nil, nil, nil, createdAt, nil,
	)
}

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHandler(LoadConfig(), db, logger.NewTestLogger(t)), mock
}

// ==========================
// Pagination Tests
// ==========================

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name          string
		skip, limit   int
		expectedSkip  int
		expectedLimit int
	}{
		{"defaults", 0, 0, 0, 100},
		{"in range", 40, 20, 40, 20},
		{"negative skip", -1, 20, 0, 20},
		{"limit above max", 0, 101, 0, 100},
		{"negative limit", 0, -10, 0, 100},
		{"min limit", 0, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, limit := normalizePage(tt.skip, tt.limit)
			assert.Equal(t, tt.expectedSkip, skip)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_List(t *testing.T) {
	h, mock := newTestHandler(t)

	rows := sqlmock.NewRows(columns)
	addRow(rows, "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d", "ada@analytical.example", 5, 82, true)
	addRow(rows, "1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f", "charles@engines.example", 2, 0, false)
	mock.ExpectQuery(`ORDER BY created_at DESC\s+OFFSET \$1 LIMIT \$2`).
		WithArgs(0, 100).
		WillReturnRows(rows)

	output, err := h.Execute(context.Background(), &Input{Skip: -3, Limit: 500})
	require.NoError(t, err)

	assert.Equal(t, 2, output.Count)
	assert.Equal(t, 0, output.Skip)
	assert.Equal(t, 100, output.Limit)
	assert.Equal(t, "ada@analytical.example", output.Submissions[0].Email)
	assert.True(t, output.Submissions[0].IsComplete())
	assert.Equal(t, 82, output.Submissions[0].LeadScore)
	assert.False(t, output.Submissions[1].IsComplete())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_EmptyPage(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(`FROM contact_submissions`).WithArgs(200, 50).WillReturnRows(sqlmock.NewRows(columns))

	output, err := h.Execute(context.Background(), &Input{Skip: 200, Limit: 50})
	require.NoError(t, err)
	assert.NotNil(t, output.Submissions)
	assert.Equal(t, 0, output.Count)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_QueryFailed(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(`FROM contact_submissions`).WillReturnError(stderrors.New("connection refused"))

	_, err := h.Execute(context.Background(), &Input{})
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
