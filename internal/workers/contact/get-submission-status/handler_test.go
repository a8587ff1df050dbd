package getsubmissionstatus

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

const submissionID = "0d9c1b7e-2f4a-4e8b-9c6d-5a4b3c2d1e0f"

var statusColumns = []string{"id", "form_step", "lead_score", "is_qualified", "created_at", "updated_at"}

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHandler(LoadConfig(), db, logger.NewNoOpLogger()), mock
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr), "expected StandardError, got %v", err)
	assert.Equal(t, code, stdErr.Code)
}

func TestHandler_Execute(t *testing.T) {
	created := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		formStep  int
		score     int
		qualified bool
		complete  bool
	}{
		{"in progress", 2, 0, false, false},
		{"completed and qualified", 5, 90, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mock := newTestHandler(t)
			mock.ExpectQuery(`FROM contact_submissions`).
				WithArgs(submissionID).
				WillReturnRows(sqlmock.NewRows(statusColumns).AddRow(submissionID, tt.formStep, tt.score, tt.qualified, created, nil))

			output, err := h.Execute(context.Background(), &Input{SubmissionID: submissionID})
			require.NoError(t, err)

			assert.Equal(t, submissionID, output.SubmissionID)
			assert.Equal(t, tt.formStep, output.FormStep)
			assert.Equal(t, tt.complete, output.IsCompleted)
			assert.Equal(t, tt.score, output.LeadScore)
			assert.Equal(t, tt.qualified, output.IsQualified)
			assert.Equal(t, created, output.CreatedAt)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_NotFound(t *testing.T) {
	h, mock := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{SubmissionID: "not-a-uuid"})
	requireCode(t, err, errors.ErrCodeRecordNotFound)

	mock.ExpectQuery(`FROM contact_submissions`).WithArgs(submissionID).WillReturnRows(sqlmock.NewRows(statusColumns))
	_, err = h.Execute(context.Background(), &Input{SubmissionID: submissionID})
	requireCode(t, err, errors.ErrCodeRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
