package getindustrybenchmarks

import (
	"context"
	"testing"
	"time"

	"consultancy-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var benchmarkColumns = []string{
	"id", "industry", "process_type", "avg_implementation_time", "avg_cost_savings",
	"avg_efficiency_gain", "avg_roi", "sample_size", "confidence_level", "notes",
	"data_sources", "last_updated", "created_at", "updated_at",
}

func TestHandler_Execute(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	updated := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE industry ILIKE \$1\s+ORDER BY industry, process_type`).
		WithArgs("%health%").
		WillReturnRows(sqlmock.NewRows(benchmarkColumns).
			AddRow("b1", "Healthcare", "Claims Processing", 45, 32.5, 60.0, 280.0, 25, 95.0, "Survey of US payers",
				[]byte(`["Gartner 2025","Internal"]`), updated, updated, nil).
			AddRow("b2", "Healthcare", "Patient Intake", 30, 21.0, 48.0, 190.0, 14, 90.0, nil,
				nil, updated, updated, updated))

	h := NewHandler(LoadConfig(), db, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), &Input{Industry: " health "})
	require.NoError(t, err)

	assert.Equal(t, 2, output.Count)
	assert.Equal(t, "Claims Processing", output.Benchmarks[0].ProcessType)
	assert.Equal(t, []string{"Gartner 2025", "Internal"}, output.Benchmarks[0].DataSources)
	assert.Empty(t, output.Benchmarks[1].Notes)
	assert.NotNil(t, output.Benchmarks[1].UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_NoMatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM industry_benchmarks`).WillReturnRows(sqlmock.NewRows(benchmarkColumns))

	output, err := NewHandler(LoadConfig(), db, logger.NewNoOpLogger()).Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, 0, output.Count)
	assert.NotNil(t, output.Benchmarks)
}
