package getfeaturedcasestudies

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var published = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

var summaryColumns = []string{
	"id", "title", "slug", "client_name", "client_logo_url", "industry", "company_size",
	"implementation_time", "cost_savings", "efficiency_gain", "roi_percentage",
	"hero_image_url", "meta_description", "is_featured", "view_count", "publish_date", "created_at",
}

func featuredRows() *sqlmock.Rows {
	return sqlmock.NewRows(summaryColumns).
		AddRow("c0ffee00-0000-4000-8000-000000000001", "Invoice AI", "invoice-ai", "Acme", nil, "Finance", "Enterprise",
			30, 250000.0, 65.0, 380.0, nil, nil, true, 40, published, published).
		AddRow("c0ffee00-0000-4000-8000-000000000002", "Claims Triage", "claims-triage", "Beta", nil, "Insurance", "Medium",
			45, 120000.0, nil, 210.0, nil, nil, true, 12, published, published)
}

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *miniredis.Miniredis) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewHandler(LoadConfig(), db, rdb, logger.NewTestLogger(t)), mock, mr
}

// ==========================
// Cache-Aside Tests
// ==========================

func TestHandler_Execute_MissThenHit(t *testing.T) {
	h, mock, mr := newTestHandler(t)

	mock.ExpectQuery(`WHERE is_featured = TRUE AND is_published = TRUE`).WithArgs(DefaultLimit).WillReturnRows(featuredRows())

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.False(t, output.Cached)
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, "invoice-ai", output.CaseStudies[0].Slug)
	assert.True(t, mr.Exists("casestudy:featured:6"))
	assert.Equal(t, 5*time.Minute, mr.TTL("casestudy:featured:6"))

	// second call is served from redis; no query is expected
	output, err = h.Execute(context.Background(), &Input{Limit: 6})
	require.NoError(t, err)
	assert.True(t, output.Cached)
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, "claims-triage", output.CaseStudies[1].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_LimitsCachedSeparately(t *testing.T) {
	h, mock, mr := newTestHandler(t)

	mock.ExpectQuery(`LIMIT \$1`).WithArgs(3).WillReturnRows(sqlmock.NewRows(summaryColumns))

	output, err := h.Execute(context.Background(), &Input{Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, output.CaseStudies)
	assert.NotNil(t, output.CaseStudies)
	assert.True(t, mr.Exists("casestudy:featured:3"))
	assert.False(t, mr.Exists("casestudy:featured:6"))
}

func TestHandler_Execute_RedisDown(t *testing.T) {
	h, mock, mr := newTestHandler(t)
	mr.Close()

	mock.ExpectQuery(`FROM case_studies`).WithArgs(DefaultLimit).WillReturnRows(featuredRows())

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.False(t, output.Cached)
	assert.Equal(t, 2, output.Count)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Limit: 21})
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)

	mock.ExpectQuery(`FROM case_studies`).WillReturnError(stderrors.New("connection reset"))
	_, err = h.Execute(context.Background(), &Input{Limit: 2})
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, stdErr.Code)
}
