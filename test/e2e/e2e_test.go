// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"consultancy-workers/internal/casestudy"
	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/config"
	"consultancy-workers/internal/common/database"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/contact"
	"consultancy-workers/internal/roi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	css "consultancy-workers/internal/workers/casestudy/case-study-stats"
	scs "consultancy-workers/internal/workers/casestudy/search-case-studies"
	gss "consultancy-workers/internal/workers/contact/get-submission-status"
	sc "consultancy-workers/internal/workers/contact/submit-contact"
	cr "consultancy-workers/internal/workers/roi/calculate-roi"
	crr "consultancy-workers/internal/workers/roi/create-roi-record"
)

// environment holds live clients. The suite needs postgres, redis,
// elasticsearch and zeebe from configs/config.yaml and only runs with E2E=1.
type environment struct {
	cfg   *config.Config
	pg    *database.PostgresClient
	redis *database.RedisClient
	es    *database.ElasticsearchClient
}

func setup(t *testing.T) *environment {
	t.Helper()
	if os.Getenv("E2E") != "1" {
		t.Skip("set E2E=1 to run against live services")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	require.NoError(t, err)

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "PostgreSQL connection failed")
	require.NoError(t, pg.Ping(ctx), "PostgreSQL ping failed")
	require.NoError(t, database.Migrate(ctx, pg.GetDB()))

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	require.NoError(t, rdb.Ping(ctx), "Redis ping failed")

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)
	require.NoError(t, es.Ping(ctx), "Elasticsearch ping failed")

	t.Cleanup(func() {
		pg.Close()
		rdb.Close()
	})
	return &environment{cfg: cfg, pg: pg, redis: rdb, es: es}
}

// ==========================
// Connectivity
// ==========================

func TestZeebeTopology(t *testing.T) {
	env := setup(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := camunda.Connect(ctx, env.cfg.Camunda)
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.HealthCheck(ctx))
}

// ==========================
// Contact Journey
// ==========================

func TestContactJourney(t *testing.T) {
	env := setup(t)
	log := logger.NewTestLogger(t)
	ctx := context.Background()

	form := contact.Form{
		FirstName:          "Grace",
		LastName:           "Hopper",
		Email:              fmt.Sprintf("grace+%d@e2e.example", time.Now().UnixNano()),
		Company:            "Compiler Works",
		JobTitle:           "Director of Engineering",
		CompanySize:        "Large (500+)",
		Industry:           "Finance",
		BudgetRange:        "$100k+",
		ProjectTimeline:    "Immediate",
		ProjectDescription: "Automate reconciliation of daily settlement files across three ledgers.",
		AIExperience:       "Advanced",
		SpecificChallenges: "Two analysts spend every morning matching records by hand.",
		ExpectedOutcomes:   "Same-day reconciliation with exceptions routed to a queue.",
		FormStep:           5,
	}

	submit := sc.NewHandler(&sc.Config{Timeout: 10 * time.Second, QualificationThreshold: env.cfg.LeadScoring.QualificationThreshold}, env.pg.GetDB(), nil, log)
	submitted, err := submit.Execute(ctx, &sc.Input{Form: form, ClientIP: "198.51.100.20"})
	require.NoError(t, err)
	require.NotEmpty(t, submitted.SubmissionID)
	assert.True(t, submitted.IsQualified)

	status := gss.NewHandler(&gss.Config{Timeout: 5 * time.Second}, env.pg.GetDB(), log)
	got, err := status.Execute(ctx, &gss.Input{SubmissionID: submitted.SubmissionID})
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	assert.Equal(t, submitted.LeadScore, got.LeadScore)
}

// ==========================
// ROI Journey
// ==========================

func TestROICalculationIsStored(t *testing.T) {
	env := setup(t)
	log := logger.NewTestLogger(t)
	ctx := context.Background()

	profile := roi.BusinessProfile{
		Industry:        "manufacturing",
		ProcessType:     "data_entry",
		CompanySize:     "medium",
		CurrentRevenue:  5000000,
		CurrentCosts:    3000000,
		ProcessingTime:  40,
		VolumeProcessed: 1000,
	}

	calc := cr.NewHandler(&cr.Config{Timeout: 5 * time.Second}, nil, log)
	result, err := calc.Execute(ctx, &cr.Input{BusinessProfile: profile, Email: "ops@e2e.example", Company: "E2E Manufacturing"})
	require.NoError(t, err)
	assert.Greater(t, result.PotentialSavings, 0.0)

	store := crr.NewHandler(&crr.Config{Timeout: 10 * time.Second}, env.pg.GetDB(), log)
	record, err := store.Execute(ctx, &crr.Input{
		BusinessProfile: profile,
		Result:          result.Result,
		Email:           "ops@e2e.example",
		Company:         "E2E Manufacturing",
		Calculator:      result.Calculator,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, record.CalculationID)
}

// ==========================
// Case Study Search & Stats
// ==========================

func TestCaseStudySearch(t *testing.T) {
	env := setup(t)
	log := logger.NewTestLogger(t)
	ctx := context.Background()

	index := fmt.Sprintf("case_studies_e2e_%d", time.Now().UnixNano())
	require.NoError(t, env.es.EnsureIndex(ctx, index, database.CaseStudyMapping))
	t.Cleanup(func() {
		res, err := env.es.Client.Indices.Delete([]string{index})
		if err == nil {
			res.Body.Close()
		}
	})

	searcher := casestudy.NewSearcher(env.es.Client, index)
	published := time.Now().UTC().Add(-24 * time.Hour)
	_, err := searcher.Put(ctx, &casestudy.CaseStudy{
		ID:          "3f2a7c1e-9b4d-4e8a-a1c6-5d7e9f0b2c4a",
		Slug:        "invoice-automation-logistics",
		Title:       "Invoice automation for a logistics carrier",
		ClientName:  "Northwind Freight",
		Industry:    "Logistics",
		CompanySize: "Large (500+)",
		Challenge:   "Invoices arrived in twelve formats and were keyed by hand.",
		Solution:    "Document extraction with a validation queue for exceptions.",
		Results:     "Processing time fell from four days to six hours.",
		IsPublished: true,
		IsFeatured:  true,
		PublishDate: &published,
	})
	require.NoError(t, err)

	search := scs.NewHandler(&scs.Config{Timeout: 10 * time.Second}, searcher, log)
	out, err := search.Execute(ctx, &scs.Input{SearchQuery: casestudy.SearchQuery{Text: "invoice", Industry: "Logistics"}})
	require.NoError(t, err)
	require.EqualValues(t, 1, out.TotalHits)
	assert.Equal(t, "invoice-automation-logistics", out.Hits[0].Slug)
}

func TestCaseStudyStatsCached(t *testing.T) {
	env := setup(t)
	log := logger.NewTestLogger(t)
	ctx := context.Background()

	rdb := env.redis.GetClient()
	require.NoError(t, rdb.Del(ctx, casestudy.StatsKey).Err())

	h := css.NewHandler(&css.Config{Timeout: 10 * time.Second, CacheTTL: time.Minute}, env.pg.GetDB(), rdb, log)

	first, err := h.Execute(ctx, &css.Input{})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := h.Execute(ctx, &css.Input{})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Stats, second.Stats)
}
