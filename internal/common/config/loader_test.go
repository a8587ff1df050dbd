package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: consultancy
    user: consultancy
  elasticsearch:
    addresses: ["http://localhost:9200"]
  redis:
    address: localhost:6379
workers:
  calculate-roi:
    enabled: true
  notify-sales:
    enabled: false
    timeout: 10000
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// ==========================
// Loading Tests
// ==========================

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "consultancy-workers", cfg.App.Name)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, 25, cfg.Database.Postgres.MaxConnections)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "http://localhost:9200", cfg.Database.Elasticsearch.URL)

	assert.Equal(t, 70, cfg.LeadScoring.QualificationThreshold)
	assert.Equal(t, 5, cfg.RateLimit.ContactPerMinute)
	assert.Equal(t, 5, cfg.RateLimit.InquiryPerMinute)
	assert.Equal(t, 20, cfg.RateLimit.ROIPerMinute)
	assert.Equal(t, 5*time.Minute, GetDuration(cfg.Cache.FeaturedTTL))
	assert.Equal(t, "case_studies", cfg.Search.CaseStudyIndex)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_WorkerDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	roi := cfg.Workers["calculate-roi"]
	assert.True(t, roi.Enabled)
	assert.Equal(t, 5, roi.MaxJobsActive)
	assert.Equal(t, 30000, roi.Timeout)
	assert.Equal(t, 3, roi.MaxRetries)

	sales := GetWorkerConfig(cfg, "notify-sales")
	assert.False(t, sales.Enabled)
	assert.Equal(t, 10000, sales.Timeout)

	assert.False(t, IsWorkerEnabled(cfg, "notify-sales"))
	assert.True(t, IsWorkerEnabled(cfg, "search-case-studies"))
	assert.Equal(t, 5, GetWorkerConfig(cfg, "search-case-studies").MaxJobsActive)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_SALES_INBOX", "sales@example.com")

	cfg, err := LoadFromFile(writeConfig(t, minimalYAML+`
notifications:
  ses:
    enabled: true
    from_email: hello@example.com
    sales_email: ${TEST_SALES_INBOX}
lead_scoring:
  qualification_threshold: 60
`))
	require.NoError(t, err)
	assert.True(t, cfg.Notifications.SES.Enabled)
	assert.Equal(t, "sales@example.com", cfg.Notifications.SES.SalesEmail)
	assert.Equal(t, 60, cfg.LeadScoring.QualificationThreshold)
}

// ==========================
// Validation Tests
// ==========================

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		errPart string
	}{
		{
			name:    "missing broker",
			body:    "database:\n  postgres:\n    host: x\n",
			errPart: "camunda.broker_address",
		},
		{
			name: "ses without sender",
			body: minimalYAML + `
notifications:
  ses:
    enabled: true
`,
			errPart: "notifications.ses.from_email",
		},
		{
			name: "sns without topic",
			body: minimalYAML + `
notifications:
  sns:
    enabled: true
`,
			errPart: "notifications.sns.topic_arn",
		},
		{
			name: "threshold out of range",
			body: minimalYAML + `
lead_scoring:
  qualification_threshold: 150
`,
			errPart: "qualification_threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SALES_TOPIC_ARN", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "consultancy", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=consultancy sslmode=disable", p.GetDSN())
}
