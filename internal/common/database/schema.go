package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables lists the application tables in creation order.
var Tables = []string{
	"contact_submissions",
	"roi_calculations",
	"case_studies",
	"case_study_inquiries",
	"industry_benchmarks",
	"audit_log",
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS contact_submissions (
		id                  UUID PRIMARY KEY,
		first_name          VARCHAR(100) NOT NULL,
		last_name           VARCHAR(100) NOT NULL,
		email               VARCHAR(255) NOT NULL,
		company             VARCHAR(255),
		job_title           VARCHAR(255),
		phone               VARCHAR(50),
		company_size        VARCHAR(50),
		industry            VARCHAR(100),
		budget_range        VARCHAR(50),
		project_timeline    VARCHAR(50),
		project_description TEXT,
		ai_experience       VARCHAR(50),
		specific_challenges TEXT,
		current_ai_tools    TEXT,
		expected_outcomes   TEXT,
		form_step           INTEGER NOT NULL DEFAULT 1,
		is_qualified        BOOLEAN NOT NULL DEFAULT FALSE,
		lead_score          INTEGER NOT NULL DEFAULT 0,
		utm_source          VARCHAR(100),
		utm_medium          VARCHAR(100),
		utm_campaign        VARCHAR(100),
		referrer            VARCHAR(500),
		ip_address          VARCHAR(45),
		user_agent          TEXT,
		additional_data     JSONB,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_submissions_email ON contact_submissions (email)`,
	`CREATE TABLE IF NOT EXISTS roi_calculations (
		id                      UUID PRIMARY KEY,
		email                   VARCHAR(255) NOT NULL,
		company                 VARCHAR(255),
		industry                VARCHAR(100) NOT NULL,
		company_size            VARCHAR(50) NOT NULL,
		current_revenue         DOUBLE PRECISION NOT NULL,
		current_costs           DOUBLE PRECISION NOT NULL,
		process_type            VARCHAR(100) NOT NULL,
		current_processing_time DOUBLE PRECISION NOT NULL,
		volume_processed        DOUBLE PRECISION NOT NULL,
		error_rate              DOUBLE PRECISION,
		labor_costs             DOUBLE PRECISION,
		potential_savings       DOUBLE PRECISION NOT NULL,
		efficiency_gain         DOUBLE PRECISION NOT NULL,
		payback_period          DOUBLE PRECISION NOT NULL,
		three_year_roi          DOUBLE PRECISION NOT NULL,
		implementation_cost     DOUBLE PRECISION NOT NULL,
		calculation_inputs      JSONB NOT NULL,
		calculation_results     JSONB NOT NULL,
		pdf_generated           BOOLEAN NOT NULL DEFAULT FALSE,
		pdf_downloaded          BOOLEAN NOT NULL DEFAULT FALSE,
		follow_up_requested     BOOLEAN NOT NULL DEFAULT FALSE,
		report_sent_at          TIMESTAMPTZ,
		created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at              TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_roi_calculations_email ON roi_calculations (email)`,
	`CREATE TABLE IF NOT EXISTS case_studies (
		id                        UUID PRIMARY KEY,
		title                     VARCHAR(255) NOT NULL,
		slug                      VARCHAR(255) NOT NULL UNIQUE,
		client_name               VARCHAR(255) NOT NULL,
		client_logo_url           VARCHAR(500),
		industry                  VARCHAR(100) NOT NULL,
		company_size              VARCHAR(50) NOT NULL,
		challenge                 TEXT NOT NULL,
		solution                  TEXT NOT NULL,
		results                   TEXT NOT NULL,
		implementation_time       INTEGER NOT NULL,
		cost_savings              DOUBLE PRECISION,
		efficiency_gain           DOUBLE PRECISION,
		roi_percentage            DOUBLE PRECISION,
		error_reduction           DOUBLE PRECISION,
		time_savings              DOUBLE PRECISION,
		technologies_used         JSONB,
		process_types             JSONB,
		hero_image_url            VARCHAR(500),
		client_testimonial        TEXT,
		client_testimonial_author VARCHAR(255),
		client_testimonial_title  VARCHAR(255),
		meta_description          VARCHAR(500),
		keywords                  JSONB,
		is_published              BOOLEAN NOT NULL DEFAULT FALSE,
		is_featured               BOOLEAN NOT NULL DEFAULT FALSE,
		publish_date              TIMESTAMPTZ,
		view_count                INTEGER NOT NULL DEFAULT 0,
		lead_generation_count     INTEGER NOT NULL DEFAULT 0,
		created_at                TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at                TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_case_studies_industry ON case_studies (industry)`,
	`CREATE TABLE IF NOT EXISTS case_study_inquiries (
		id                  UUID PRIMARY KEY,
		case_study_id       UUID NOT NULL REFERENCES case_studies (id),
		first_name          VARCHAR(100) NOT NULL,
		last_name           VARCHAR(100) NOT NULL,
		email               VARCHAR(255) NOT NULL,
		company             VARCHAR(255),
		job_title           VARCHAR(255),
		inquiry_message     TEXT,
		similar_challenge   BOOLEAN NOT NULL DEFAULT FALSE,
		interested_services JSONB,
		referrer_url        VARCHAR(500),
		ip_address          VARCHAR(45),
		user_agent          TEXT,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS industry_benchmarks (
		id                      UUID PRIMARY KEY,
		industry                VARCHAR(100) NOT NULL,
		process_type            VARCHAR(100) NOT NULL,
		avg_implementation_time INTEGER NOT NULL,
		avg_cost_savings        DOUBLE PRECISION NOT NULL,
		avg_efficiency_gain     DOUBLE PRECISION NOT NULL,
		avg_roi                 DOUBLE PRECISION NOT NULL,
		sample_size             INTEGER NOT NULL,
		confidence_level        DOUBLE PRECISION NOT NULL DEFAULT 95.0,
		notes                   TEXT,
		data_sources            JSONB,
		last_updated            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at              TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id          UUID PRIMARY KEY,
		entity_type VARCHAR(100) NOT NULL,
		entity_id   VARCHAR(100) NOT NULL,
		action      VARCHAR(50) NOT NULL,
		details     JSONB,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate applies the schema. Every statement is idempotent, so it is safe
// to run on each deploy.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d: %w", i+1, err)
		}
	}
	return nil
}

// TableStats returns the row count of every application table.
func TableStats(ctx context.Context, db *sql.DB) (map[string]int64, error) {
	stats := make(map[string]int64, len(Tables))
	for _, table := range Tables {
		var n int64
		// table names come from the fixed list above
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		stats[table] = n
	}
	return stats, nil
}
