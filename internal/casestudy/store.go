package casestudy

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"consultancy-workers/internal/common/database"
	"consultancy-workers/internal/common/errors"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Featured lists published, featured case studies, newest first.
func (st *Store) Featured(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := st.db.QueryContext(ctx, `
		SELECT `+summaryColumns+`
		FROM case_studies
		WHERE is_featured = TRUE AND is_published = TRUE
		ORDER BY publish_date DESC NULLS LAST
		LIMIT $1`, limit)
	if err != nil {
		return nil, queryError(ctx, "select", err)
	}
	return collectSummaries(ctx, rows)
}

// ViewBySlug returns a published case study and counts the view in the same
// statement. A missing or unpublished study is RECORD_NOT_FOUND.
func (st *Store) ViewBySlug(ctx context.Context, slug string) (*CaseStudy, error) {
	row := st.db.QueryRowContext(ctx, `
		UPDATE case_studies
		SET view_count = view_count + 1
		WHERE slug = $1 AND is_published = TRUE
		RETURNING `+detailColumns, slug)

	cs, err := scanCaseStudy(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewRecordNotFoundError("Case study", slug)
	}
	if err != nil {
		return nil, queryError(ctx, "update", err)
	}
	return cs, nil
}

// Load reads one case study by id or slug, published or not.
func (st *Store) Load(ctx context.Context, key string) (*CaseStudy, error) {
	column := "slug"
	if _, err := uuid.Parse(key); err == nil {
		column = "id"
	}
	row := st.db.QueryRowContext(ctx, `
		SELECT `+detailColumns+`
		FROM case_studies
		WHERE `+column+` = $1`, key)

	cs, err := scanCaseStudy(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewRecordNotFoundError("Case study", key)
	}
	if err != nil {
		return nil, queryError(ctx, "select", err)
	}
	return cs, nil
}

// Stats aggregates the published case studies. Aggregates over no rows are
// zero.
func (st *Store) Stats(ctx context.Context) (*Stats, error) {
	var (
		s                         Stats
		savings, impl, roi, effcy sql.NullFloat64
		featured                  sql.NullInt64
	)
	err := st.db.QueryRowContext(ctx, `
		SELECT COUNT(id),
			SUM(cost_savings),
			AVG(implementation_time),
			AVG(roi_percentage),
			AVG(efficiency_gain),
			COUNT(DISTINCT industry),
			SUM(CASE WHEN is_featured THEN 1 ELSE 0 END)
		FROM case_studies
		WHERE is_published = TRUE`).Scan(
		&s.TotalCaseStudies, &savings, &impl, &roi, &effcy, &s.IndustriesServed, &featured,
	)
	if err != nil {
		return nil, queryError(ctx, "aggregate", err)
	}
	s.TotalCostSavings = savings.Float64
	s.AvgImplementationTime = impl.Float64
	s.AvgROI = roi.Float64
	s.AvgEfficiencyGain = effcy.Float64
	s.FeaturedCount = int(featured.Int64)
	return &s, nil
}

// Similar lists published studies sharing the industry or company size of
// the given one, most viewed first.
func (st *Store) Similar(ctx context.Context, caseStudyID string, limit int) ([]Summary, error) {
	var industry, companySize string
	err := st.db.QueryRowContext(ctx,
		`SELECT industry, company_size FROM case_studies WHERE id = $1`, caseStudyID,
	).Scan(&industry, &companySize)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewRecordNotFoundError("Case study", caseStudyID)
	}
	if err != nil {
		return nil, queryError(ctx, "select", err)
	}

	rows, err := st.db.QueryContext(ctx, `
		SELECT `+summaryColumns+`
		FROM case_studies
		WHERE id <> $1 AND is_published = TRUE
			AND (industry = $2 OR company_size = $3)
		ORDER BY view_count DESC
		LIMIT $4`, caseStudyID, industry, companySize, limit)
	if err != nil {
		return nil, queryError(ctx, "select", err)
	}
	return collectSummaries(ctx, rows)
}

// Benchmarks filters industry_benchmarks by case-insensitive substring on
// industry and process type. Empty filters match everything.
func (st *Store) Benchmarks(ctx context.Context, industry, processType string) ([]Benchmark, error) {
	var (
		where []string
		args  []interface{}
	)
	if industry != "" {
		args = append(args, "%"+likeEscape(industry)+"%")
		where = append(where, fmt.Sprintf("industry ILIKE $%d", len(args)))
	}
	if processType != "" {
		args = append(args, "%"+likeEscape(processType)+"%")
		where = append(where, fmt.Sprintf("process_type ILIKE $%d", len(args)))
	}

	query := `
		SELECT id, industry, process_type, avg_implementation_time, avg_cost_savings,
			avg_efficiency_gain, avg_roi, sample_size, confidence_level, notes,
			data_sources, last_updated, created_at, updated_at
		FROM industry_benchmarks`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY industry, process_type"

	rows, err := st.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(ctx, "select", err)
	}
	defer rows.Close()

	benchmarks := []Benchmark{}
	for rows.Next() {
		var (
			b         Benchmark
			notes     sql.NullString
			sources   []byte
			updatedAt sql.NullTime
		)
		if err := rows.Scan(
			&b.ID, &b.Industry, &b.ProcessType, &b.AvgImplementationTime, &b.AvgCostSavings,
			&b.AvgEfficiencyGain, &b.AvgROI, &b.SampleSize, &b.ConfidenceLevel, &notes,
			&sources, &b.LastUpdated, &b.CreatedAt, &updatedAt,
		); err != nil {
			return nil, queryError(ctx, "scan", err)
		}
		b.Notes = notes.String
		b.UpdatedAt = timeOrNil(updatedAt)
		if err := decodeList(sources, &b.DataSources); err != nil {
			return nil, errors.NewQueryExecutionFailedError("decode", err)
		}
		benchmarks = append(benchmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "select", err)
	}
	return benchmarks, nil
}

// CreateInquiry stores inq and credits the case study with a generated lead,
// in one transaction. An unknown case study is RECORD_NOT_FOUND.
func (st *Store) CreateInquiry(ctx context.Context, inq *Inquiry) error {
	var services []byte
	if len(inq.InterestedServices) > 0 {
		raw, err := json.Marshal(inq.InterestedServices)
		if err != nil {
			return errors.NewInternalError(err)
		}
		services = raw
	}

	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewDatabaseConnectionFailedError(err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `
		UPDATE case_studies
		SET lead_generation_count = lead_generation_count + 1
		WHERE id = $1`, inq.CaseStudyID)
	if err != nil {
		return queryError(ctx, "update", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return queryError(ctx, "update", err)
	} else if n == 0 {
		return errors.NewRecordNotFoundError("Case study", inq.CaseStudyID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO case_study_inquiries (
			id, case_study_id, first_name, last_name, email, company, job_title,
			inquiry_message, similar_challenge, interested_services,
			referrer_url, ip_address, user_agent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		inq.ID, inq.CaseStudyID, inq.FirstName, inq.LastName, inq.Email,
		database.NullString(inq.Company), database.NullString(inq.JobTitle),
		database.NullString(inq.InquiryMessage), inq.SimilarChallenge, services,
		database.NullString(inq.ReferrerURL), database.NullString(inq.IPAddress),
		database.NullString(inq.UserAgent), inq.CreatedAt,
	)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

func collectSummaries(ctx context.Context, rows *sql.Rows) ([]Summary, error) {
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, queryError(ctx, "scan", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "select", err)
	}
	return summaries, nil
}

func queryError(ctx context.Context, queryType string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewQueryTimeoutError(queryType)
	}
	return errors.NewQueryExecutionFailedError(queryType, err)
}

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeEscape makes s match literally inside an ILIKE pattern.
func likeEscape(s string) string {
	return likeReplacer.Replace(s)
}
