package contact

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"consultancy-workers/internal/common/database"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/validation"
)

// Submission is one row of contact_submissions.
type Submission struct {
	ID string `json:"submissionId"`
	Form
	LeadScore   int       `json:"leadScore"`
	IsQualified bool      `json:"isQualified"`
	IPAddress   string    `json:"ipAddress,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// IsComplete reports whether the progressive form reached its last step.
func (s *Submission) IsComplete() bool {
	return s.FormStep >= validation.LastFormStep
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const submissionColumns = `id, first_name, last_name, email, company, job_title, phone,
	company_size, industry, budget_range, project_timeline, project_description,
	ai_experience, specific_challenges, current_ai_tools, expected_outcomes,
	form_step, is_qualified, lead_score, utm_source, utm_medium, utm_campaign, referrer,
	ip_address, user_agent, additional_data, created_at`

// Insert writes s as a new row.
func (st *Store) Insert(ctx context.Context, s *Submission) error {
	var additional []byte
	if s.AdditionalData != nil {
		raw, err := json.Marshal(s.AdditionalData)
		if err != nil {
			return errors.NewInputParsingFailedError(err)
		}
		additional = raw
	}

	_, err := st.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (`+submissionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`,
		s.ID,
		s.FirstName,
		s.LastName,
		s.Email,
		database.NullString(s.Company),
		database.NullString(s.JobTitle),
		database.NullString(s.Phone),
		database.NullString(s.CompanySize),
		database.NullString(s.Industry),
		database.NullString(s.BudgetRange),
		database.NullString(s.ProjectTimeline),
		database.NullString(s.ProjectDescription),
		database.NullString(s.AIExperience),
		database.NullString(s.SpecificChallenges),
		database.NullString(s.CurrentAITools),
		database.NullString(s.ExpectedOutcomes),
		s.FormStep,
		s.IsQualified,
		s.LeadScore,
		database.NullString(s.UTMSource),
		database.NullString(s.UTMMedium),
		database.NullString(s.UTMCampaign),
		database.NullString(s.Referrer),
		database.NullString(s.IPAddress),
		database.NullString(s.UserAgent),
		additional,
		s.CreatedAt,
	)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// FindByEmail returns the id of the earliest submission for email, if any.
func (st *Store) FindByEmail(ctx context.Context, email string) (string, bool, error) {
	var id string
	err := st.db.QueryRowContext(ctx, `
		SELECT id FROM contact_submissions
		WHERE email = $1
		ORDER BY created_at ASC
		LIMIT 1`, email).Scan(&id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewQueryExecutionFailedError("select", err)
	}
	return id, true, nil
}

// Get loads one submission. A missing row is RECORD_NOT_FOUND.
func (st *Store) Get(ctx context.Context, id string) (*Submission, error) {
	s, err := scanSubmission(st.db.QueryRowContext(ctx, `
		SELECT `+submissionColumns+`, updated_at
		FROM contact_submissions
		WHERE id = $1`, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewRecordNotFoundError("Contact submission", id)
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("select", err)
	}
	return s, nil
}

// List returns a page of submissions, newest first.
func (st *Store) List(ctx context.Context, skip, limit int) ([]Submission, error) {
	rows, err := st.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`, updated_at
		FROM contact_submissions
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("select", err)
	}
	defer rows.Close()

	submissions := []Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("select", err)
		}
		submissions = append(submissions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("select", err)
	}
	return submissions, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row scanner) (*Submission, error) {
	var (
		s          Submission
		opt        [18]sql.NullString
		additional []byte
		updatedAt  sql.NullTime
	)
	err := row.Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Email,
		&opt[0], &opt[1], &opt[2], &opt[3], &opt[4], &opt[5], &opt[6], &opt[7],
		&opt[8], &opt[9], &opt[10], &opt[11],
		&s.FormStep, &s.IsQualified, &s.LeadScore,
		&opt[12], &opt[13], &opt[14], &opt[15], &opt[16], &opt[17],
		&additional, &s.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	targets := []*string{
		&s.Company, &s.JobTitle, &s.Phone, &s.CompanySize, &s.Industry, &s.BudgetRange,
		&s.ProjectTimeline, &s.ProjectDescription, &s.AIExperience, &s.SpecificChallenges,
		&s.CurrentAITools, &s.ExpectedOutcomes,
		&s.UTMSource, &s.UTMMedium, &s.UTMCampaign, &s.Referrer, &s.IPAddress, &s.UserAgent,
	}
	for i, target := range targets {
		*target = opt[i].String
	}
	if len(additional) > 0 {
		if err := json.Unmarshal(additional, &s.AdditionalData); err != nil {
			return nil, fmt.Errorf("decode additional_data: %w", err)
		}
	}
	if updatedAt.Valid {
		s.UpdatedAt = updatedAt.Time
	}
	return &s, nil
}

// Status is the progress summary of a submission.
type Status struct {
	SubmissionID string    `json:"submissionId"`
	FormStep     int       `json:"formStep"`
	IsCompleted  bool      `json:"isCompleted"`
	LeadScore    int       `json:"leadScore"`
	IsQualified  bool      `json:"isQualified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// Status loads the progress columns of one submission without the form body.
func (st *Store) Status(ctx context.Context, id string) (*Status, error) {
	var (
		s         Status
		updatedAt sql.NullTime
	)
	err := st.db.QueryRowContext(ctx, `
		SELECT id, form_step, lead_score, is_qualified, created_at, updated_at
		FROM contact_submissions
		WHERE id = $1`, id).Scan(&s.SubmissionID, &s.FormStep, &s.LeadScore, &s.IsQualified, &s.CreatedAt, &updatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewRecordNotFoundError("Contact submission", id)
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("select", err)
	}
	s.IsCompleted = s.FormStep >= validation.LastFormStep
	if updatedAt.Valid {
		s.UpdatedAt = updatedAt.Time
	}
	return &s, nil
}

type column struct {
	name  string
	value interface{}
}

// stepColumns lists the columns each form step writes.
func stepColumns(step int, f Form) []column {
	switch step {
	case 1:
		return []column{{"first_name", f.FirstName}, {"last_name", f.LastName}, {"email", f.Email}}
	case 2:
		return []column{
			{"company", f.Company},
			{"job_title", f.JobTitle},
			{"phone", database.NullString(f.Phone)},
			{"company_size", f.CompanySize},
		}
	case 3:
		return []column{
			{"industry", f.Industry},
			{"budget_range", f.BudgetRange},
			{"project_timeline", f.ProjectTimeline},
		}
	case 4:
		return []column{
			{"project_description", f.ProjectDescription},
			{"ai_experience", f.AIExperience},
			{"specific_challenges", f.SpecificChallenges},
		}
	case 5:
		return []column{
			{"current_ai_tools", database.NullString(f.CurrentAITools)},
			{"expected_outcomes", f.ExpectedOutcomes},
		}
	}
	return nil
}

// UpdateStep writes the fields of one form step and advances form_step.
// When eval is not nil the score columns are written too.
func (st *Store) UpdateStep(ctx context.Context, id string, step int, f Form, eval *Evaluation, at time.Time) error {
	cols := stepColumns(step, f)
	if cols == nil {
		return errors.NewFormStepInvalidError(step, "no columns for step")
	}
	cols = append(cols, column{"form_step", step})
	if eval != nil {
		cols = append(cols, column{"lead_score", eval.LeadScore}, column{"is_qualified", eval.IsQualified})
	}
	cols = append(cols, column{"updated_at", at})

	sets := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c.name, i+1)
		args = append(args, c.value)
	}
	args = append(args, id)

	// column names come from stepColumns, never from input
	query := fmt.Sprintf("UPDATE contact_submissions SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	res, err := st.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.NewQueryExecutionFailedError("update", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.NewQueryExecutionFailedError("update", err)
	}
	if affected == 0 {
		return errors.NewRecordNotFoundError("Contact submission", id)
	}
	return nil
}
