package listroicalculations

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "list-roi-calculations"

const selectColumns = `
	SELECT id, email, company, industry, company_size, process_type,
		current_revenue, current_costs, current_processing_time, volume_processed,
		error_rate, labor_costs,
		potential_savings, efficiency_gain, payback_period, three_year_roi, implementation_cost,
		calculation_results, pdf_generated, follow_up_requested, report_sent_at, created_at
	FROM roi_calculations`

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"calculationId": {Type: "string", Nullable: true},
		"skip":          {Type: "integer", Nullable: true},
		"limit":         {Type: "integer", Nullable: true},
	},
}

type Handler struct {
	config     *Config
	db         *sql.DB
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		db:         db,
		logger:     log,
		errHandler: errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(client, job, camunda.Job[Input, Output]{
		TaskType: TaskType,
		Timeout:  h.config.Timeout,
		Logger:   h.logger,
		Errors:   h.errHandler,
		Schema:   inputSchema,
		Execute:  h.Execute,
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.CalculationID != "" {
		return h.getByID(ctx, input.CalculationID)
	}

	skip, limit := normalizePage(input.Skip, input.Limit)
	rows, err := h.db.QueryContext(ctx, selectColumns+`
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, queryError(ctx, err)
	}
	defer rows.Close()

	calculations := []Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("select", err)
		}
		calculations = append(calculations, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("select", err)
	}

	h.logger.Debug("roi calculations listed", map[string]interface{}{
		"skip":  skip,
		"limit": limit,
		"count": len(calculations),
	})

	return &Output{
		Calculations: calculations,
		Count:        len(calculations),
		Skip:         skip,
		Limit:        limit,
	}, nil
}

func (h *Handler) getByID(ctx context.Context, id string) (*Output, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NewRecordNotFoundError("ROI calculation", id)
	}

	c, err := scanCalculation(h.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewRecordNotFoundError("ROI calculation", id)
	}
	if err != nil {
		return nil, queryError(ctx, err)
	}

	return &Output{
		Calculations: []Calculation{*c},
		Calculation:  c,
		Count:        1,
		Limit:        1,
	}, nil
}

// normalizePage clamps out-of-range values instead of rejecting them.
func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return skip, limit
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCalculation(row scanner) (*Calculation, error) {
	var (
		c            Calculation
		company      sql.NullString
		errorRate    sql.NullFloat64
		laborCosts   sql.NullFloat64
		results      []byte
		reportSentAt sql.NullTime
		createdAt    time.Time
	)
	err := row.Scan(
		&c.ID, &c.Email, &company, &c.Industry, &c.CompanySize, &c.ProcessType,
		&c.CurrentRevenue, &c.CurrentCosts, &c.CurrentProcessingTime, &c.VolumeProcessed,
		&errorRate, &laborCosts,
		&c.PotentialSavings, &c.EfficiencyGain, &c.PaybackPeriod, &c.ThreeYearROI, &c.ImplementationCost,
		&results, &c.PDFGenerated, &c.FollowUpRequested, &reportSentAt, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	c.Company = company.String
	if errorRate.Valid {
		c.ErrorRate = &errorRate.Float64
	}
	if laborCosts.Valid {
		c.LaborCosts = &laborCosts.Float64
	}
	if len(results) > 0 {
		c.Results = results
	}
	if reportSentAt.Valid {
		c.ReportSentAt = reportSentAt.Time.UTC().Format(time.RFC3339)
	}
	c.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &c, nil
}

func queryError(ctx context.Context, err error) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewQueryTimeoutError("select")
	}
	return errors.NewQueryExecutionFailedError("select", err)
}
