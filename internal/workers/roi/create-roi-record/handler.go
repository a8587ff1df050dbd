package createroirecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/database"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "create-roi-record"

var inputSchema = &validation.JSONSchema{
	Type: "object",
	Required: []string{
		"email", "industry", "processType", "companySize",
		"currentRevenue", "currentCosts", "currentProcessingTime", "volumeProcessed",
		"potentialSavings", "efficiencyGain", "paybackPeriod", "threeYearRoi", "implementationCost",
	},
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"email":       {Type: "string", MinLength: intPtr(3), MaxLength: intPtr(255)},
		"company":     {Type: "string", MaxLength: intPtr(255), Nullable: true},
		"industry":    {Type: "string", MaxLength: intPtr(100)},
		"processType": {Type: "string", MaxLength: intPtr(100)},
		"companySize": {Type: "string", MaxLength: intPtr(50)},
		"analysis":    {Type: "object", Nullable: true},
	},
}

type Handler struct {
	config     *Config
	db         *sql.DB
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	now        func() time.Time
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		db:         db,
		logger:     log,
		errHandler: errors.NewErrorHandler(log),
		now:        time.Now,
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

// Execute stores one calculation. Repeated calculations for the same email
// are separate rows.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !validation.ValidateEmail(email) {
		return nil, errors.NewValidationFailedError("email: invalid email address")
	}

	inputsJSON, err := json.Marshal(input.BusinessProfile)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	calculator := input.Calculator
	if calculator == "" {
		calculator = "base"
	}
	resultsJSON, err := json.Marshal(storedResults{
		Result:     input.Result,
		Calculator: calculator,
		Advanced:   input.Analysis,
	})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	calculationID := uuid.New().String()
	createdAt := h.now().UTC()

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO roi_calculations (
			id, email, company, industry, company_size,
			current_revenue, current_costs, process_type, current_processing_time, volume_processed,
			error_rate, labor_costs,
			potential_savings, efficiency_gain, payback_period, three_year_roi, implementation_cost,
			calculation_inputs, calculation_results, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		calculationID,
		email,
		database.NullString(input.Company),
		input.Industry,
		input.CompanySize,
		input.CurrentRevenue,
		input.CurrentCosts,
		input.ProcessType,
		input.ProcessingTime,
		input.VolumeProcessed,
		database.NullFloat(input.ErrorRate),
		database.NullFloat(input.LaborCosts),
		input.PotentialSavings,
		input.EfficiencyGain,
		input.PaybackPeriod,
		input.ThreeYearROI,
		input.ImplementationCost,
		inputsJSON,
		resultsJSON,
		createdAt,
	)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError(err)
	}

	if err := database.WriteAudit(ctx, h.db, "roi_calculation", calculationID, "created", map[string]interface{}{
		"email":            email,
		"industry":         input.Industry,
		"calculator":       calculator,
		"potentialSavings": input.PotentialSavings,
	}, createdAt); err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"calculationId": calculationID,
		})
	}

	h.logger.Info("roi calculation stored", map[string]interface{}{
		"calculationId": calculationID,
		"industry":      input.Industry,
		"calculator":    calculator,
	})

	return &Output{
		CalculationID: calculationID,
		CreatedAt:     createdAt.Format(time.RFC3339),
	}, nil
}

func intPtr(i int) *int { return &i }
