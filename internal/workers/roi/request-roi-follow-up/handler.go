package requestroifollowup

import (
	"context"
	"database/sql"
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

const TaskType = "request-roi-follow-up"

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	Required:             []string{"calculationId"},
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"calculationId": {Type: "string"},
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	// a malformed id cannot match any row
	if _, err := uuid.Parse(input.CalculationID); err != nil {
		return nil, errors.NewRecordNotFoundError("ROI calculation", input.CalculationID)
	}

	requestedAt := h.now().UTC()
	res, err := h.db.ExecContext(ctx, `
		UPDATE roi_calculations
		SET follow_up_requested = TRUE, updated_at = $1
		WHERE id = $2`,
		requestedAt, input.CalculationID,
	)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("update", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("update", err)
	}
	if affected == 0 {
		return nil, errors.NewRecordNotFoundError("ROI calculation", input.CalculationID)
	}

	if err := database.WriteAudit(ctx, h.db, "roi_calculation", input.CalculationID, "follow_up_requested", nil, requestedAt); err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"calculationId": input.CalculationID,
		})
	}

	h.logger.Info("roi follow-up requested", map[string]interface{}{
		"calculationId": input.CalculationID,
	})

	return &Output{
		CalculationID:     input.CalculationID,
		FollowUpRequested: true,
		RequestedAt:       requestedAt.Format(time.RFC3339),
	}, nil
}
