package getsimilarcasestudies

import (
	"context"
	"database/sql"

	"consultancy-workers/internal/casestudy"
	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "get-similar-case-studies"

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	Required:             []string{"caseStudyId"},
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"caseStudyId": {Type: "string"},
		"limit":       {Type: "integer", Minimum: floatPtr(1), Maximum: floatPtr(MaxLimit), Nullable: true},
	},
}

type Handler struct {
	config     *Config
	store      *casestudy.Store
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      casestudy.NewStore(db),
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
	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, errors.NewValidationFailedError("limit must be between 1 and 10")
	}
	if _, err := uuid.Parse(input.CaseStudyID); err != nil {
		return nil, errors.NewRecordNotFoundError("Case study", input.CaseStudyID)
	}

	similar, err := h.store.Similar(ctx, input.CaseStudyID, limit)
	if err != nil {
		return nil, err
	}
	return &Output{CaseStudies: similar, Count: len(similar)}, nil
}

func floatPtr(f float64) *float64 { return &f }
