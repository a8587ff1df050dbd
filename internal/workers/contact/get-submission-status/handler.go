package getsubmissionstatus

import (
	"context"
	"database/sql"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/validation"
	"consultancy-workers/internal/contact"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "get-submission-status"

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	Required:             []string{"submissionId"},
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"submissionId": {Type: "string"},
	},
}

type Handler struct {
	config     *Config
	store      *contact.Store
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      contact.NewStore(db),
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
	// ids are uuids; anything else cannot exist
	if _, err := uuid.Parse(input.SubmissionID); err != nil {
		return nil, errors.NewRecordNotFoundError("Contact submission", input.SubmissionID)
	}

	status, err := h.store.Status(ctx, input.SubmissionID)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("submission status loaded", map[string]interface{}{
		"submissionId": status.SubmissionID,
		"formStep":     status.FormStep,
		"isCompleted":  status.IsCompleted,
	})
	return &Output{Status: *status}, nil
}
