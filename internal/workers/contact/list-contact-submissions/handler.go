package listcontactsubmissions

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
)

const TaskType = "list-contact-submissions"

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"skip":  {Type: "integer", Nullable: true},
		"limit": {Type: "integer", Nullable: true},
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
	skip, limit := normalizePage(input.Skip, input.Limit)

	submissions, err := h.store.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("contact submissions listed", map[string]interface{}{
		"skip":  skip,
		"limit": limit,
		"count": len(submissions),
	})
	return &Output{
		Submissions: submissions,
		Count:       len(submissions),
		Skip:        skip,
		Limit:       limit,
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
