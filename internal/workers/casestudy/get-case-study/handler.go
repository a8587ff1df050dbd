package getcasestudy

import (
	"context"
	"database/sql"
	"strings"

	"consultancy-workers/internal/casestudy"
	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "get-case-study"

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	Required:             []string{"slug"},
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"slug": {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(255)},
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

// Execute returns the published case study and counts the view.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, errors.NewValidationFailedError("slug is required")
	}

	cs, err := h.store.ViewBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	h.logger.Info("case study viewed", map[string]interface{}{
		"slug":      cs.Slug,
		"viewCount": cs.ViewCount,
	})
	return &Output{CaseStudy: cs}, nil
}

func intPtr(i int) *int { return &i }
