package searchcasestudies

import (
	"context"

	"consultancy-workers/internal/casestudy"
	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "search-case-studies"

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"query":         {Type: "string", MaxLength: intPtr(500), Nullable: true},
		"industry":      {Type: "string", Nullable: true},
		"companySize":   {Type: "string", Nullable: true},
		"technology":    {Type: "string", Nullable: true},
		"processType":   {Type: "string", Nullable: true},
		"isFeatured":    {Type: "boolean", Nullable: true},
		"publishedOnly": {Type: "boolean", Nullable: true},
		"from":          {Type: "integer", Nullable: true},
		"size":          {Type: "integer", Nullable: true},
	},
}

type Handler struct {
	config     *Config
	searcher   *casestudy.Searcher
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, searcher *casestudy.Searcher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		searcher:   searcher,
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
	q := input.SearchQuery.Normalized()

	result, err := h.searcher.Search(ctx, q)
	if err != nil {
		h.logger.Error("case study search failed", map[string]interface{}{
			"index": h.searcher.Index(),
			"error": err.Error(),
		})
		return nil, err
	}

	h.logger.Info("case studies searched", map[string]interface{}{
		"query":     q.Text,
		"totalHits": result.TotalHits,
		"returned":  len(result.Hits),
		"tookMs":    result.Took,
	})
	return &Output{SearchResult: *result, From: q.From, Size: q.Size}, nil
}

func intPtr(i int) *int { return &i }
