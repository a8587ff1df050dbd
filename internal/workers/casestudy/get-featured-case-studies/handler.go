package getfeaturedcasestudies

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
	"github.com/redis/go-redis/v9"
)

const TaskType = "get-featured-case-studies"

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"limit": {Type: "integer", Minimum: floatPtr(1), Maximum: floatPtr(MaxLimit), Nullable: true},
	},
}

type Handler struct {
	config     *Config
	store      *casestudy.Store
	cache      redis.Cmdable
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

// NewHandler caches through rdb; a nil rdb always reads PostgreSQL.
func NewHandler(config *Config, db *sql.DB, rdb redis.Cmdable, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      casestudy.NewStore(db),
		cache:      rdb,
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
		return nil, errors.NewValidationFailedError("limit must be between 1 and 20")
	}

	studies, cached, err := casestudy.Cached(ctx, h.cache, h.logger, casestudy.CacheFeatured,
		casestudy.FeaturedKey(limit), h.config.CacheTTL, func(ctx context.Context) ([]casestudy.Summary, error) {
			return h.store.Featured(ctx, limit)
		})
	if err != nil {
		return nil, err
	}

	h.logger.Debug("featured case studies loaded", map[string]interface{}{
		"limit":  limit,
		"count":  len(studies),
		"cached": cached,
	})
	return &Output{CaseStudies: studies, Count: len(studies), Cached: cached}, nil
}

func floatPtr(f float64) *float64 { return &f }
