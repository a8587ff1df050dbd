package casestudystats

import (
	"context"
	"database/sql"

	"consultancy-workers/internal/casestudy"
	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const TaskType = "case-study-stats"

type Handler struct {
	config     *Config
	store      *casestudy.Store
	cache      redis.Cmdable
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

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
		Execute:  h.Execute,
	})
}

func (h *Handler) Execute(ctx context.Context, _ *Input) (*Output, error) {
	stats, cached, err := casestudy.Cached(ctx, h.cache, h.logger, casestudy.CacheStats,
		casestudy.StatsKey, h.config.CacheTTL, h.store.Stats)
	if err != nil {
		return nil, err
	}
	return &Output{Stats: *stats, Cached: cached}, nil
}
