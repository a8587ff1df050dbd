package getindustrybenchmarks

import (
	"context"
	"database/sql"
	"strings"

	"consultancy-workers/internal/casestudy"
	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "get-industry-benchmarks"

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
		Execute:  h.Execute,
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	benchmarks, err := h.store.Benchmarks(ctx, strings.TrimSpace(input.Industry), strings.TrimSpace(input.ProcessType))
	if err != nil {
		return nil, err
	}
	return &Output{Benchmarks: benchmarks, Count: len(benchmarks)}, nil
}
