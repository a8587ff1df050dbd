package indexcasestudy

import (
	"context"
	"database/sql"
	"time"

	"consultancy-workers/internal/casestudy"
	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/database"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "index-case-study"

// Handler copies a case study from PostgreSQL into the search index.
type Handler struct {
	config     *Config
	db         *sql.DB
	store      *casestudy.Store
	searcher   *casestudy.Searcher
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	now        func() time.Time
}

func NewHandler(config *Config, db *sql.DB, searcher *casestudy.Searcher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		db:         db,
		store:      casestudy.NewStore(db),
		searcher:   searcher,
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
		Execute:  h.Execute,
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	key := input.CaseStudyID
	if key == "" {
		key = input.Slug
	}
	if key == "" {
		return nil, errors.NewValidationFailedError("caseStudyId or slug is required")
	}

	cs, err := h.store.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	result, err := h.searcher.Put(ctx, cs)
	if err != nil {
		h.logger.Error("case study indexing failed", map[string]interface{}{
			"slug":  cs.Slug,
			"error": err.Error(),
		})
		return nil, err
	}

	indexedAt := h.now().UTC()
	if err := database.WriteAudit(ctx, h.db, "case_study", cs.ID, "indexed", map[string]interface{}{
		"index":  h.searcher.Index(),
		"result": result,
	}, indexedAt); err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error": err,
			"slug":  cs.Slug,
		})
	}

	h.logger.Info("case study indexed", map[string]interface{}{
		"slug":   cs.Slug,
		"result": result,
	})
	return &Output{
		Slug:        cs.Slug,
		Index:       h.searcher.Index(),
		IndexResult: result,
		IndexedAt:   indexedAt.Format(time.RFC3339),
	}, nil
}
