package scorelead

import (
	"context"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/contact"
	"consultancy-workers/internal/leadscore"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "score-lead"

// Handler scores a contact record without touching storage, so processes
// can route on the tier before anything is persisted.
type Handler struct {
	config     *Config
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
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
	threshold := h.config.QualificationThreshold
	if threshold <= 0 {
		threshold = leadscore.DefaultQualificationThreshold
	}

	eval := contact.Evaluate(input.Form, threshold)

	h.logger.Debug("lead scored", map[string]interface{}{
		"leadScore": eval.LeadScore,
		"tier":      eval.QualificationTier,
		"rawScore":  eval.Breakdown.Raw(),
	})

	return &Output{Evaluation: eval, Threshold: threshold}, nil
}
