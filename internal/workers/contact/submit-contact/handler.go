package submitcontact

import (
	"context"
	"database/sql"
	"time"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/database"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/metrics"
	"consultancy-workers/internal/common/ratelimit"
	"consultancy-workers/internal/contact"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "submit-contact"

type Handler struct {
	config     *Config
	db         *sql.DB
	store      *contact.Store
	limiter    *ratelimit.Limiter
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	now        func() time.Time
}

func NewHandler(config *Config, db *sql.DB, limiter *ratelimit.Limiter, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		db:         db,
		store:      contact.NewStore(db),
		limiter:    limiter,
		logger:     log,
		errHandler: errors.NewErrorHandler(log),
		now:        time.Now,
	}
}

// Handle decodes without a variable schema; the form is validated against
// the contact submission schema inside Execute.
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
	if err := contact.ValidateSubmission(input.Form); err != nil {
		return nil, err
	}
	form := input.Form.Sanitized()
	if form.FormStep == 0 {
		form.FormStep = 1
	}

	limit, err := h.limiter.Allow(ctx, ratelimit.ScopeContact, form.Email)
	if err != nil {
		return nil, errors.NewCacheUnavailableError(err)
	}
	if !limit.Allowed {
		h.logger.Warn("contact submission rate limited", map[string]interface{}{
			"email":      form.Email,
			"retryAfter": limit.RetryAfter.String(),
		})
		return nil, errors.NewRateLimitExceededError(ratelimit.ScopeContact, limit.RetryAfter)
	}

	eval := contact.Evaluate(form, h.config.QualificationThreshold)
	submission := &contact.Submission{
		ID:          uuid.New().String(),
		Form:        form,
		LeadScore:   eval.LeadScore,
		IsQualified: eval.IsQualified,
		IPAddress:   input.ClientIP,
		UserAgent:   input.UserAgent,
		CreatedAt:   h.now().UTC(),
	}
	if err := h.store.Insert(ctx, submission); err != nil {
		return nil, err
	}

	metrics.LeadScore.Observe(float64(eval.LeadScore))
	if eval.IsQualified {
		metrics.QualifiedLeads.Inc()
	}

	if err := database.WriteAudit(ctx, h.db, "contact_submission", submission.ID, "created", map[string]interface{}{
		"leadScore":   eval.LeadScore,
		"isQualified": eval.IsQualified,
		"formStep":    form.FormStep,
	}, submission.CreatedAt); err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":        err,
			"submissionId": submission.ID,
		})
	}

	h.logger.Info("contact submission stored", map[string]interface{}{
		"submissionId": submission.ID,
		"leadScore":    eval.LeadScore,
		"isQualified":  eval.IsQualified,
		"tier":         eval.QualificationTier,
	})

	return &Output{
		SubmissionID: submission.ID,
		Evaluation:   eval,
		FormStep:     form.FormStep,
		CreatedAt:    submission.CreatedAt.Format(time.RFC3339),
	}, nil
}
