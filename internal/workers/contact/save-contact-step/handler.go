package savecontactstep

import (
	"context"
	"database/sql"
	"time"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/metrics"
	"consultancy-workers/internal/common/ratelimit"
	"consultancy-workers/internal/common/validation"
	"consultancy-workers/internal/contact"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "save-contact-step"

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	Required:             []string{"step"},
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"step":         {Type: "integer"},
		"submissionId": {Type: "string", Nullable: true},
	},
}

type Handler struct {
	config     *Config
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
		store:      contact.NewStore(db),
		limiter:    limiter,
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
		Schema:   inputSchema,
		Execute:  h.Execute,
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := contact.ValidateStep(input.Step, input.Form); err != nil {
		return nil, err
	}
	form := input.Form.Sanitized()

	if input.Step == validation.FirstFormStep && input.SubmissionID == "" {
		return h.start(ctx, input, form)
	}
	if input.SubmissionID == "" {
		return nil, errors.NewFormStepInvalidError(input.Step, "submissionId is required after the first step")
	}
	if _, err := uuid.Parse(input.SubmissionID); err != nil {
		return nil, errors.NewRecordNotFoundError("Contact submission", input.SubmissionID)
	}
	if input.Step == validation.LastFormStep {
		return h.finish(ctx, input.SubmissionID, form)
	}

	if err := h.store.UpdateStep(ctx, input.SubmissionID, input.Step, form, nil, h.now().UTC()); err != nil {
		return nil, err
	}

	h.logger.Info("contact step saved", map[string]interface{}{
		"submissionId": input.SubmissionID,
		"formStep":     input.Step,
	})
	return &Output{
		SubmissionID: input.SubmissionID,
		FormStep:     input.Step,
		Status:       StatusUpdated,
	}, nil
}

// start creates the row for a new prospect. An email that already started
// the form resumes its existing submission.
func (h *Handler) start(ctx context.Context, input *Input, form contact.Form) (*Output, error) {
	limit, err := h.limiter.Allow(ctx, ratelimit.ScopeContact, form.Email)
	if err != nil {
		return nil, errors.NewCacheUnavailableError(err)
	}
	if !limit.Allowed {
		return nil, errors.NewRateLimitExceededError(ratelimit.ScopeContact, limit.RetryAfter)
	}

	existingID, found, err := h.store.FindByEmail(ctx, form.Email)
	if err != nil {
		return nil, err
	}
	if found {
		h.logger.Info("contact form resumed", map[string]interface{}{
			"submissionId": existingID,
		})
		return &Output{
			SubmissionID: existingID,
			FormStep:     validation.FirstFormStep,
			Status:       StatusExists,
		}, nil
	}

	form.FormStep = validation.FirstFormStep
	submission := &contact.Submission{
		ID:        uuid.New().String(),
		Form:      form,
		IPAddress: input.ClientIP,
		UserAgent: input.UserAgent,
		CreatedAt: h.now().UTC(),
	}
	if err := h.store.Insert(ctx, submission); err != nil {
		return nil, err
	}

	h.logger.Info("contact form started", map[string]interface{}{
		"submissionId": submission.ID,
	})
	return &Output{
		SubmissionID: submission.ID,
		FormStep:     validation.FirstFormStep,
		Status:       StatusCreated,
	}, nil
}

// finish merges the last step into the stored row and scores the lead.
func (h *Handler) finish(ctx context.Context, submissionID string, form contact.Form) (*Output, error) {
	existing, err := h.store.Get(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	merged := existing.Form
	merged.CurrentAITools = form.CurrentAITools
	merged.ExpectedOutcomes = form.ExpectedOutcomes
	merged.FormStep = validation.LastFormStep

	eval := contact.Evaluate(merged, h.config.QualificationThreshold)
	if err := h.store.UpdateStep(ctx, submissionID, validation.LastFormStep, merged, &eval, h.now().UTC()); err != nil {
		return nil, err
	}

	metrics.LeadScore.Observe(float64(eval.LeadScore))
	if eval.IsQualified {
		metrics.QualifiedLeads.Inc()
	}

	h.logger.Info("contact form completed", map[string]interface{}{
		"submissionId": submissionID,
		"leadScore":    eval.LeadScore,
		"isQualified":  eval.IsQualified,
	})
	return &Output{
		SubmissionID:      submissionID,
		FormStep:          validation.LastFormStep,
		Complete:          true,
		Status:            StatusCompleted,
		LeadScore:         &eval.LeadScore,
		IsQualified:       &eval.IsQualified,
		QualificationTier: eval.QualificationTier,
	}, nil
}
