package sendwelcomeemail

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/notify"
	"consultancy-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "send-welcome-email"

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	Required:             []string{"email"},
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"email":        {Type: "string"},
		"firstName":    {Type: "string", Nullable: true},
		"submissionId": {Type: "string", Nullable: true},
	},
}

type Handler struct {
	config     *Config
	notifier   *notify.Notifier
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	now        func() time.Time
}

func NewHandler(config *Config, notifier *notify.Notifier, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		notifier:   notifier,
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
	if !h.notifier.EmailEnabled() {
		return &Output{WelcomeStatus: notify.StatusDisabled}, nil
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !validation.ValidateEmail(email) {
		return &Output{WelcomeStatus: notify.StatusFailed, WelcomeError: "invalid recipient address"}, nil
	}

	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		firstName = "there"
	}

	messageID, err := h.notifier.SendTemplate(ctx, email, notify.TemplateWelcome, map[string]interface{}{
		"firstName": firstName,
	})
	if err != nil {
		if stderrors.Is(err, notify.ErrDisabled) {
			return &Output{WelcomeStatus: notify.StatusDisabled}, nil
		}
		h.logger.Error("welcome email failed", map[string]interface{}{
			"submissionId": input.SubmissionID,
			"error":        err.Error(),
		})
		return &Output{WelcomeStatus: notify.StatusFailed, WelcomeError: err.Error()}, nil
	}

	h.logger.Info("welcome email sent", map[string]interface{}{
		"submissionId": input.SubmissionID,
		"messageId":    messageID,
	})
	return &Output{
		WelcomeStatus: notify.StatusSent,
		MessageID:     messageID,
		SentAt:        h.now().UTC().Format(time.RFC3339),
	}, nil
}
