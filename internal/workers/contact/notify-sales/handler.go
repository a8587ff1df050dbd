package notifysales

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/notify"
	"consultancy-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "notify-sales"

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	Required:             []string{"submissionId", "email", "leadScore", "isQualified"},
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"submissionId": {Type: "string"},
		"email":        {Type: "string"},
		"leadScore":    {Type: "integer", Minimum: floatPtr(0), Maximum: floatPtr(100)},
		"isQualified":  {Type: "boolean"},
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

// Execute mails the sales inbox and, for qualified leads, publishes to the
// sales topic. Delivery problems are reported in the output and never fail
// the job: the submission is already stored.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	log := h.logger.WithFields(map[string]interface{}{"submissionId": input.SubmissionID})
	data := leadData(input)
	out := &Output{}

	switch {
	case !h.notifier.EmailEnabled():
		out.NotificationStatus = notify.StatusDisabled
	case h.notifier.SalesInbox() == "":
		out.NotificationStatus = notify.StatusFailed
		out.NotificationError = "no sales inbox configured"
	default:
		messageID, err := h.notifier.SendTemplate(ctx, h.notifier.SalesInbox(), notify.TemplateSalesLead, data)
		switch {
		case stderrors.Is(err, notify.ErrDisabled):
			out.NotificationStatus = notify.StatusDisabled
		case err != nil:
			log.Error("sales notification failed", map[string]interface{}{"error": err.Error()})
			out.NotificationStatus = notify.StatusFailed
			out.NotificationError = err.Error()
		default:
			out.NotificationStatus = notify.StatusSent
			out.MessageID = messageID
			out.SentAt = h.now().UTC().Format(time.RFC3339)
		}
	}

	if input.IsQualified {
		out.TopicStatus, out.TopicMessageID = h.publish(ctx, log, data, input)
	}

	log.Info("sales notified", map[string]interface{}{
		"notificationStatus": out.NotificationStatus,
		"topicStatus":        out.TopicStatus,
		"leadScore":          input.LeadScore,
	})
	return out, nil
}

func (h *Handler) publish(ctx context.Context, log logger.Logger, data map[string]interface{}, input *Input) (string, string) {
	if !h.notifier.TopicEnabled() {
		return notify.StatusDisabled, ""
	}
	subject, body, err := h.notifier.RenderTemplate(notify.TemplateSalesLead, data)
	if err != nil {
		log.Error("failed to render lead message", map[string]interface{}{"error": err.Error()})
		return notify.StatusFailed, ""
	}

	messageID, err := h.notifier.PublishLead(ctx, subject, body, map[string]string{
		"submissionId": input.SubmissionID,
		"leadScore":    strconv.Itoa(input.LeadScore),
		"industry":     notify.OrNotProvided(input.Industry),
		"companySize":  notify.OrNotProvided(input.CompanySize),
	})
	if err != nil {
		log.Warn("lead publish failed", map[string]interface{}{"error": err.Error()})
		return notify.StatusFailed, ""
	}
	return notify.StatusSent, messageID
}

func leadData(input *Input) map[string]interface{} {
	qualification, answer := "Unqualified", "No"
	if input.IsQualified {
		qualification, answer = "Qualified", "Yes"
	}
	formStep := input.FormStep
	if formStep <= 0 {
		formStep = 1
	}

	return map[string]interface{}{
		"qualification":      qualification,
		"qualifiedAnswer":    answer,
		"firstName":          input.FirstName,
		"lastName":           input.LastName,
		"email":              input.Email,
		"company":            notify.OrNotProvided(input.Company),
		"jobTitle":           notify.OrNotProvided(input.JobTitle),
		"phone":              notify.OrNotProvided(input.Phone),
		"companySize":        notify.OrNotProvided(input.CompanySize),
		"industry":           notify.OrNotProvided(input.Industry),
		"budgetRange":        notify.OrNotProvided(input.BudgetRange),
		"projectTimeline":    notify.OrNotProvided(input.ProjectTimeline),
		"projectDescription": notify.OrNotProvided(input.ProjectDescription),
		"aiExperience":       notify.OrNotProvided(input.AIExperience),
		"specificChallenges": notify.OrNotProvided(input.SpecificChallenges),
		"leadScore":          input.LeadScore,
		"formStep":           formStep,
		"submissionId":       input.SubmissionID,
		"createdAt":          input.CreatedAt,
	}
}

func floatPtr(f float64) *float64 { return &f }
