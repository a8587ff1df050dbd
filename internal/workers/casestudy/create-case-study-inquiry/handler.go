package createcasestudyinquiry

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"consultancy-workers/internal/casestudy"
	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/database"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/ratelimit"
	"consultancy-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "create-case-study-inquiry"

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	Required:             []string{"caseStudyId", "firstName", "lastName", "email"},
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"caseStudyId":        {Type: "string"},
		"firstName":          {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(100)},
		"lastName":           {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(100)},
		"email":              {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(255)},
		"company":            {Type: "string", MaxLength: intPtr(255), Nullable: true},
		"jobTitle":           {Type: "string", MaxLength: intPtr(255), Nullable: true},
		"similarChallenge":   {Type: "boolean", Nullable: true},
		"interestedServices": {Type: "array", Items: &validation.Property{Type: "string"}, Nullable: true},
	},
}

type Handler struct {
	config     *Config
	db         *sql.DB
	store      *casestudy.Store
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
		store:      casestudy.NewStore(db),
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
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !validation.ValidateEmail(email) {
		return nil, errors.NewValidationFailedError("email: invalid email address")
	}
	if _, err := uuid.Parse(input.CaseStudyID); err != nil {
		return nil, errors.NewRecordNotFoundError("Case study", input.CaseStudyID)
	}

	limit, err := h.limiter.Allow(ctx, ratelimit.ScopeInquiry, email)
	if err != nil {
		return nil, errors.NewCacheUnavailableError(err)
	}
	if !limit.Allowed {
		h.logger.Warn("case study inquiry rate limited", map[string]interface{}{
			"email":      email,
			"retryAfter": limit.RetryAfter.String(),
		})
		return nil, errors.NewRateLimitExceededError(ratelimit.ScopeInquiry, limit.RetryAfter)
	}

	services := make([]string, 0, len(input.InterestedServices))
	for _, s := range input.InterestedServices {
		if s = validation.Sanitize(s, 100); s != "" {
			services = append(services, s)
		}
	}

	inquiry := &casestudy.Inquiry{
		ID:                 uuid.New().String(),
		CaseStudyID:        input.CaseStudyID,
		FirstName:          validation.Sanitize(input.FirstName, 100),
		LastName:           validation.Sanitize(input.LastName, 100),
		Email:              email,
		Company:            validation.Sanitize(input.Company, 255),
		JobTitle:           validation.Sanitize(input.JobTitle, 255),
		InquiryMessage:     validation.Sanitize(input.InquiryMessage, 5000),
		SimilarChallenge:   input.SimilarChallenge,
		InterestedServices: services,
		ReferrerURL:        validation.Sanitize(input.ReferrerURL, 500),
		IPAddress:          input.ClientIP,
		UserAgent:          input.UserAgent,
		CreatedAt:          h.now().UTC(),
	}
	if err := h.store.CreateInquiry(ctx, inquiry); err != nil {
		return nil, err
	}

	if err := database.WriteAudit(ctx, h.db, "case_study_inquiry", inquiry.ID, "created", map[string]interface{}{
		"caseStudyId":      inquiry.CaseStudyID,
		"similarChallenge": inquiry.SimilarChallenge,
	}, inquiry.CreatedAt); err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":     err,
			"inquiryId": inquiry.ID,
		})
	}

	h.logger.Info("case study inquiry stored", map[string]interface{}{
		"inquiryId":   inquiry.ID,
		"caseStudyId": inquiry.CaseStudyID,
	})

	return &Output{
		InquiryID:   inquiry.ID,
		CaseStudyID: inquiry.CaseStudyID,
		CreatedAt:   inquiry.CreatedAt.Format(time.RFC3339),
	}, nil
}

func intPtr(i int) *int { return &i }
