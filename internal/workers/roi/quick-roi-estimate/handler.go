package quickroiestimate

import (
	"context"
	stderrors "errors"
	"time"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/metrics"
	"consultancy-workers/internal/common/observability"
	"consultancy-workers/internal/common/ratelimit"
	"consultancy-workers/internal/common/validation"
	"consultancy-workers/internal/roi"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType   = "quick-roi-estimate"
	calculator = "quick"
)

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	Required:             []string{"monthlyVolume", "hoursPerTask"},
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"industry":      {Type: "string", MaxLength: intPtr(100), Nullable: true},
		"companySize":   {Type: "string", MaxLength: intPtr(50), Nullable: true},
		"processType":   {Type: "string", MaxLength: intPtr(100), Nullable: true},
		"monthlyVolume": {Type: "number"},
		"hoursPerTask":  {Type: "number"},
		"hourlyRate":    {Type: "number", Nullable: true},
		"clientIp":      {Type: "string", MaxLength: intPtr(45), Nullable: true},
	},
}

type Handler struct {
	config     *Config
	obs        *observability.Observability
	limiter    *ratelimit.Limiter
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, obs *observability.Observability, limiter *ratelimit.Limiter, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		obs:        obs,
		limiter:    limiter,
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
	limit, err := h.limiter.Allow(ctx, ratelimit.ScopeROI, input.ClientIP)
	if err != nil {
		return nil, errors.NewCacheUnavailableError(err)
	}
	if !limit.Allowed {
		h.logger.Warn("quick estimate rate limited", map[string]interface{}{
			"clientIp":   input.ClientIP,
			"retryAfter": limit.RetryAfter.String(),
			"source":     limit.Source,
		})
		return nil, errors.NewRateLimitExceededError(ratelimit.ScopeROI, limit.RetryAfter)
	}

	ctx, span := h.obs.StartSpan(ctx, "roi.quick_estimate",
		attribute.Float64("roi.monthly_volume", input.MonthlyVolume),
		attribute.Float64("roi.hours_per_task", input.HoursPerTask),
	)
	start := time.Now()

	result, err := roi.QuickEstimate(input.QuickInput)
	observability.EndSpan(span, err)
	if err != nil {
		h.obs.RecordCalculation(ctx, calculator, "error", time.Since(start))
		if stderrors.Is(err, roi.ErrInvalidInput) {
			return nil, errors.NewInvalidROIInputError(err.Error())
		}
		return nil, errors.NewInternalError(err)
	}
	h.obs.RecordCalculation(ctx, calculator, "success", time.Since(start))
	metrics.ROICalculations.WithLabelValues(calculator).Inc()

	h.logger.Info("quick roi estimated", map[string]interface{}{
		"monthlyVolume": input.MonthlyVolume,
		"annualSavings": result.AnnualSavings,
		"roiPercentage": result.ROIPercentage,
	})

	return &Output{
		QuickResult: *result,
		Industry:    input.Industry,
		CompanySize: input.CompanySize,
		ProcessType: input.ProcessType,
	}, nil
}

func intPtr(i int) *int { return &i }
