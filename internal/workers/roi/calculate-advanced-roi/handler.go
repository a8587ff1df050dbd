package calculateadvancedroi

import (
	"context"
	stderrors "errors"
	"time"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/metrics"
	"consultancy-workers/internal/common/observability"
	"consultancy-workers/internal/common/validation"
	"consultancy-workers/internal/roi"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType   = "calculate-advanced-roi"
	calculator = "advanced"
)

var inputSchema = &validation.JSONSchema{
	Type: "object",
	Required: []string{
		"industry", "processType", "companySize",
		"currentRevenue", "currentCosts", "currentProcessingTime", "volumeProcessed",
	},
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"industry":               {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(100)},
		"processType":            {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(100)},
		"companySize":            {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(50)},
		"currentRevenue":         {Type: "number"},
		"currentCosts":           {Type: "number"},
		"currentProcessingTime":  {Type: "number"},
		"volumeProcessed":        {Type: "number"},
		"errorRate":              {Type: "number", Nullable: true},
		"laborCosts":             {Type: "number", Nullable: true},
		"dataQuality":            {Type: "number", Nullable: true},
		"marketAiAdoption":       {Type: "number", Nullable: true},
		"currentDevelopmentTime": {Type: "number", Nullable: true},
		"implementationCost":     {Type: "number", Nullable: true},
	},
}

type Handler struct {
	config     *Config
	obs        *observability.Observability
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	now        func() time.Time
}

func NewHandler(config *Config, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		obs:        obs,
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
	ctx, span := h.obs.StartSpan(ctx, "roi.calculate_advanced",
		attribute.String("roi.industry", input.Industry),
		attribute.String("roi.process_type", input.ProcessType),
		attribute.String("roi.company_size", input.CompanySize),
	)
	start := time.Now()

	analysis, err := roi.CalculateAdvanced(input.BusinessProfile, input.AdvancedContext)
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

	summary := Summary{
		Recommendation:  analysis.Recommendation.Recommendation,
		Priority:        analysis.Recommendation.Priority,
		ConfidenceScore: analysis.ConfidenceScore,
		NetSavings:      analysis.NetSavings,
		RiskScore:       analysis.RiskScore,
	}

	h.logger.Info("advanced roi calculated", map[string]interface{}{
		"industry":        input.Industry,
		"company":         input.Company,
		"recommendation":  string(summary.Recommendation),
		"confidenceScore": summary.ConfidenceScore,
		"riskScore":       summary.RiskScore,
	})

	return &Output{
		Analysis:     analysis,
		Summary:      summary,
		Calculator:   calculator,
		CalculatedAt: h.now().UTC().Format(time.RFC3339),
	}, nil
}

func intPtr(i int) *int { return &i }
