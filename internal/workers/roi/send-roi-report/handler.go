package sendroireport

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/notify"
	"consultancy-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "send-roi-report"

var inputSchema = &validation.JSONSchema{
	Type:                 "object",
	Required:             []string{"email", "potentialSavings", "threeYearRoi", "paybackPeriod"},
	AdditionalProperties: true,
	Properties: map[string]validation.Property{
		"email":         {Type: "string"},
		"calculationId": {Type: "string", Nullable: true},
		"company":       {Type: "string", Nullable: true},
	},
}

type Handler struct {
	config     *Config
	db         *sql.DB
	notifier   *notify.Notifier
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	now        func() time.Time
}

func NewHandler(config *Config, db *sql.DB, notifier *notify.Notifier, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		db:         db,
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

// Execute never returns an error for a delivery problem: the calculation
// already stands, so the outcome is reported in ReportStatus instead.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if !h.notifier.EmailEnabled() {
		h.logger.Info("roi report skipped, email disabled", map[string]interface{}{
			"calculationId": input.CalculationID,
		})
		return &Output{ReportStatus: notify.StatusDisabled}, nil
	}
	if !validation.ValidateEmail(input.Email) {
		return &Output{ReportStatus: notify.StatusFailed, ReportError: "invalid recipient address"}, nil
	}

	messageID, err := h.notifier.SendTemplate(ctx, input.Email, notify.TemplateROIReport, reportData(input))
	if err != nil {
		if stderrors.Is(err, notify.ErrDisabled) {
			return &Output{ReportStatus: notify.StatusDisabled}, nil
		}
		h.logger.Error("roi report delivery failed", map[string]interface{}{
			"calculationId": input.CalculationID,
			"error":         err.Error(),
		})
		return &Output{ReportStatus: notify.StatusFailed, ReportError: err.Error()}, nil
	}

	sentAt := h.now().UTC()
	if input.CalculationID != "" && h.db != nil {
		if err := h.markSent(ctx, input.CalculationID, sentAt); err != nil {
			h.logger.Warn("failed to record report delivery", map[string]interface{}{
				"calculationId": input.CalculationID,
				"error":         err.Error(),
			})
		}
	}

	h.logger.Info("roi report sent", map[string]interface{}{
		"calculationId": input.CalculationID,
		"messageId":     messageID,
	})

	return &Output{
		ReportStatus: notify.StatusSent,
		MessageID:    messageID,
		SentAt:       sentAt.Format(time.RFC3339),
	}, nil
}

// markSent records the delivery. No PDF is rendered, so pdf_generated stays
// false.
func (h *Handler) markSent(ctx context.Context, calculationID string, sentAt time.Time) error {
	_, err := h.db.ExecContext(ctx, `
		UPDATE roi_calculations
		SET report_sent_at = $1, pdf_generated = FALSE, updated_at = $1
		WHERE id = $2`,
		sentAt, calculationID,
	)
	if err != nil {
		return fmt.Errorf("update roi_calculations %s: %w", calculationID, err)
	}
	return nil
}

func reportData(input *Input) map[string]interface{} {
	return map[string]interface{}{
		"potentialSavings":      notify.Money(input.PotentialSavings),
		"efficiencyGain":        fmt.Sprintf("%.1f", input.EfficiencyGain),
		"paybackPeriod":         fmt.Sprintf("%.1f", input.PaybackPeriod),
		"threeYearRoi":          fmt.Sprintf("%.1f", input.ThreeYearROI),
		"implementationCost":    notify.Money(input.ImplementationCost),
		"timeSavings":           fmt.Sprintf("%.0f", input.TimeSavings),
		"costReduction":         notify.Money(input.CostReduction),
		"errorReductionSavings": notify.Money(input.ErrorReductionSavings),
		"productivityIncrease":  fmt.Sprintf("%.1f", input.ProductivityIncrease),
		"monthlySavings":        notify.Money(input.MonthlySavings),
		"company":               input.Company,
	}
}
