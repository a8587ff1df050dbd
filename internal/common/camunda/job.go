package camunda

import (
	"context"
	"encoding/json"
	"time"

	"consultancy-workers/internal/common/errors"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/metrics"
	"consultancy-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// Job describes one worker's pass over a Zeebe job: decode the variables,
// execute, then complete the job or hand the error to the ErrorHandler.
type Job[In any, Out any] struct {
	TaskType string
	Timeout  time.Duration
	Logger   logger.Logger
	Errors   *errors.ErrorHandler
	// Schema, when set, is checked against the raw variables before decoding.
	Schema  *validation.JSONSchema
	Execute func(ctx context.Context, input *In) (*Out, error)
}

// Process runs j against job. Every outcome is reported through the
// worker_* metrics.
func Process[In any, Out any](client worker.JobClient, job entities.Job, j Job[In, Out]) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(j.TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(j.TaskType).Dec()

	j.Logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	timeout := j.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var input In
	if err := DecodeVariables(job, j.Schema, &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(j.TaskType, errors.CodeOf(err)).Inc()
		j.Errors.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := j.Execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(j.TaskType, errors.CodeOf(err)).Inc()
		j.Errors.HandleJobError(ctx, client, job, err)
		return
	}

	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		j.Logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		j.Errors.HandleJobError(ctx, client, job, errors.NewInternalError(err))
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		j.Logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(j.TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(j.TaskType).Observe(time.Since(start).Seconds())
	j.Logger.Info("job completed", map[string]interface{}{
		"jobKey":     job.Key,
		"durationMs": time.Since(start).Milliseconds(),
	})
}

// DecodeVariables validates the job variables against schema (when not nil)
// and unmarshals them into dst.
func DecodeVariables(job entities.Job, schema *validation.JSONSchema, dst interface{}) error {
	if schema != nil {
		vars, err := job.GetVariablesAsMap()
		if err != nil {
			return errors.NewInputParsingFailedError(err)
		}
		if result := validation.ValidateInput(vars, *schema); !result.Valid {
			return errors.NewValidationFailedError(result.Summary())
		}
	}

	if err := json.Unmarshal([]byte(job.Variables), dst); err != nil {
		return errors.NewInputParsingFailedError(err)
	}
	return nil
}
