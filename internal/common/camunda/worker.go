package camunda

import (
	"sort"
	"sync"

	"consultancy-workers/internal/common/config"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"
)

// JobWorkerOpener is the part of zbc.Client the registry needs.
type JobWorkerOpener interface {
	NewJobWorker() worker.JobWorkerBuilderStep1
}

// Registry opens one job worker per enabled task type and closes them all
// on shutdown.
type Registry struct {
	client JobWorkerOpener
	cfg    *config.Config
	log    *zap.Logger

	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewRegistry(client JobWorkerOpener, cfg *config.Config, log *zap.Logger) *Registry {
	return &Registry{
		client:  client,
		cfg:     cfg,
		log:     log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Enabled reports whether taskType should be registered.
func (r *Registry) Enabled(taskType string) bool {
	return config.IsWorkerEnabled(r.cfg, taskType)
}

// Register opens a worker for taskType. Disabled and already registered task
// types are skipped and reported as false.
func (r *Registry) Register(taskType string, handler worker.JobHandler) bool {
	wcfg := config.GetWorkerConfig(r.cfg, taskType)
	if !wcfg.Enabled {
		r.log.Info("worker disabled", zap.String("taskType", taskType))
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.workers[taskType]; exists {
		r.log.Warn("worker already registered", zap.String("taskType", taskType))
		return false
	}

	jobWorker := r.client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Name(r.cfg.App.Name).
		Open()
	r.workers[taskType] = jobWorker

	r.log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return true
}

// TaskTypes lists the registered task types in order.
func (r *Registry) TaskTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.workers))
	for taskType := range r.workers {
		out = append(out, taskType)
	}
	sort.Strings(out)
	return out
}

// Close stops polling and waits for in-flight jobs of every worker.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for taskType, w := range r.workers {
		w.Close()
		w.AwaitClose()
		r.log.Info("worker stopped", zap.String("taskType", taskType))
	}
	r.workers = make(map[string]worker.JobWorker)
}
