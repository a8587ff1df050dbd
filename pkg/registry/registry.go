package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"consultancy-workers/internal/common/config"
	"consultancy-workers/internal/common/validation"
	"consultancy-workers/internal/workers"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultPath   = "registry/activities.json"
	schemaVersion = "1.0.0"

	StatusCompleted = "completed"
	StatusRetired   = "retired"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Save writes reg as indented JSON, creating the directory if needed.
func Save(reg *ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// DisplayName turns a task type into a title, "calculate-roi" becomes
// "Calculate ROI".
func DisplayName(taskType string) string {
	caser := cases.Title(language.English)
	words := strings.Split(taskType, "-")
	for i, w := range words {
		if w == "roi" {
			words[i] = "ROI"
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// Build produces the registry for the worker catalog, taking timeouts,
// retries and enablement from cfg.
func Build(cfg *config.Config, appVersion string, at time.Time) *ActivityRegistry {
	reg := &ActivityRegistry{
		Version:     schemaVersion,
		LastUpdated: at.UTC().Format(time.RFC3339),
	}
	for _, def := range workers.Catalog() {
		wcfg := config.GetWorkerConfig(cfg, def.TaskType)
		reg.Activities = append(reg.Activities, Activity{
			ID:                   def.TaskType,
			DisplayName:          DisplayName(def.TaskType),
			Description:          def.Description,
			Category:             def.Category,
			Version:              appVersion,
			TaskType:             def.TaskType,
			ImplementationStatus: StatusCompleted,
			Timeout:              config.GetDuration(wcfg.Timeout).String(),
			Retries:              wcfg.MaxRetries,
			MaxJobsActive:        wcfg.MaxJobsActive,
			Enabled:              wcfg.Enabled,
			Tags:                 []string{def.Category},
		})
	}
	return reg
}

// Merge folds fresh into existing. Activities that dropped out of the
// catalog are kept but marked retired so BPMN references stay resolvable.
func Merge(existing, fresh *ActivityRegistry) *ActivityRegistry {
	if existing == nil {
		return fresh
	}
	out := &ActivityRegistry{Version: fresh.Version, LastUpdated: fresh.LastUpdated}
	current := make(map[string]bool, len(fresh.Activities))
	for _, a := range fresh.Activities {
		current[a.ID] = true
		out.Activities = append(out.Activities, a)
	}
	for _, a := range existing.Activities {
		if current[a.ID] {
			continue
		}
		a.ImplementationStatus = StatusRetired
		a.Enabled = false
		out.Activities = append(out.Activities, a)
	}
	sort.SliceStable(out.Activities, func(i, j int) bool {
		if out.Activities[i].Category != out.Activities[j].Category {
			return out.Activities[i].Category < out.Activities[j].Category
		}
		return out.Activities[i].ID < out.Activities[j].ID
	})
	return out
}

// Validate checks required fields, unique ids and the task type convention.
func Validate(reg *ActivityRegistry) error {
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	for _, activity := range reg.Activities {
		if activity.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[activity.ID] {
			return fmt.Errorf("duplicate activity ID: %s", activity.ID)
		}
		ids[activity.ID] = true

		if activity.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", activity.ID)
		}
		if activity.Category == "" {
			return fmt.Errorf("activity %s missing required field: Category", activity.ID)
		}
		if err := validation.ValidateTaskType(activity.TaskType); err != nil {
			return fmt.Errorf("activity %s: %w", activity.ID, err)
		}
	}
	return nil
}
