package registry

import (
	"path/filepath"
	"testing"
	"time"

	"consultancy-workers/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buildTime = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"calculate-roi":             "Calculate ROI",
		"request-roi-follow-up":     "Request ROI Follow Up",
		"get-featured-case-studies": "Get Featured Case Studies",
		"score-lead":                "Score Lead",
	}
	for taskType, want := range tests {
		assert.Equal(t, want, DisplayName(taskType))
	}
}

func TestBuild(t *testing.T) {
	cfg := &config.Config{
		Workers: map[string]config.WorkerConfig{
			"search-case-studies": {Enabled: false, MaxJobsActive: 2, Timeout: 8000, MaxRetries: 1},
		},
	}

	reg := Build(cfg, "1.4.0", buildTime)
	require.NoError(t, Validate(reg))
	assert.Equal(t, "2026-10-19T09:00:00Z", reg.LastUpdated)
	assert.Len(t, reg.Activities, 22)

	byID := make(map[string]Activity)
	for _, a := range reg.Activities {
		byID[a.ID] = a
	}

	search := byID["search-case-studies"]
	assert.False(t, search.Enabled)
	assert.Equal(t, "8s", search.Timeout)
	assert.Equal(t, 1, search.Retries)
	assert.Equal(t, "casestudy", search.Category)

	roi := byID["calculate-roi"]
	assert.True(t, roi.Enabled)
	assert.Equal(t, "30s", roi.Timeout)
	assert.Equal(t, "1.4.0", roi.Version)
	assert.Equal(t, StatusCompleted, roi.ImplementationStatus)
}

func TestMerge_RetiresRemovedActivities(t *testing.T) {
	existing := &ActivityRegistry{Activities: []Activity{
		{ID: "calculate-roi", DisplayName: "Old", Category: "roi", TaskType: "calculate-roi", Enabled: true},
		{ID: "legacy-export", DisplayName: "Legacy Export", Category: "roi", TaskType: "legacy-export", Enabled: true},
	}}
	fresh := Build(&config.Config{}, "1.4.0", buildTime)

	merged := Merge(existing, fresh)
	require.NoError(t, Validate(merged))
	assert.Len(t, merged.Activities, 23)

	for _, a := range merged.Activities {
		switch a.ID {
		case "legacy-export":
			assert.Equal(t, StatusRetired, a.ImplementationStatus)
			assert.False(t, a.Enabled)
		case "calculate-roi":
			assert.Equal(t, "Calculate ROI", a.DisplayName)
		}
	}
	assert.Same(t, fresh, Merge(nil, fresh))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		activities []Activity
		wantErr    string
	}{
		{"empty", nil, "no activities"},
		{"missing id", []Activity{{DisplayName: "X", Category: "roi", TaskType: "x"}}, "missing required field: ID"},
		{"duplicate", []Activity{
			{ID: "score-lead", DisplayName: "Score Lead", Category: "contact", TaskType: "score-lead"},
			{ID: "score-lead", DisplayName: "Score Lead", Category: "contact", TaskType: "score-lead"},
		}, "duplicate activity ID"},
		{"bad task type", []Activity{{ID: "a", DisplayName: "A", Category: "roi", TaskType: "Calculate_ROI"}}, "lower-case"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&ActivityRegistry{Activities: tt.activities})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry", "activities.json")
	reg := Build(&config.Config{}, "1.4.0", buildTime)

	require.NoError(t, Save(reg, path))
	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, reg, loaded)
}
