package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"consultancy-workers/internal/common/config"
	"consultancy-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRegistryValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, registry.Save(registry.Build(&config.Config{}, "test", time.Now()), path))

	out, err := execute(t, "registry", "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "22 activities")
}

func TestRegistryValidate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0.0","activities":[]}`), 0o644))

	_, err := execute(t, "registry", "validate", "--path", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no activities")
}

func TestRegistrySync_UsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
app:
  version: "2.0.0"
camunda:
  broker_address: "localhost:26500"
database:
  postgres:
    host: localhost
    database: consultancy
    user: app
  elasticsearch:
    url: "http://localhost:9200"
  redis:
    address: "localhost:6379"
workers:
  index-case-study:
    enabled: false
`), 0o644))
	regPath := filepath.Join(dir, "registry", "activities.json")

	out, err := execute(t, "registry", "sync", "--config", cfgPath, "--path", regPath)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 22 activities")

	reg, err := registry.LoadRegistry(regPath)
	require.NoError(t, err)
	for _, a := range reg.Activities {
		assert.Equal(t, "2.0.0", a.Version)
		if a.ID == "index-case-study" {
			assert.False(t, a.Enabled)
		}
	}
}
