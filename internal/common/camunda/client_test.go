package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"consultancy-workers/internal/common/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err      error
		expected bool
	}{
		{errors.New("rpc error: code = Unavailable desc = connection refused"), true},
		{errors.New("context deadline exceeded"), true},
		{errors.New("dial tcp: lookup zeebe: no such host"), true},
		{errors.New("NOT_FOUND: process definition"), false},
		{nil, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsTransient(tt.err), "%v", tt.err)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	log := zaptest.NewLogger(t)

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), "postgres", 5, time.Millisecond, 4*time.Millisecond, log, func() error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), "redis", 3, time.Millisecond, 0, log, func() error {
			calls++
			return errors.New("connection refused")
		})
		assert.ErrorContains(t, err, "redis failed after 3 attempts")
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		err := RetryWithBackoff(ctx, "zeebe", 10, time.Hour, 0, log, func() error {
			calls++
			return errors.New("unavailable")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestRegistry_Enabled(t *testing.T) {
	cfg := &config.Config{Workers: map[string]config.WorkerConfig{
		"notify-sales": {Enabled: false},
	}}
	r := NewRegistry(nil, cfg, zaptest.NewLogger(t))

	assert.False(t, r.Enabled("notify-sales"))
	assert.True(t, r.Enabled("calculate-roi"))
	assert.False(t, r.Register("notify-sales", nil))
	assert.Empty(t, r.TaskTypes())
}
