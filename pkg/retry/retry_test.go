package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.Equal(t, 2.0, cfg.Multiplier)
	assert.Empty(t, cfg.RetryableErrors)
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("success on first attempt", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(), func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(), func() error {
			calls++
			if calls < 3 {
				return errors.New("temporary")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error after max attempts", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(), func() error {
			calls++
			return errors.New("still failing")
		})
		assert.EqualError(t, err, "still failing")
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		cfg := fastConfig()
		cfg.RetryableErrors = []string{"deadlock detected"}
		calls := 0
		err := Do(ctx, cfg, func() error {
			calls++
			return errors.New("slot conflict")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries matching pattern", func(t *testing.T) {
		cfg := fastConfig()
		cfg.RetryableErrors = []string{"deadlock detected"}
		calls := 0
		err := Do(ctx, cfg, func() error {
			calls++
			if calls == 1 {
				return errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("zero max attempts", func(t *testing.T) {
		cfg := fastConfig()
		cfg.MaxAttempts = 0
		err := Do(ctx, cfg, func() error { return nil })
		assert.ErrorContains(t, err, "MaxAttempts")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := Do(cancelled, fastConfig(), func() error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDo_OnRetry(t *testing.T) {
	cfg := fastConfig()
	var attempts []int
	cfg.OnRetry = func(attempt int, err error) {
		attempts = append(attempts, attempt)
	}

	_ = Do(context.Background(), cfg, func() error {
		return errors.New("temporary")
	})

	assert.Equal(t, []int{1, 2}, attempts, "no callback after the final attempt")
}

func TestDoWithResult(t *testing.T) {
	calls := 0
	result, err := DoWithResult(context.Background(), fastConfig(), func() (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("temporary")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestCalculateDelay(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2.0}

	assert.Equal(t, 100*time.Millisecond, calculateDelay(0, cfg))
	assert.Equal(t, 200*time.Millisecond, calculateDelay(1, cfg))
	assert.Equal(t, 400*time.Millisecond, calculateDelay(2, cfg))
	assert.Equal(t, time.Second, calculateDelay(10, cfg), "capped at MaxDelay")
	assert.Equal(t, 100*time.Millisecond, calculateDelay(-1, cfg))
}

func TestAddJitter(t *testing.T) {
	delay := 100 * time.Millisecond
	for i := 0; i < 100; i++ {
		got := addJitter(delay)
		assert.GreaterOrEqual(t, got, 90*time.Millisecond)
		assert.LessOrEqual(t, got, 110*time.Millisecond)
	}
	assert.Equal(t, time.Duration(0), addJitter(0))
}

func TestIsRetryableError(t *testing.T) {
	cfg := TransactionConfig()

	assert.False(t, IsRetryableError(nil, cfg))
	assert.True(t, IsRetryableError(errors.New("ERROR: could not serialize access due to concurrent update"), cfg))
	assert.True(t, IsRetryableError(errors.New("database is locked"), cfg))
	assert.False(t, IsRetryableError(errors.New("invalid score format"), cfg))
	assert.True(t, IsRetryableError(errors.New("anything"), Config{}), "empty pattern list retries everything")
}

func TestPostgresConfig(t *testing.T) {
	cfg := PostgresConfig()
	assert.Equal(t, DefaultPostgresRetryableErrors(), cfg.RetryableErrors)
	assert.True(t, IsRetryableError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), cfg))
}

func TestTransactionConfig(t *testing.T) {
	cfg := TransactionConfig()
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Less(t, cfg.MaxDelay, time.Second)
	assert.NotEmpty(t, cfg.RetryableErrors)
}

func TestIsRetryableError_Predicate(t *testing.T) {
	transient := errors.New("transient")
	cfg := TransactionConfig()
	cfg.Retryable = func(err error) bool { return errors.Is(err, transient) }

	assert.True(t, IsRetryableError(fmt.Errorf("wrapped: %w", transient), cfg))
	assert.False(t, IsRetryableError(errors.New("database is locked"), cfg), "predicate overrides patterns")
}

func TestMatchesAny(t *testing.T) {
	patterns := []string{"Connection Reset", "deadlock detected"}

	assert.True(t, MatchesAny(errors.New("read: connection reset by peer"), patterns))
	assert.False(t, MatchesAny(errors.New("slot taken"), patterns))
	assert.False(t, MatchesAny(nil, patterns))
	assert.False(t, MatchesAny(errors.New("connection reset"), nil))
}
