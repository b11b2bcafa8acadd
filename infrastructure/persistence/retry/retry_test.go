package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"commerce/domain/catalog"
	"commerce/domain/order"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

func TestExponentialBackoffWithJitter(t *testing.T) {
	config := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: false,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 0},
		{-1, 0},
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{10, 2 * time.Second}, // capped at MaxDelay
	}

	for _, tt := range tests {
		if got := ExponentialBackoffWithJitter(tt.attempt, config); got != tt.want {
			t.Errorf("attempt %d: delay = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestExponentialBackoffJitterBounds(t *testing.T) {
	config := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}

	// Jitter multiplies by a factor in [0.8, 1.2).
	for i := 0; i < 100; i++ {
		delay := ExponentialBackoffWithJitter(2, config)
		if delay < 160*time.Millisecond || delay >= 240*time.Millisecond {
			t.Fatalf("jittered delay %v outside [160ms, 240ms)", delay)
		}
	}
}

func TestIsRetryableError(t *testing.T) {
	config := DefaultConfig

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"catalog concurrent modification", catalog.NewConcurrentModificationError("p1"), true},
		{"order concurrent modification", order.NewConcurrentModificationError("o1"), true},
		{"mysql deadlock", &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}, true},
		{"mysql lock wait timeout", &mysqlDriver.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}, true},
		{"mysql duplicate entry", &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"}, false},
		{"insufficient stock", catalog.NewInsufficientStockError("Widget", 1, 5), false},
		{"not found", catalog.NewProductNotFoundError("p1"), false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryableError(tt.err, config); got != tt.want {
				t.Errorf("IsRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRetryableErrorRespectsPolicy(t *testing.T) {
	config := DefaultConfig
	config.RetryOnConcurrentModification = false
	config.RetryOnDeadlock = false

	if IsRetryableError(catalog.NewConcurrentModificationError("p1"), config) {
		t.Error("concurrent modification should not be retryable when disabled")
	}
	if IsRetryableError(&mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}, config) {
		t.Error("deadlock should not be retryable when disabled")
	}
}

func TestIsRetryableErrorCustomPredicate(t *testing.T) {
	custom := errors.New("custom transient failure")
	config := DefaultConfig
	config.RetryPredicate = func(err error) bool { return errors.Is(err, custom) }

	if !IsRetryableError(custom, config) {
		t.Error("predicate-matched error should be retryable")
	}
}

func TestExecuteWithRetryRetriesUntilSuccess(t *testing.T) {
	config := DefaultConfig
	config.InitialDelay = time.Millisecond
	config.MaxDelay = time.Millisecond

	attempts := 0
	err := ExecuteWithRetry(context.Background(), config, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return catalog.NewConcurrentModificationError("p1")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ExecuteWithRetry failed: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestExecuteWithRetryExhaustsAttempts(t *testing.T) {
	config := DefaultConfig
	config.InitialDelay = time.Millisecond
	config.MaxDelay = time.Millisecond

	attempts := 0
	err := ExecuteWithRetry(context.Background(), config, func(ctx context.Context) error {
		attempts++
		return catalog.NewConcurrentModificationError("p1")
	})
	if !errors.Is(err, catalog.ErrConcurrentModification) {
		t.Fatalf("expected the last error back, got %v", err)
	}
	if attempts != config.MaxAttempts {
		t.Errorf("attempts = %d, want %d", attempts, config.MaxAttempts)
	}
}

func TestExecuteWithRetryStopsOnNonRetryable(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), DefaultConfig, func(ctx context.Context) error {
		attempts++
		return catalog.NewInsufficientStockError("Widget", 1, 5)
	})
	if !errors.Is(err, catalog.ErrInsufficientStock) {
		t.Fatalf("expected the business error back, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 for a non-retryable error", attempts)
	}
}

func TestExecuteWithRetryDisabled(t *testing.T) {
	config := DefaultConfig
	config.Enabled = false

	attempts := 0
	_ = ExecuteWithRetry(context.Background(), config, func(ctx context.Context) error {
		attempts++
		return catalog.NewConcurrentModificationError("p1")
	})
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 when retry is disabled", attempts)
	}
}

func TestExecuteWithRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ExecuteWithRetry(ctx, DefaultConfig, func(ctx context.Context) error {
		t.Fatal("fn should not run on a cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
