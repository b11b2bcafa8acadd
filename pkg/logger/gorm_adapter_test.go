package logger

import (
	"context"
	"testing"
	"time"

	"commerce/infrastructure/persistence"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"
)

func TestGormLoggerAdapter(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	testCases := []struct {
		name        string
		logLevel    logger.LogLevel
		expectTrace bool
	}{
		{"Warn Level", logger.Warn, false},
		{"Info Level", logger.Info, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			log = zap.New(core)

			adapter := NewGormLoggerAdapter(tc.logLevel)
			if adapter.LogMode(logger.Info) == nil {
				t.Fatal("LogMode should return a new adapter")
			}

			ctx := context.Background()
			adapter.Info(ctx, "test info message")
			adapter.Warn(ctx, "test warn message")
			adapter.Error(ctx, "test error message")
			adapter.Trace(ctx, time.Now(), func() (string, int64) {
				return "SELECT * FROM products", 1
			}, nil)

			foundInfo := false
			foundWarn := false
			foundTrace := false
			for _, entry := range logs.All() {
				switch entry.Message {
				case "test info message":
					foundInfo = true
				case "test warn message":
					foundWarn = true
				case "SQL query executed":
					foundTrace = true
					hasSQL := false
					for _, field := range entry.Context {
						if field.Key == "sql" {
							hasSQL = true
							break
						}
					}
					if !hasSQL {
						t.Error("SQL query not found in trace log fields")
					}
				}
			}

			if tc.logLevel >= logger.Info && !foundInfo {
				t.Error("Info message not found in logs")
			}
			if tc.logLevel < logger.Info && foundInfo {
				t.Error("Info message should be filtered out at Warn level")
			}
			if !foundWarn {
				t.Error("Warn message not found in logs")
			}
			if foundTrace != tc.expectTrace {
				t.Errorf("trace logged = %v, want %v", foundTrace, tc.expectTrace)
			}
		})
	}
}

func TestGormLoggerAdapterWithConfig(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)

	customConfig := &GormLoggerConfig{
		SlowThreshold:             time.Millisecond,
		IgnoreRecordNotFoundError: true,
		AddCaller:                 true,
	}
	adapter := NewGormLoggerAdapterWithConfig(logger.Info, customConfig)

	ctx := persistence.ContextWithRequestID(context.Background(), "test-request-123")

	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		time.Sleep(5 * time.Millisecond)
		return "SELECT * FROM slow_table", 1
	}, nil)

	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM products WHERE id = 999", 0
	}, logger.ErrRecordNotFound)

	foundSlowQuery := false
	foundRequestID := false
	for _, entry := range logs.All() {
		if entry.Message == "Slow SQL query" {
			foundSlowQuery = true
			for _, field := range entry.Context {
				if field.Key == "request_id" && field.String == "test-request-123" {
					foundRequestID = true
					break
				}
			}
		}
		if entry.Message == "Database operation failed" {
			t.Error("record-not-found errors should be ignored with custom config")
		}
	}

	if !foundSlowQuery {
		t.Error("slow query should be logged at warn level")
	}
	if !foundRequestID {
		t.Error("request ID should be propagated from context")
	}
}
