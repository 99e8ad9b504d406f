package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestLoggerUsableBeforeInit(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("expected no-op logger before Init")
	}
	Info(context.Background(), "before init")
}

func TestInitAndContextLogging(t *testing.T) {
	Init("development")
	if GetLogger() == nil {
		t.Fatal("expected logger initialized")
	}

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	l := WithContext(ctx)
	if l == nil {
		t.Fatal("expected contextual logger")
	}

	Info(ctx, "info")
	Debug(ctx, "debug")
	Warn(ctx, "warn")
	Error(ctx, "error", zap.String("op", "test"))
	LogRequest(ctx, "GET", "/health", 200, 10*time.Millisecond, "127.0.0.1")
}

func TestWithContextNil(t *testing.T) {
	Init("development")
	if WithContext(nil) == nil {
		t.Fatal("expected base logger for nil context")
	}
}

func TestWithContextUpdateAndUser(t *testing.T) {
	Init("development")
	ctx := WithUser(WithUpdate(context.Background(), 42), 1001)

	if got, _ := ctx.Value(UpdateIDKey).(int); got != 42 {
		t.Fatalf("expected update id 42, got %d", got)
	}
	if got, _ := ctx.Value(UserIDKey).(int64); got != 1001 {
		t.Fatalf("expected user id 1001, got %d", got)
	}
	if WithContext(ctx) == GetLogger() {
		t.Fatal("expected derived logger with fields")
	}
}

func TestInit_ProductionAndWithContextWithoutFields(t *testing.T) {
	// reset package singleton to cover production init branch deterministically
	log = zap.NewNop()
	once = sync.Once{}

	Init("production")
	if GetLogger() == nil {
		t.Fatal("expected production logger initialized")
	}

	if WithContext(context.Background()) != GetLogger() {
		t.Fatal("expected base logger without contextual fields")
	}
	Sync()
}
