package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"local", "dev", "docker", "prod"} {
		l, err := NewLogger(env, "recipedex", "")
		if err != nil {
			t.Fatalf("NewLogger(%q): %v", env, err)
		}
		_ = l.Sync()
	}
}

func TestNewLogger_Errors(t *testing.T) {
	if _, err := NewLogger("staging", "", ""); err == nil {
		t.Error("expected error for unknown env")
	}
	if _, err := NewLogger("local", "", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "trainer", "warn")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if l.Core().Enabled(zap.InfoLevel) {
		t.Error("info must be disabled at warn level")
	}
}

func TestFromContext(t *testing.T) {
	fallback := zap.NewExample()
	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Error("expected fallback logger")
	}
	if got := FromContext(context.Background(), nil); got == nil {
		t.Error("expected nop logger")
	}

	reqLogger := zap.NewExample().With(zap.String("request_id", "r-1"))
	ctx := ContextWithLogger(context.Background(), reqLogger)
	if got := FromContext(ctx, fallback); got != reqLogger {
		t.Error("expected stored logger")
	}
}
