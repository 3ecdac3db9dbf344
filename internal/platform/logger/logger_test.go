package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/parla-app/parla-api/internal/config"
)

func TestSetup(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "mixed case level", logLevel: "DEBUG"},
		{name: "invalid level falls back to info", logLevel: "verbose"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{LogLevel: tc.logLevel})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if log == nil {
				t.Fatal("Expected a configured logger, got nil")
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		buf := &TestLogBuffer{}
		stored := slog.New(slog.NewJSONHandler(buf, nil))
		ctx := WithLogger(context.Background(), stored)

		if got := FromContext(ctx); got != stored {
			t.Error("Expected the stored logger back from the context")
		}
	})

	t.Run("falls back to default when absent", func(t *testing.T) {
		if got := FromContext(context.Background()); got != slog.Default() {
			t.Error("Expected the default logger for a bare context")
		}
	})

	t.Run("nil context falls back to default", func(t *testing.T) {
		//nolint:staticcheck // exercising the nil-context guard
		if got := FromContext(nil); got != slog.Default() {
			t.Error("Expected the default logger for a nil context")
		}
	})
}

func TestFromContextOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(&TestLogBuffer{}, nil))

	t.Run("prefers the context logger", func(t *testing.T) {
		stored := slog.New(slog.NewJSONHandler(&TestLogBuffer{}, nil))
		ctx := WithLogger(context.Background(), stored)

		if got := FromContextOrDefault(ctx, fallback); got != stored {
			t.Error("Expected the context logger, not the fallback")
		}
	})

	t.Run("uses the fallback when absent", func(t *testing.T) {
		if got := FromContextOrDefault(context.Background(), fallback); got != fallback {
			t.Error("Expected the fallback logger")
		}
	})
}
