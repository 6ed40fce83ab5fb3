package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{name: "debug", level: "debug", enabled: slog.LevelDebug, muted: slog.LevelDebug - 4},
		{name: "info", level: "info", enabled: slog.LevelInfo, muted: slog.LevelDebug},
		{name: "warn", level: "warn", enabled: slog.LevelWarn, muted: slog.LevelInfo},
		{name: "error", level: "error", enabled: slog.LevelError, muted: slog.LevelWarn},
		{name: "unknown falls back to info", level: "banana", enabled: slog.LevelInfo, muted: slog.LevelDebug},
		{name: "case insensitive", level: "WARN", enabled: slog.LevelWarn, muted: slog.LevelInfo},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log := Setup(tc.level)
			require.NotNil(t, log)

			ctx := context.Background()
			assert.True(t, log.Enabled(ctx, tc.enabled))
			assert.False(t, log.Enabled(ctx, tc.muted))
		})
	}
}

func TestSetupInstallsDefault(t *testing.T) {
	log := Setup("info")
	assert.Same(t, log, slog.Default())
}

func TestFromContext(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithLogger(context.Background(), base)
	assert.Same(t, base, FromContext(ctx))

	// Without an attached logger, the process default is returned.
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
