package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"panic": zapcore.PanicLevel,
		"fatal": zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers verifies storage and retrieval of scoped loggers.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// Without a stored logger the global one is returned.
	require.Equal(t, Logger(), FromContext(ctx))

	named := New(nil).Named("scoped")
	ctx = ToContext(ctx, named)
	require.Equal(t, named, FromContext(ctx))

	// WithName derives a new logger without touching the parent context.
	child := WithName(ctx, "step")
	require.NotEqual(t, FromContext(ctx), FromContext(child))
	require.Equal(t, named, FromContext(ctx))
}
