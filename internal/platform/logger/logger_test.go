package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromCore(core).With("run_id", "abc")

	log.Warn("classification coerced", "resolution", "category_fold")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	require.Equal(t, "classification coerced", entries[0].Message)
	fields := entries[0].ContextMap()
	require.Equal(t, "abc", fields["run_id"])
	require.Equal(t, "category_fold", fields["resolution"])
}

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", ""} {
		l, err := New(mode)
		require.NoError(t, err)
		require.NotNil(t, l.SugaredLogger)
	}
}

func TestNop(t *testing.T) {
	require.NotPanics(t, func() { Nop().Info("nothing", "k", 1) })
}
