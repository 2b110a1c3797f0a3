package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{in: "debug", want: LogDebug},
		{in: "info", want: LogInfo},
		{in: "warn", want: LogWarn},
		{in: "error", want: LogError},
		{in: "", want: LogInfo},
		{in: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogWarn)

	logger.Info("hidden")
	logger.Warn("shown", zap.String("memo", "fib"))
	Sync(logger)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "fib")
}

func TestNewLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogDebug)

	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
	logger.Debug("memo miss")
	assert.Contains(t, buf.String(), "memo miss")
}
