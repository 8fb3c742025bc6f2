package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestNew(t *testing.T) {
	l, err := New("warn", "json")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ats.log")
	l, err := NewWithFile("info", "console", path)
	require.NoError(t, err)
	l.Info("candidate created", zap.String("id", "c1"))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"candidate created"`)
	assert.Contains(t, string(data), `"id":"c1"`)
}

func TestBackend(t *testing.T) {
	tests := []struct {
		format string
		level  zapcore.Level
		msg    string
	}{
		{"[DEBUG] GET %s 200", zapcore.DebugLevel, "GET /api/v1/candidates 200"},
		{"[TRACE] GET %s", zapcore.DebugLevel, "GET /api/v1/candidates"},
		{"[INFO] %s", zapcore.InfoLevel, "/api/v1/candidates"},
		{"[WARN] %s failed", zapcore.WarnLevel, "/api/v1/candidates failed"},
		{"[ERROR] %s panicked", zapcore.ErrorLevel, "/api/v1/candidates panicked"},
		{"plain %s", zapcore.InfoLevel, "plain /api/v1/candidates"},
	}
	for _, tc := range tests {
		t.Run(tc.msg, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			Backend{L: zap.New(core).Sugar()}.Logf(tc.format, "/api/v1/candidates")
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tc.level, logs.All()[0].Level)
			assert.Equal(t, tc.msg, logs.All()[0].Message)
		})
	}
}

func TestBackendDebugFilteredAtInfo(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Backend{L: zap.New(core).Sugar()}.Logf("[DEBUG] GET /health 200")
	assert.Equal(t, 0, logs.Len())
}
