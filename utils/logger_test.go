package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogErrorAddsCaller(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	LogError(nil, "ignored")
	LogError(errors.New("db down"), "rollup")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "rollup", entry.Message)
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "db down", fields["error"])
	assert.True(t, strings.HasPrefix(fields["at"].(string), "logger_test.go:"))
}

func TestInitLoggerCreatesDir(t *testing.T) {
	dir := t.TempDir() + "/logs"
	require.NoError(t, InitLogger(dir, "debug"))
	t.Cleanup(func() { SetLogger(nil) })
	assert.True(t, Logger().Core().Enabled(zapcore.DebugLevel))
	assert.DirExists(t, dir)
}
