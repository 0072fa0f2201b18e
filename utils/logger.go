package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = zap.NewNop()

// InitLogger writes JSON logs to stdout and duplicates errors into a rotated
// logs/errors.log.
func InitLogger(logsDir, level string) error {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewJSONEncoder(encCfg)

	errorFile := &lumberjack.Logger{
		Filename:   filepath.Join(logsDir, "errors.log"),
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl),
		zapcore.NewCore(enc, zapcore.AddSync(errorFile), zapcore.ErrorLevel),
	)
	logger = zap.New(core, zap.AddCaller())
	return nil
}

// SetLogger replaces the process logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	return logger
}

// SyncLogger flushes buffered entries.
func SyncLogger() {
	_ = logger.Sync()
}

func LogError(err error, context string) {
	if err == nil {
		return
	}
	file, line := caller(2)
	logger.Error(context,
		zap.Error(err),
		zap.String("at", fmt.Sprintf("%s:%d", file, line)),
	)
}

func LogPanic(recovered interface{}, context string) {
	file, line := caller(3)
	logger.Error("panic: "+context,
		zap.Any("panic", recovered),
		zap.String("at", fmt.Sprintf("%s:%d", file, line)),
		zap.Stack("stack"),
	)
}

func caller(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", 0
	}
	return filepath.Base(file), line
}
