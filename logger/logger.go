// Package logger builds the zap loggers used by the service.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func parseLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

// New builds a logger writing to stderr, JSON when format is "json",
// human-readable otherwise.
func New(levelStr, format string) (*zap.Logger, error) {
	return NewWithFile(levelStr, format, "")
}

// NewWithFile is like New but also writes JSON lines to file, rotated by size.
func NewWithFile(levelStr, format, file string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(levelStr))

	var opts []zap.Option
	if file != "" {
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   file,
				MaxSize:    50, // megabytes
				MaxBackups: 5,
				MaxAge:     30, // days
				Compress:   true,
			}),
			cfg.Level,
		)
		opts = append(opts, zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, fileCore)
		}))
	}
	return cfg.Build(opts...)
}

// Backend adapts zap to the printf-style logger expected by go-pkgz/rest.
type Backend struct {
	L *zap.SugaredLogger
}

// Logf logs at the level named by a leading [DEBUG], [INFO], [WARN] or
// [ERROR] tag, which is stripped. Untagged messages go to info.
func (b Backend) Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	level, rest := levelTag(msg)
	switch level {
	case zapcore.DebugLevel:
		b.L.Debug(rest)
	case zapcore.WarnLevel:
		b.L.Warn(rest)
	case zapcore.ErrorLevel:
		b.L.Error(rest)
	default:
		b.L.Info(rest)
	}
}

func levelTag(msg string) (zapcore.Level, string) {
	tags := []struct {
		tag   string
		level zapcore.Level
	}{
		{"[TRACE]", zapcore.DebugLevel},
		{"[DEBUG]", zapcore.DebugLevel},
		{"[INFO]", zapcore.InfoLevel},
		{"[WARN]", zapcore.WarnLevel},
		{"[ERROR]", zapcore.ErrorLevel},
	}
	for _, t := range tags {
		if strings.HasPrefix(msg, t.tag) {
			return t.level, strings.TrimSpace(strings.TrimPrefix(msg, t.tag))
		}
	}
	return zapcore.InfoLevel, msg
}
