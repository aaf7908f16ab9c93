// Package logging wraps zap with the key/value logger used across spk.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Modes accepted by [New].
const (
	ModeOff  = "off"
	ModeDev  = "dev"
	ModeProd = "prod"
)

// Logger is a sugared zap logger. The zero value is not usable; a nil
// *Logger discards everything.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a logger writing to w. Mode "off" (or empty) returns a no-op
// logger, "dev" a debug-level console logger and "prod" an info-level JSON
// logger.
func New(mode string, w io.Writer) (*Logger, error) {
	var (
		enc   zapcore.Encoder
		level zapcore.Level
	)

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeOff:
		return Nop(), nil
	case ModeDev, "development":
		cfg := zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(cfg)
		level = zapcore.DebugLevel
	case ModeProd, "production":
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
		level = zapcore.InfoLevel
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)

	return &Logger{sugar: zap.New(core).Sugar()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	if l == nil {
		return
	}

	_ = l.sugar.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}

	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}

	l.sugar.Infow(msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}

	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}

	l.sugar.Errorw(msg, keysAndValues...)
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(keysAndValues ...any) *Logger {
	if l == nil {
		return nil
	}

	return &Logger{sugar: l.sugar.With(keysAndValues...)}
}
