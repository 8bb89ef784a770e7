// Package logger wraps zap's SugaredLogger with the fields every request
// handler and planning call wants attached automatically.
package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.SugaredLogger
}

type ctxKey struct{}

// New builds a Logger for the given service/environment pair. Environment
// "production" gets JSON output at the requested level; anything else gets
// zap's development console encoder.
func New(service, environment, level string) *Logger {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	base, err := cfg.Build(zap.AddCallerSkip(1), zap.Fields(
		zap.String("service", service),
		zap.String("environment", environment),
	))
	if err != nil {
		base = zap.NewNop()
	}

	return &Logger{SugaredLogger: base.Sugar()}
}

var defaultLogger = New("eld-api", "development", "info")

// Default returns the package-level logger used where no request-scoped
// logger has been threaded through.
func Default() *Logger {
	return defaultLogger
}

func WithContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return defaultLogger
}

func (l *Logger) WithFields(fields ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.With(fields...)}
}

func (l *Logger) WithRequestID(id string) *Logger {
	return l.WithFields("request_id", id)
}

func (l *Logger) WithError(err error) *Logger {
	return l.WithFields("error", err.Error())
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.SugaredLogger.Fatalw(msg, args...)
	os.Exit(1)
}

func (l *Logger) Sync() error {
	return l.SugaredLogger.Sync()
}
