// Package logger emits structured JSON log entries keyed by service and
// action, in the shape the rest of the system greps for.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	service string
	zl      *zap.Logger
}

func New(service string) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "action"
	enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stdout), zap.DebugLevel)
	zl := zap.New(core).With(zap.String("service", service), zap.String("hostname", hostname()))
	return &Logger{service: service, zl: zl}
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger { return &Logger{zl: zap.NewNop()} }

func (l *Logger) Info(action string, fields map[string]any) {
	l.zl.Info(action, mapFields(fields)...)
}

func (l *Logger) Debug(action string, fields map[string]any) {
	l.zl.Debug(action, mapFields(fields)...)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	fs := mapFields(fields)
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	l.zl.Error(action, fs...)
}

func mapFields(fields map[string]any) []zap.Field {
	fs := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		fs = append(fs, zap.Any(k, v))
	}
	return fs
}

func hostname() string { h, _ := os.Hostname(); return h }
