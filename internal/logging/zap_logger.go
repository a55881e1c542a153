package logging

import (
	"io"
	"os"

	"go.elastic.co/ecszap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap logger to ddex.Logger. Verbose maps to the debug
// level.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger writes ECS JSON lines to w, or to stderr when w is nil.
// Debug entries are only written when verbose is set.
func NewZapLogger(w io.Writer, verbose bool) *ZapLogger {
	if w == nil {
		w = os.Stderr
	}
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	core := ecszap.NewCore(ecszap.NewDefaultEncoderConfig(), zapcore.AddSync(w), level)
	return NewZapLoggerFromCore(core)
}

// NewZapLoggerFromCore wraps an existing zap core.
func NewZapLoggerFromCore(core zapcore.Core) *ZapLogger {
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &ZapLogger{sugar: logger.Sugar()}
}

func (l *ZapLogger) Verbose(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *ZapLogger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *ZapLogger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
