package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Debug controls whether debug logs are printed.
var Debug bool

var logger = newLogger()

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	l, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return l.Sugar()
}

// L returns the shared logger.
func L() *zap.SugaredLogger { return logger }

// Sync flushes buffered entries.
func Sync() { _ = logger.Sync() }

// Debugf logs a formatted debug message when Debug is enabled.
func Debugf(format string, v ...any) {
	if Debug {
		logger.Debugf(format, v...)
	}
}

func Infof(format string, v ...any)  { logger.Infof(format, v...) }
func Warnf(format string, v ...any)  { logger.Warnf(format, v...) }
func Errorf(format string, v ...any) { logger.Errorf(format, v...) }
