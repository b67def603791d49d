package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a sugared zap logger for use across CLI commands.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a console logger. Verbose mode enables debug level
// output; otherwise only info and above is printed.
func NewLogger(verbose bool) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	base, err := cfg.Build()
	if err != nil {
		// zap only fails on invalid config; fall back to a no-op logger
		base = zap.NewNop()
	}

	return &Logger{SugaredLogger: base.Sugar()}
}
