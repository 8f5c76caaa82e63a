// Package logger builds the operational zap logger. Diagnostics are not
// logged here; they go through internal/diag and internal/diagfmt.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for the repeated -v flag.
const (
	VerbosityQuiet = 0 // warnings and errors only
	VerbosityInfo  = 1 // -v: + per-run summary, cache hits
	VerbosityDebug = 2 // -vv: + per-document events
)

// Options select the encoder, level and destination.
type Options struct {
	JSON      bool
	Verbosity int
	// Output defaults to stderr; stdout carries generated text.
	Output io.Writer
}

// VerbosityToLevel maps -v counts onto zap levels.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// New builds a logger for the CLI. The console encoder drops timestamps and
// callers; JSON keeps the production field names.
func New(opts Options) *zap.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	var enc zapcore.Encoder
	if opts.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(out), VerbosityToLevel(opts.Verbosity))
	return zap.New(core).Named("declgen")
}

// Nop is used by library callers and tests that do not care about logs.
func Nop() *zap.Logger { return zap.NewNop() }

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
