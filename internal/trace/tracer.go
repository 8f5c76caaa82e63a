package trace

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// StorageMode determines how events are stored.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // immediate write
	ModeRing                          // circular buffer
	ModeBoth                          // stream + ring
)

// String returns the string representation of StorageMode.
func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to StorageMode.
func ParseMode(s string) (StorageMode, error) {
	switch strings.ToLower(s) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	default:
		return ModeRing, errors.Newf("invalid storage mode: %q (expected: stream|ring|both)", s)
	}
}

// Config holds tracer configuration.
type Config struct {
	Level      Level         // tracing level
	Mode       StorageMode   // storage mode
	Format     Format        // output format (FormatAuto for auto-detection)
	Output     io.Writer     // for stream mode (if nil, use OutputPath)
	OutputPath string        // alternative: file path ("-" for stderr)
	RingSize   int           // for ring mode (default 4096)
	Heartbeat  time.Duration // heartbeat interval (0 = disabled)
}

// Session is an opened tracer together with its heartbeat and, for ring
// modes, the buffer to dump when a run fails.
type Session struct {
	Tracer
	ring *RingTracer
	hb   *heartbeat
}

// Open builds the tracer described by cfg and starts its heartbeat. A
// LevelOff config yields a session around Nop.
func Open(cfg Config) (*Session, error) {
	if cfg.Level == LevelOff {
		return &Session{Tracer: Nop}, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = 4096
	}
	s, err := build(cfg)
	if err != nil {
		return nil, err
	}
	s.hb = startHeartbeat(s.Tracer, cfg.Heartbeat)
	return s, nil
}

// Ring returns the in-memory buffer, nil when the session keeps none.
func (s *Session) Ring() *RingTracer {
	if s == nil {
		return nil
	}
	return s.ring
}

// Close stops the heartbeat, then flushes and closes the tracer.
func (s *Session) Close() error {
	s.hb.halt()
	return errors.CombineErrors(s.Tracer.Flush(), s.Tracer.Close())
}

func build(cfg Config) (*Session, error) {
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}

	var stream *StreamTracer
	if cfg.Mode == ModeStream || cfg.Mode == ModeBoth {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream = newStreamTracer(w, cfg.Level, format)
	}
	switch cfg.Mode {
	case ModeStream:
		return &Session{Tracer: stream}, nil
	case ModeRing:
		ring := newRingTracer(cfg.RingSize, cfg.Level)
		return &Session{Tracer: ring, ring: ring}, nil
	case ModeBoth:
		ring := newRingTracer(cfg.RingSize, cfg.Level)
		return &Session{Tracer: &fanout{level: cfg.Level, tracers: []Tracer{stream, ring}}, ring: ring}, nil
	default:
		return nil, errors.Newf("unknown storage mode: %v", cfg.Mode)
	}
}

// openOutput opens the output writer from config. Stderr is wrapped so that
// closing the tracer never closes the process stream.
func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open trace output")
	}
	return f, nil
}

type nopCloser struct{ io.Writer }
