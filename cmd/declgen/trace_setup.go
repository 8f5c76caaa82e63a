package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"declgen/internal/trace"
)

// traceDumpTail bounds the events printed after a failed run.
const traceDumpTail = 200

var (
	runCleanup    func()
	activeSession *trace.Session
)

// setupTracing inspects trace-related flags, installs the tracer into the
// command context and returns its cleanup function.
func setupTracing(cmd *cobra.Command) (func(), error) {
	pf := cmd.Root().PersistentFlags()

	traceOutput, err := pf.GetString("trace")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace flag")
	}
	levelStr, err := pf.GetString("trace-level")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-level flag")
	}
	modeStr, err := pf.GetString("trace-mode")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-mode flag")
	}
	ringSize, err := pf.GetInt("trace-ring-size")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-ring-size flag")
	}
	heartbeatInterval, err := pf.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-heartbeat flag")
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid trace level")
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		installTracer(cmd, trace.Nop)
		return func() {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid trace mode")
	}
	// Explicit output without a mode flag means the user wants a stream.
	if traceOutput != "" && !pf.Changed("trace-mode") {
		mode = trace.ModeStream
	}

	session, err := trace.Open(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tracer")
	}
	activeSession = session
	installTracer(cmd, session)

	errOut := cmd.ErrOrStderr()
	return func() {
		if err := session.Close(); err != nil {
			fmt.Fprintf(errOut, "trace: %v\n", err)
		}
		activeSession = nil
	}, nil
}

func installTracer(cmd *cobra.Command, tracer trace.Tracer) {
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
}

func finishRun() {
	if runCleanup == nil {
		return
	}
	cleanup := runCleanup
	runCleanup = nil
	cleanup()
}

// dumpTraceOnFailure writes the ring buffer, if any, after a failed run.
func dumpTraceOnFailure(w io.Writer) {
	ring := activeSession.Ring()
	if ring == nil {
		return
	}
	fmt.Fprintln(w, "--- trace (most recent events) ---")
	if err := ring.Dump(w, trace.FormatText, traceDumpTail); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}
