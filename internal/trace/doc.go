// Package trace records spans around generation phases and documents.
//
// Enable tracing via command-line flags:
//
//	declgen gen --trace=- --trace-level=detail decls/
//
// A Session wraps one of three sinks: a stream to a file or stderr, an
// in-memory ring dumped when a run fails, or both. Levels map onto scopes:
// phase emits driver and phase spans, detail adds one span per document,
// debug adds one span per emitted type.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, session)
//	ctx, span := trace.Start(ctx, trace.ScopePhase, "generate")
//	defer span.End("")
package trace
