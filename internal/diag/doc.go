// Package diag defines the diagnostic model shared by every generation phase.
//
// # Purpose
//
//   - Capture member-scoped findings (malformed property attributes,
//     unresolved setter selectors, ownership conflicts) as immutable values.
//   - Let producers emit diagnostics through a Reporter without coupling to
//     storage or formatting.
//
// A diagnostic never interrupts generation. Phases record it and move on to
// the next member; the caller inspects the Bag once the pass is over.
//
// # Data model
//
// Diagnostic contains:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – numeric identifier with a stable string form (codes.go).
//     Ranges: PRP property attributes, MEM memory semantics, GEN emission,
//     IO document loading, DCL declaration tree.
//   - Message – short human text.
//   - Subject – the type and member the finding is about, plus the line and
//     file when the driver knows them.
//   - Notes – optional secondary subjects.
//
// # Emitting
//
// Phases either return a *Diagnostic directly (property, memsem) or use a
// ReportBuilder bound to a Reporter. BagReporter stores into a Bag, which is
// bounded, sortable and deduplicable. One Bag belongs to one invocation; bags
// from parallel invocations are merged by the driver after they finish.
//
// Rendering lives in internal/diagfmt. FormatShortDiagnostics and
// FormatGoldenDiagnostics in this package produce the single-line form used by
// tests and `--format short`.
package diag
