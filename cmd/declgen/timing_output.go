package main

import (
	"encoding/json"
	"fmt"
	"io"

	"declgen/internal/diagfmt"
	"declgen/internal/observ"
)

// printTimings writes the phase table, or the JSON report when diagnostics
// are machine-readable too.
func printTimings(out io.Writer, timer *observ.Timer, format diagfmt.Format) {
	if format == diagfmt.FormatJSON {
		enc := json.NewEncoder(out)
		if err := enc.Encode(timer.Report()); err != nil {
			fmt.Fprintf(out, "timings: %v\n", err)
		}
		return
	}
	fmt.Fprint(out, timer.Summary())
}
