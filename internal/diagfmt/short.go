package diagfmt

import (
	"io"

	"declgen/internal/diag"
	"declgen/internal/source"
)

// Short writes one line per diagnostic in bag order, the same shape golden
// tests compare against.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	text := diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes)
	if text == "" {
		return nil
	}
	_, err := io.WriteString(w, text+"\n")
	return err
}

// Format names an output format accepted by Write.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatShort  Format = "short"
	FormatJSON   Format = "json"
)

// Options bundle per-format settings for Write.
type Options struct {
	Format Format
	Pretty PrettyOpts
	JSON   JSONOpts
}

// Write dispatches on opts.Format; unknown formats fall back to pretty.
func Write(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts Options) error {
	switch opts.Format {
	case FormatShort:
		return Short(w, bag, fs, opts.Pretty.ShowNotes)
	case FormatJSON:
		return JSON(w, bag, fs, opts.JSON)
	default:
		return Pretty(w, bag, fs, opts.Pretty)
	}
}
