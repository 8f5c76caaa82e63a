package diagfmt

import (
	"encoding/json"
	"io"

	"declgen/internal/diag"
	"declgen/internal/source"
)

// LocationJSON points at a member inside a document.
type LocationJSON struct {
	File   string `json:"file"`
	Type   string `json:"type,omitempty"`
	Member string `json:"member,omitempty"`
	Line   uint32 `json:"line,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Dropped     int              `json:"dropped,omitempty"`
}

func makeLocation(s diag.Subject, fs *source.FileSet, mode PathMode) LocationJSON {
	return LocationJSON{
		File:   subjectPath(s, fs, mode),
		Type:   s.Type,
		Member: s.Member,
		Line:   s.Line,
	}
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	diagnostics := make([]DiagnosticJSON, 0, n)
	for _, d := range items[:n] {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: makeLocation(d.Subject, fs, opts.PathMode),
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				dj.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Subject, fs, opts.PathMode),
				}
			}
		}
		diagnostics = append(diagnostics, dj)
	}
	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Errors:      bag.ErrorCount(),
		Dropped:     bag.Dropped() + len(items) - n,
	}
}

// JSON writes the diagnostics as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
