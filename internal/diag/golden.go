package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"declgen/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Subject  string
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files. Entries are sorted deterministically
// and returned as a single string (empty when nothing remains).
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Subject != dj.Subject {
			return di.Subject < dj.Subject
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d %s: %s", d.Severity, d.Code, d.Path, d.Line, d.Subject, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatShortDiagnostics renders diagnostics in the order given, one per line,
// for CLI short output.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	var b strings.Builder
	for i := range diags {
		entries := appendDiagnostic(nil, &diags[i], fs, includeNotes)
		for _, d := range entries {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%s %s %s:%d %s: %s", d.Severity, d.Code, d.Path, d.Line, d.Subject, d.Message)
		}
	}
	return b.String()
}

func appendDiagnostic(out []goldenDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []goldenDiagnostic {
	out = append(out, goldenDiagnostic{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Path:     subjectPath(fs, d.Subject),
		Line:     d.Subject.Line,
		Subject:  d.Subject.String(),
		Message:  sanitizeMessage(d.Message),
	})

	if includeNotes {
		for _, note := range d.Notes {
			out = append(out, goldenDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     subjectPath(fs, note.Subject),
				Line:     note.Subject.Line,
				Subject:  note.Subject.String(),
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}

	return out
}

func subjectPath(fs *source.FileSet, s Subject) string {
	if fs == nil || !s.HasFile {
		return "<memory>"
	}
	file := fs.Get(s.File)
	if file == nil {
		return "<memory>"
	}
	return normalizePath(file.FormatPath(source.PathRelative, fs.BaseDir()))
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
