package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"declgen/internal/diag"
	"declgen/internal/source"
)

type palette struct {
	err, warn, info, code, loc, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgCyan, color.Bold),
		code: color.New(color.Bold),
		loc:  color.New(color.FgBlue),
		note: color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.loc, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty prints bag items in order (callers sort first):
//
//	error[PRP1001]: unknown property attribute "bogus"
//	  --> decls/FooBar.toml: FooBar.fieldBad (line 12)
//	  = note: ...
//
// followed by a one-line summary.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var b strings.Builder
	for _, d := range bag.Items() {
		b.WriteString(p.severity(d.Severity).Sprint(d.Severity.Label()))
		b.WriteString(p.code.Sprintf("[%s]", d.Code.ID()))
		b.WriteString(": ")
		b.WriteString(fitWidth(d.Message, opts.Width))
		b.WriteString("\n")

		b.WriteString(p.loc.Sprint("  --> "))
		b.WriteString(location(d.Subject, fs, opts.PathMode))
		b.WriteString("\n")

		if opts.ShowNotes {
			for _, n := range d.Notes {
				b.WriteString(p.note.Sprint("  = note: "))
				if n.Subject.Type != "" || n.Subject.Member != "" {
					b.WriteString(n.Subject.String())
					b.WriteString(": ")
				}
				b.WriteString(fitWidth(n.Msg, opts.Width))
				b.WriteString("\n")
			}
		}
	}
	if summary := Summary(bag); summary != "" {
		if bag.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(summary)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func location(s diag.Subject, fs *source.FileSet, mode PathMode) string {
	loc := subjectPath(s, fs, mode)
	if s.Type != "" || s.Member != "" {
		loc += ": " + s.String()
	}
	if s.Line > 0 {
		loc += fmt.Sprintf(" (line %d)", s.Line)
	}
	return loc
}

// fitWidth truncates msg to width display columns; 0 keeps it whole.
func fitWidth(msg string, width uint8) string {
	if width == 0 || runewidth.StringWidth(msg) <= int(width) {
		return msg
	}
	if width <= 3 {
		return runewidth.Truncate(msg, int(width), "")
	}
	return runewidth.Truncate(msg, int(width), "...")
}

// Summary renders "N errors, M warnings" or "" for an empty bag.
func Summary(bag *diag.Bag) string {
	var errs, warns, infos int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		default:
			infos++
		}
	}
	var parts []string
	if errs > 0 {
		parts = append(parts, plural(errs, "error"))
	}
	if warns > 0 {
		parts = append(parts, plural(warns, "warning"))
	}
	if infos > 0 {
		parts = append(parts, plural(infos, "note"))
	}
	if bag.Dropped() > 0 {
		parts = append(parts, fmt.Sprintf("%d dropped", bag.Dropped()))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
