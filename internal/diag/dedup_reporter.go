package diag

import "declgen/internal/source"

type dedupKey struct {
	code   Code
	sev    Severity
	file   source.FileID
	typ    string
	member string
	msg    string
}

func keyOf(code Code, sev Severity, s Subject, msg string) dedupKey {
	return dedupKey{
		code:   code,
		sev:    sev,
		file:   s.File,
		typ:    s.Type,
		member: s.Member,
		msg:    msg,
	}
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same code, severity, subject and message.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, subject Subject, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := keyOf(code, sev, subject, msg)
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, subject, msg, notes)
	}
}
