package diag

// Reporter: минимальный контракт получения диагностик от фаз генерации.
// Реализации: BagReporter (кладёт в Bag), DedupReporter (фильтр повторов).
type Reporter interface {
	Report(code Code, sev Severity, subject Subject, msg string, notes []Note)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, subject Subject, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, subject, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, subject Subject, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, subject, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, subject Subject, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, subject, msg)
}

// ReportInfo is a shortcut for SevInfo diagnostics.
func ReportInfo(r Reporter, code Code, subject Subject, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, subject, msg)
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(subject Subject, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(subject, msg)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Subject, b.diag.Message, b.diag.Notes)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// Forward re-reports an already built diagnostic.
func Forward(r Reporter, d Diagnostic) {
	if r == nil {
		return
	}
	r.Report(d.Code, d.Severity, d.Subject, d.Message, d.Notes)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, subject Subject, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Subject: subject, Notes: notes,
	})
}
