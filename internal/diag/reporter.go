package diag

// Reporter is the minimal contract for receiving diagnostics from a
// pass. Implementations: BagReporter (collects into a Bag),
// DedupReporter and NopReporter; a fan-out MultiReporter can be
// layered by callers.
type Reporter interface {
	Report(code Code, sev Severity, at Location, msg string, notes []Note)
}

// ReportBuilder accumulates diagnostic details before emitting them.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to a Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, at Location, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, at, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, at Location, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, at, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, at Location, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, at, msg)
}

// ReportInfo is a shortcut for SevInfo diagnostics.
func ReportInfo(r Reporter, code Code, at Location, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, at, msg)
}

// WithNote appends a note to the diagnostic being built.
func (b *ReportBuilder) WithNote(at Location, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(at, msg)
	return b
}

// Emit sends the diagnostic to the underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Primary, b.diag.Message, b.diag.Notes)
	}
	b.emitted = true
}

// Diagnostic returns the accumulated diagnostic without emitting it.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter adapts a Reporter onto a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, at Location, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: at, Notes: notes})
}

// NopReporter discards every diagnostic; useful when a pass is invoked
// purely for its side effects (e.g. a scanner dry run).
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, Location, string, []Note) {}
