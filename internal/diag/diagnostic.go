package diag

// Location pinpoints the entity a diagnostic concerns. There is no
// source span to point at — the input is bytecode metadata, not text —
// so a Location names the owning module and, optionally, the member
// inside it (a type, method, or field's fully qualified name).
type Location struct {
	Module string // defining module's simple name, "" if unknown
	Entity string // e.g. "System.Collections.Generic.List`1.Add"
}

func (l Location) String() string {
	switch {
	case l.Module == "" && l.Entity == "":
		return "<unknown>"
	case l.Entity == "":
		return l.Module
	case l.Module == "":
		return l.Entity
	default:
		return l.Module + "!" + l.Entity
	}
}

// Note is secondary context attached to a Diagnostic, e.g. pointing at
// the predecessor in a dependency chain that led to the failure.
type Note struct {
	At  Location
	Msg string
}

// Diagnostic is a single finding raised by the type system, the graph
// engine, or a pass.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Location
	Notes    []Note
}

func (d Diagnostic) WithNote(at Location, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{At: at, Msg: msg})
	return d
}
