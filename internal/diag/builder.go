package diag

// New constructs a Diagnostic with no notes attached.
func New(sev Severity, code Code, at Location, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  at,
		Message:  msg,
	}
}

// NewError is a shortcut for New(SevError, ...).
func NewError(code Code, at Location, msg string) Diagnostic {
	return New(SevError, code, at, msg)
}
