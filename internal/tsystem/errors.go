package tsystem

import "fmt"

// Kind enumerates the TypeSystemException subkinds from spec §4.1/§7.
// Callers treat these as local failures for the one entity involved;
// only the compiler pass's ScannerFailed (diag package, not here) is
// fatal to the whole run.
type Kind uint8

const (
	BadImageFormat Kind = iota + 1
	TypeLoad
	MissingField
	MissingMethod
	InvalidProgram
)

func (k Kind) String() string {
	switch k {
	case BadImageFormat:
		return "BadImageFormat"
	case TypeLoad:
		return "TypeLoad"
	case MissingField:
		return "MissingField"
	case MissingMethod:
		return "MissingMethod"
	case InvalidProgram:
		return "InvalidProgram"
	default:
		return "Unknown"
	}
}

// Error is the one error type every algebra operation can fail with.
// It wraps an optional underlying cause (e.g. a pereader.ErrBadImageFormat)
// so callers can still errors.As/errors.Unwrap through to it.
type Error struct {
	Kind   Kind
	Entity string // fully qualified name of the affected entity, if known
	Msg    string
	Cause  error
}

func (e *Error) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError constructs a *Error. Cause may be nil.
func NewError(kind Kind, entity, msg string, cause error) *Error {
	return &Error{Kind: kind, Entity: entity, Msg: msg, Cause: cause}
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var te *Error
	for err != nil {
		if e, ok := err.(*Error); ok {
			te = e
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return te != nil && te.Kind == kind
}
