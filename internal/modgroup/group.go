package modgroup

import "naotc/internal/tsystem"

// Policy is the ModuleGroup contract of spec §4.2. It is the sole
// source of truth for "is this local?" — no other component may
// second-guess it.
type Policy interface {
	// ContainsType reports whether t's defining module is inside this
	// compilation's group.
	ContainsType(t tsystem.TypeID) bool
	// ContainsMethodBody reports whether m's body is compiled locally.
	// unboxingStub distinguishes the unboxing thunk of a value-type
	// instance method, which may be local even when m's real body is
	// not (spec §4.5 unboxing stub routing).
	ContainsMethodBody(m tsystem.MethodID, unboxingStub bool) bool
	// VersionsWithMethodBody is the stronger membership test: true only
	// when the caller may inline across the boundary into m's body.
	VersionsWithMethodBody(m tsystem.MethodID) bool
	// GeneratedAssembly names the synthetic module that owns generated
	// stubs (unboxing thunks, canonical shims) for this compilation.
	GeneratedAssembly() tsystem.ModuleID
}

// memberSet is the shared membership test every concrete policy below
// builds on: the ModuleIDs compiled locally, used by ContainsType and
// ContainsMethodBody, and the ModuleIDs whose method bodies may be
// inlined across, used by VersionsWithMethodBody. The second set holds
// every local module and, under ReadyToRunSingleAssembly, the
// version-bubble modules as well.
type memberSet struct {
	ctx           *tsystem.Context
	local         map[tsystem.ModuleID]bool // compiled locally, bodies available
	bubble        map[tsystem.ModuleID]bool // may be inlined across (local plus any bubble modules)
	generatedMod  tsystem.ModuleID
}

func (s *memberSet) owningModule(t tsystem.TypeID) tsystem.ModuleID {
	td := s.ctx.Type(t)
	if td.Kind == tsystem.KindInstantiated {
		return s.ctx.Type(td.GenericDef).Module
	}
	return td.Module
}

func (s *memberSet) containsType(t tsystem.TypeID) bool {
	return s.local[s.owningModule(t)]
}

func (s *memberSet) containsMethodBody(m tsystem.MethodID) bool {
	md := s.ctx.Method(m)
	return s.containsType(md.OwningType)
}

func (s *memberSet) versionsWithMethodBody(m tsystem.MethodID) bool {
	md := s.ctx.Method(m)
	return s.bubble[s.owningModule(md.OwningType)]
}
