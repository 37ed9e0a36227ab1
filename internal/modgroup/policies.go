package modgroup

import "naotc/internal/tsystem"

// SingleFile is the policy for a self-contained compilation: every
// loaded module is local and inlinable, and there is no version
// bubble boundary to speak of (spec §4.2).
type SingleFile struct {
	set memberSet
}

// NewSingleFile builds a SingleFile policy over every module currently
// registered in ctx plus a dedicated generated-stub module.
func NewSingleFile(ctx *tsystem.Context, modules []tsystem.ModuleID, generated tsystem.ModuleID) *SingleFile {
	local := make(map[tsystem.ModuleID]bool, len(modules)+1)
	for _, m := range modules {
		local[m] = true
	}
	local[generated] = true
	return &SingleFile{set: memberSet{ctx: ctx, local: local, bubble: local, generatedMod: generated}}
}

func (p *SingleFile) ContainsType(t tsystem.TypeID) bool             { return p.set.containsType(t) }
func (p *SingleFile) ContainsMethodBody(m tsystem.MethodID, _ bool) bool { return p.set.containsMethodBody(m) }
func (p *SingleFile) VersionsWithMethodBody(m tsystem.MethodID) bool  { return p.set.versionsWithMethodBody(m) }
func (p *SingleFile) GeneratedAssembly() tsystem.ModuleID             { return p.set.generatedMod }

// ReadyToRunSingleAssembly compiles exactly one input module ahead of
// time, treating a caller-supplied set of reference modules as a
// version bubble it may inline into, and everything else as external
// (spec §4.2).
type ReadyToRunSingleAssembly struct {
	set    memberSet
	inputMod tsystem.ModuleID
}

// NewReadyToRunSingleAssembly builds the policy: input is the sole
// locally-compiled module, bubble additionally allows inlining across
// the listed reference modules, generated is the synthetic stub module.
func NewReadyToRunSingleAssembly(ctx *tsystem.Context, input tsystem.ModuleID, bubble []tsystem.ModuleID, generated tsystem.ModuleID) *ReadyToRunSingleAssembly {
	local := map[tsystem.ModuleID]bool{input: true, generated: true}
	bubbleSet := map[tsystem.ModuleID]bool{input: true, generated: true}
	for _, m := range bubble {
		bubbleSet[m] = true
	}
	return &ReadyToRunSingleAssembly{
		set:      memberSet{ctx: ctx, local: local, bubble: bubbleSet, generatedMod: generated},
		inputMod: input,
	}
}

func (p *ReadyToRunSingleAssembly) ContainsType(t tsystem.TypeID) bool { return p.set.containsType(t) }
func (p *ReadyToRunSingleAssembly) ContainsMethodBody(m tsystem.MethodID, unboxingStub bool) bool {
	if unboxingStub {
		// Unboxing stubs for value-type instance methods are always
		// synthesized locally regardless of where the real body lives
		// (spec §4.5).
		return true
	}
	return p.set.containsMethodBody(m)
}
func (p *ReadyToRunSingleAssembly) VersionsWithMethodBody(m tsystem.MethodID) bool {
	return p.set.versionsWithMethodBody(m)
}
func (p *ReadyToRunSingleAssembly) GeneratedAssembly() tsystem.ModuleID { return p.set.generatedMod }

// External treats every entity as belonging to some other compilation;
// used for reference-only modules that contribute type information but
// contribute no bodies to this run (spec §4.2).
type External struct {
	generatedMod tsystem.ModuleID
}

// NewExternal builds an External policy; generated still needs a home
// module ID even though nothing else is ever considered local.
func NewExternal(generated tsystem.ModuleID) *External { return &External{generatedMod: generated} }

func (p *External) ContainsType(tsystem.TypeID) bool                        { return false }
func (p *External) ContainsMethodBody(tsystem.MethodID, bool) bool          { return false }
func (p *External) VersionsWithMethodBody(tsystem.MethodID) bool            { return false }
func (p *External) GeneratedAssembly() tsystem.ModuleID                     { return p.generatedMod }
