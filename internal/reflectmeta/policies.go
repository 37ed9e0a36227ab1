package reflectmeta

import (
	"naotc/internal/depgraph"
	"naotc/internal/nodes"
	"naotc/internal/tsystem"
)

func reflectDeps(f *nodes.Factory, ctx *tsystem.Context, t tsystem.TypeID) []depgraph.Edge {
	var deps []depgraph.Edge
	td := ctx.Type(t)
	if td.BaseType != tsystem.NoTypeID {
		deps = append(deps, depgraph.Edge{Target: f.NecessaryTypeSymbol(td.BaseType), Reason: "reflection: base type"})
	}
	for _, fld := range td.Fields {
		fd := ctx.Field(fld)
		deps = append(deps, depgraph.Edge{Target: f.NecessaryTypeSymbol(fd.FieldType), Reason: "reflection: field type"})
	}
	return deps
}

// Empty is the "no reflection metadata at all" policy (spec §4.6).
type Empty struct{}

func (Empty) GetMetadataCategoryType(tsystem.TypeID) Category     { return 0 }
func (Empty) GetMetadataCategoryMethod(tsystem.MethodID) Category { return 0 }
func (Empty) IsReflectionBlockedType(tsystem.TypeID) bool          { return true }
func (Empty) IsReflectionBlockedMethod(tsystem.MethodID) bool      { return true }
func (Empty) GetDependenciesDueToReflectabilityType(deps []depgraph.Edge, _ *nodes.Factory, _ tsystem.TypeID) []depgraph.Edge {
	return deps
}
func (Empty) GetDependenciesDueToReflectabilityMethod(deps []depgraph.Edge, _ *nodes.Factory, _ tsystem.MethodID) []depgraph.Edge {
	return deps
}
func (Empty) HasReflectionInvokeStubForInvokableMethod(tsystem.MethodID) bool { return false }
func (Empty) GetCanonicalReflectionInvokeStub(tsystem.MethodID) tsystem.MethodID {
	return tsystem.NoMethodID
}

// CompilerGenerated grants full reflection to an explicitly enumerated
// set of types/methods only — the policy a driver uses when a
// [DynamicDependency]-style attribute names exactly what must stay
// reflectable (spec §4.6).
type CompilerGenerated struct {
	*Blocking
	ctx     *tsystem.Context
	types   map[tsystem.TypeID]bool
	methods map[tsystem.MethodID]bool
}

// NewCompilerGenerated builds the policy over an explicit allow-list.
func NewCompilerGenerated(ctx *tsystem.Context, blocking *Blocking, types []tsystem.TypeID, methods []tsystem.MethodID) *CompilerGenerated {
	p := &CompilerGenerated{Blocking: blocking, ctx: ctx, types: make(map[tsystem.TypeID]bool), methods: make(map[tsystem.MethodID]bool)}
	for _, t := range types {
		p.types[t] = true
	}
	for _, m := range methods {
		p.methods[m] = true
	}
	return p
}

func (p *CompilerGenerated) GetMetadataCategoryType(t tsystem.TypeID) Category {
	if p.IsReflectionBlockedType(t) || !p.types[t] {
		return 0
	}
	return Description | RuntimeMapping
}

func (p *CompilerGenerated) GetMetadataCategoryMethod(m tsystem.MethodID) Category {
	if p.IsReflectionBlockedMethod(m) || !p.methods[m] {
		return 0
	}
	return Description | RuntimeMapping
}

func (p *CompilerGenerated) GetDependenciesDueToReflectabilityType(deps []depgraph.Edge, f *nodes.Factory, t tsystem.TypeID) []depgraph.Edge {
	if p.GetMetadataCategoryType(t) == 0 {
		return deps
	}
	return append(deps, reflectDeps(f, p.ctx, t)...)
}

func (p *CompilerGenerated) GetDependenciesDueToReflectabilityMethod(deps []depgraph.Edge, f *nodes.Factory, m tsystem.MethodID) []depgraph.Edge {
	if p.GetMetadataCategoryMethod(m) == 0 {
		return deps
	}
	md := p.ctx.Method(m)
	return append(deps, depgraph.Edge{Target: f.NecessaryTypeSymbol(md.OwningType), Reason: "reflection: owning type"})
}

func (p *CompilerGenerated) HasReflectionInvokeStubForInvokableMethod(m tsystem.MethodID) bool {
	return p.GetMetadataCategoryMethod(m).Has(RuntimeMapping)
}

func (p *CompilerGenerated) GetCanonicalReflectionInvokeStub(m tsystem.MethodID) tsystem.MethodID {
	if !p.HasReflectionInvokeStubForInvokableMethod(m) {
		return tsystem.NoMethodID
	}
	return m
}

// UsageBased grants Description+RuntimeMapping to everything the
// scanner actually saw compiled, unless blocked (spec §4.6) — the
// default "whatever you use, you can reflect on" policy.
type UsageBased struct {
	*Blocking
	ctx      *tsystem.Context
	compiled CompiledSet
}

// CompiledSet is the minimal view of scan results this policy needs:
// "was this entity part of the compiled/constructed closure."
type CompiledSet interface {
	WasTypeConstructed(t tsystem.TypeID) bool
	WasMethodCompiled(m tsystem.MethodID) bool
}

// NewUsageBased builds the policy over a completed (or in-progress)
// scan's compiled set.
func NewUsageBased(ctx *tsystem.Context, blocking *Blocking, compiled CompiledSet) *UsageBased {
	return &UsageBased{Blocking: blocking, ctx: ctx, compiled: compiled}
}

func (p *UsageBased) GetMetadataCategoryType(t tsystem.TypeID) Category {
	if p.IsReflectionBlockedType(t) || !p.compiled.WasTypeConstructed(t) {
		return 0
	}
	return Description | RuntimeMapping
}

func (p *UsageBased) GetMetadataCategoryMethod(m tsystem.MethodID) Category {
	if p.IsReflectionBlockedMethod(m) || !p.compiled.WasMethodCompiled(m) {
		return 0
	}
	return Description | RuntimeMapping
}

func (p *UsageBased) GetDependenciesDueToReflectabilityType(deps []depgraph.Edge, f *nodes.Factory, t tsystem.TypeID) []depgraph.Edge {
	if p.GetMetadataCategoryType(t) == 0 {
		return deps
	}
	return append(deps, reflectDeps(f, p.ctx, t)...)
}

func (p *UsageBased) GetDependenciesDueToReflectabilityMethod(deps []depgraph.Edge, f *nodes.Factory, m tsystem.MethodID) []depgraph.Edge {
	if p.GetMetadataCategoryMethod(m) == 0 {
		return deps
	}
	md := p.ctx.Method(m)
	return append(deps, depgraph.Edge{Target: f.NecessaryTypeSymbol(md.OwningType), Reason: "reflection: owning type"})
}

func (p *UsageBased) HasReflectionInvokeStubForInvokableMethod(m tsystem.MethodID) bool {
	return p.GetMetadataCategoryMethod(m).Has(RuntimeMapping)
}

func (p *UsageBased) GetCanonicalReflectionInvokeStub(m tsystem.MethodID) tsystem.MethodID {
	if !p.HasReflectionInvokeStubForInvokableMethod(m) {
		return tsystem.NoMethodID
	}
	return m
}

// Scanner is the two-phase policy (spec §4.6): during the scan pass it
// only *records* that an entity is reflectable (so the corresponding
// ReflectabilityUse edges can be threaded through the scan graph) and
// defers the real blob/category decision to a second, UsageBased-style
// pass once scanning is complete.
type Scanner struct {
	*Blocking
	ctx    *tsystem.Context
	marked map[tsystem.TypeID]bool
	markedM map[tsystem.MethodID]bool
}

// NewScanner builds the deferred policy.
func NewScanner(ctx *tsystem.Context, blocking *Blocking) *Scanner {
	return &Scanner{Blocking: blocking, ctx: ctx, marked: make(map[tsystem.TypeID]bool), markedM: make(map[tsystem.MethodID]bool)}
}

// MarkTypeReflectable and MarkMethodReflectable record that t/m was observed needing reflection
// during scanning, without yet committing to a Category.
func (p *Scanner) MarkTypeReflectable(t tsystem.TypeID)     { p.marked[t] = true }
func (p *Scanner) MarkMethodReflectable(m tsystem.MethodID) { p.markedM[m] = true }

func (p *Scanner) GetMetadataCategoryType(t tsystem.TypeID) Category {
	if p.IsReflectionBlockedType(t) || !p.marked[t] {
		return 0
	}
	return Description
}

func (p *Scanner) GetMetadataCategoryMethod(m tsystem.MethodID) Category {
	if p.IsReflectionBlockedMethod(m) || !p.markedM[m] {
		return 0
	}
	return Description
}

func (p *Scanner) GetDependenciesDueToReflectabilityType(deps []depgraph.Edge, f *nodes.Factory, t tsystem.TypeID) []depgraph.Edge {
	if p.GetMetadataCategoryType(t) == 0 {
		return deps
	}
	return append(deps, reflectDeps(f, p.ctx, t)...)
}

func (p *Scanner) GetDependenciesDueToReflectabilityMethod(deps []depgraph.Edge, f *nodes.Factory, m tsystem.MethodID) []depgraph.Edge {
	if p.GetMetadataCategoryMethod(m) == 0 {
		return deps
	}
	md := p.ctx.Method(m)
	return append(deps, depgraph.Edge{Target: f.NecessaryTypeSymbol(md.OwningType), Reason: "reflection: owning type"})
}

func (p *Scanner) HasReflectionInvokeStubForInvokableMethod(tsystem.MethodID) bool { return false }
func (p *Scanner) GetCanonicalReflectionInvokeStub(tsystem.MethodID) tsystem.MethodID {
	return tsystem.NoMethodID
}
