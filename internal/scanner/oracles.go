package scanner

import (
	"naotc/internal/nodes"
	"naotc/internal/tsystem"
)

// VTableLayoutInfo is the first oracle of spec §4.7: for each live
// local type, the exact ordered list of vtable slots the scanner saw
// used. Types outside local scope fall back to lazy/default layout
// (EnumAllVirtualSlots computed on demand rather than cached here).
type VTableLayoutInfo struct {
	ctx    *tsystem.Context
	layout map[tsystem.TypeID][]tsystem.VirtualSlot
}

// SlotsFor returns the scanner-observed slot layout for t, or the full
// default layout if t was never seen as a live VTable node (a
// conservative fallback: anything not scanned still gets a correct,
// just non-minimized, layout).
func (o *VTableLayoutInfo) SlotsFor(t tsystem.TypeID) []tsystem.VirtualSlot {
	if slots, ok := o.layout[t]; ok {
		return slots
	}
	return o.ctx.EnumAllVirtualSlots(t)
}

// DictionaryLayoutInfo is the second oracle: per generic context (a
// ShadowConcreteMethod or a generic-type instantiation), the ordered
// set of dictionary entries actually requested during scanning.
type DictionaryLayoutInfo struct {
	entries map[dictKey][]tsystem.TypeID
}

type dictKey struct {
	method tsystem.MethodID
	owner  tsystem.TypeID
}

// EntriesFor returns the ordered dictionary slots recorded for the
// (method, instantiationContext) generic context, nil if never used.
func (o *DictionaryLayoutInfo) EntriesFor(method tsystem.MethodID, owner tsystem.TypeID) []tsystem.TypeID {
	return o.entries[dictKey{method: method, owner: owner}]
}

// DevirtualizationInfo is the third oracle: the set of types that were
// observed as the base of some constructed type. Anything else is
// effectively sealed, unless it is abstract — an abstract type can
// never be the runtime type of an instance, so "no subtype was seen"
// says nothing about whether a virtual call through it is safe to
// devirtualise (spec §8 S3).
type DevirtualizationInfo struct {
	ctx               *tsystem.Context
	baseOfConstructed map[tsystem.TypeID]bool
}

// IsEffectivelySealed reports whether t was never seen as another
// constructed type's base — such a type's virtual calls may be
// devirtualised, unless t is itself abstract.
func (o *DevirtualizationInfo) IsEffectivelySealed(t tsystem.TypeID) bool {
	return !o.baseOfConstructed[t] && !o.ctx.Type(t).IsAbstract
}

// InliningPolicy is the fourth oracle: a call is inlineable iff the
// callee's owning type was constructed, or the callee is static or
// declared on a value type (spec §4.7).
type InliningPolicy struct {
	ctx              *tsystem.Context
	constructedTypes map[tsystem.TypeID]bool
}

// CanInline reports whether a call to callee may be inlined given what
// the scan observed.
func (o *InliningPolicy) CanInline(callee tsystem.MethodID) bool {
	md := o.ctx.Method(callee)
	if md.IsStatic {
		return true
	}
	owner := o.ctx.Type(md.OwningType)
	if owner.IsValueType {
		return true
	}
	return o.constructedTypes[md.OwningType]
}

// buildOracles derives all four oracles from a completed graph's marked
// node list plus the compile-mode-agnostic dictionary requests
// findings.CalledMethods/ConstructedTypes surfaced along the way (spec
// §4.7). The dictionary oracle is populated from ShadowConcreteMethod
// keys, whose associated instantiation context stands in for the
// generic dictionary the runtime would build for that context.
func buildOracles(ctx *tsystem.Context, r *Results) {
	vt := &VTableLayoutInfo{ctx: ctx, layout: make(map[tsystem.TypeID][]tsystem.VirtualSlot)}
	dl := &DictionaryLayoutInfo{entries: make(map[dictKey][]tsystem.TypeID)}
	dv := &DevirtualizationInfo{ctx: ctx, baseOfConstructed: make(map[tsystem.TypeID]bool)}
	ip := &InliningPolicy{ctx: ctx, constructedTypes: r.ConstructedTypes}

	for key := range r.marked {
		switch k := key.(type) {
		case nodes.VTableKey:
			vt.layout[k.Type] = ctx.EnumAllVirtualSlots(k.Type)
		case nodes.ShadowConcreteMethodKey:
			// The dictionary entries a shadow-concrete node needs are
			// exactly InstantiationCtx's generic arguments, in
			// declaration order — the same list buildShadowConcrete
			// (internal/nodes/scanmethod.go) already turned into static
			// dependency edges, so this oracle only reflects, rather
			// than recomputes, what got marked live.
			dl.entries[dictKey{method: k.Method, owner: k.InstantiationCtx}] = ctx.Type(k.InstantiationCtx).Instantiation
		}
	}
	for t := range r.ConstructedTypes {
		base := ctx.Type(t).BaseType
		if base != tsystem.NoTypeID {
			dv.baseOfConstructed[base] = true
		}
	}

	r.VTableLayout = vt
	r.DictionaryLayout = dl
	r.Devirtualization = dv
	r.Inlining = ip
}
