package reflectmeta

import (
	"naotc/internal/depgraph"
	"naotc/internal/nodes"
	"naotc/internal/tsystem"
)

// Category is a bit set of what metadata an entity carries (spec §4.6).
type Category uint8

const (
	// Description means the entity's name/signature appears in the
	// metadata blob, usable for ToString()/GetType().Name-style queries
	// but not for constructing a runtime handle.
	Description Category = 1 << iota
	// RuntimeMapping means the entity additionally gets a handle the
	// runtime can invoke/construct through (Type.GetMethod(...).Invoke).
	RuntimeMapping
)

func (c Category) Has(flag Category) bool { return c&flag != 0 }

// Policy is the Metadata Manager contract of spec §4.6.
type Policy interface {
	GetMetadataCategoryType(t tsystem.TypeID) Category
	GetMetadataCategoryMethod(m tsystem.MethodID) Category
	IsReflectionBlockedType(t tsystem.TypeID) bool
	IsReflectionBlockedMethod(m tsystem.MethodID) bool

	// GetDependenciesDueToReflectability appends, to deps, the edges
	// entity needs in order to be reflectable (its metadata blob
	// references its owning type, its field types, and so on).
	GetDependenciesDueToReflectabilityType(deps []depgraph.Edge, f *nodes.Factory, t tsystem.TypeID) []depgraph.Edge
	GetDependenciesDueToReflectabilityMethod(deps []depgraph.Edge, f *nodes.Factory, m tsystem.MethodID) []depgraph.Edge

	HasReflectionInvokeStubForInvokableMethod(m tsystem.MethodID) bool
	GetCanonicalReflectionInvokeStub(m tsystem.MethodID) tsystem.MethodID
}

// Blocking is the shared BlockedInternals test every concrete policy
// below consults before granting any category (spec §4.6 "Blocking
// policy"): synthetic (non-ECMA) entities, Array<T>'s methods, and
// anything the caller explicitly marks blocked via policy attributes
// are always excluded, regardless of which Policy is otherwise active.
type Blocking struct {
	ctx *tsystem.Context

	blockedTypes   map[tsystem.TypeID]bool
	blockedMethods map[tsystem.MethodID]bool
	arrayDef       tsystem.TypeID // NoTypeID if the host has no Array<T> type
}

// NewBlocking builds a BlockedInternals test over ctx. arrayDef may be
// tsystem.NoTypeID when the module graph under test has no array type.
func NewBlocking(ctx *tsystem.Context, arrayDef tsystem.TypeID) *Blocking {
	return &Blocking{
		ctx:            ctx,
		blockedTypes:   make(map[tsystem.TypeID]bool),
		blockedMethods: make(map[tsystem.MethodID]bool),
		arrayDef:       arrayDef,
	}
}

// BlockType records t as blocked via a policy attribute (spec §4.6
// "any type or method annotated by policy attributes").
func (b *Blocking) BlockType(t tsystem.TypeID) { b.blockedTypes[t] = true }

// BlockMethod records m as blocked via a policy attribute.
func (b *Blocking) BlockMethod(m tsystem.MethodID) { b.blockedMethods[m] = true }

func (b *Blocking) IsReflectionBlockedType(t tsystem.TypeID) bool {
	if b.blockedTypes[t] {
		return true
	}
	return t != tsystem.NoTypeID && t == b.arrayDef
}

func (b *Blocking) IsReflectionBlockedMethod(m tsystem.MethodID) bool {
	if b.blockedMethods[m] {
		return true
	}
	md := b.ctx.Method(m)
	if md.Kind == tsystem.KindSyntheticStub {
		return true
	}
	return b.arrayDef != tsystem.NoTypeID && md.OwningType == b.arrayDef
}
