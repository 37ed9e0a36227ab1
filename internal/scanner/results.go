package scanner

import (
	"naotc/internal/depgraph"
	"naotc/internal/nodes"
	"naotc/internal/reflectmeta"
	"naotc/internal/tsystem"
)

// Results is the ScanResults output of spec §4.7.
type Results struct {
	CompiledMethods     map[tsystem.MethodID]bool
	MethodsWithMetadata map[tsystem.MethodID]bool
	InvokableMethods    map[tsystem.MethodID]bool
	TypesWithMetadata   map[tsystem.TypeID]bool
	InvokableTypes      map[tsystem.TypeID]bool

	ConstructedTypes map[tsystem.TypeID]bool

	marked map[depgraph.NodeKey]bool

	VTableLayout      *VTableLayoutInfo
	DictionaryLayout  *DictionaryLayoutInfo
	Devirtualization  *DevirtualizationInfo
	Inlining          *InliningPolicy
}

// WasTypeConstructed implements reflectmeta.CompiledSet.
func (r *Results) WasTypeConstructed(t tsystem.TypeID) bool { return r.ConstructedTypes[t] }

// WasMethodCompiled implements reflectmeta.CompiledSet.
func (r *Results) WasMethodCompiled(m tsystem.MethodID) bool { return r.CompiledMethods[m] }

// IsLive implements roots.LiveSet: a node the scanner marked is live
// for a subsequent FilteredByScan-wrapped compile root provider.
func (r *Results) IsLive(key depgraph.NodeKey) bool { return r.marked[key] }

// newResults builds an empty Results ready to be populated from a
// completed graph's marked node list.
func newResults() *Results {
	return &Results{
		CompiledMethods:     make(map[tsystem.MethodID]bool),
		MethodsWithMetadata: make(map[tsystem.MethodID]bool),
		InvokableMethods:    make(map[tsystem.MethodID]bool),
		TypesWithMetadata:   make(map[tsystem.TypeID]bool),
		InvokableTypes:      make(map[tsystem.TypeID]bool),
		ConstructedTypes:    make(map[tsystem.TypeID]bool),
		marked:              make(map[depgraph.NodeKey]bool),
	}
}

// classify walks g's marked node list, sorting keys into Results'
// per-category sets by type switch on the nodes.* key families.
func (r *Results) classify(g *depgraph.Graph, ctx *tsystem.Context, meta reflectmeta.Policy) {
	for _, key := range g.MarkedNodeList() {
		r.marked[key] = true
		switch k := key.(type) {
		case nodes.MethodEntrypointKey:
			r.CompiledMethods[k.Method] = true
			if meta != nil && meta.GetMetadataCategoryMethod(k.Method) != 0 {
				r.MethodsWithMetadata[k.Method] = true
			}
			if meta != nil && meta.HasReflectionInvokeStubForInvokableMethod(k.Method) {
				r.InvokableMethods[k.Method] = true
			}
		case nodes.ConstructedTypeKey:
			r.ConstructedTypes[k.Type] = true
			if meta != nil && meta.GetMetadataCategoryType(k.Type) != 0 {
				r.TypesWithMetadata[k.Type] = true
				r.InvokableTypes[k.Type] = true
			}
		}
	}
}
