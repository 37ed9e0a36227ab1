package nodes

import (
	"naotc/internal/depgraph"
	"naotc/internal/tsystem"
)

// constructedTypeNode implements ConstructedType(T)'s invariant (spec
// §3.3): it always requires T's base type's ConstructedType, every
// declared interface's ConstructedType, and (for non-array,
// non-interface T) its VTable.
type constructedTypeNode struct {
	key    ConstructedTypeKey
	static []depgraph.Edge
}

func (n *constructedTypeNode) Key() depgraph.NodeKey                  { return n.key }
func (n *constructedTypeNode) HasConditionalStaticDependencies() bool { return false }
func (n *constructedTypeNode) HasDynamicDependencies() bool           { return false }
func (n *constructedTypeNode) StaticDependenciesAreComputed() bool    { return true }
func (n *constructedTypeNode) StaticDependencies() ([]depgraph.Edge, error) {
	return n.static, nil
}
func (n *constructedTypeNode) ConditionalDependencies() ([]depgraph.ConditionalEdge, error) {
	return nil, nil
}
func (n *constructedTypeNode) SearchDynamicDependencies(depgraph.MarkedView, int) ([]depgraph.Edge, error) {
	return nil, nil
}

func (f *Factory) buildConstructedType(k ConstructedTypeKey) (depgraph.Node, error) {
	n := &constructedTypeNode{key: k}
	td := f.ctx.Type(k.Type)

	if td.BaseType != tsystem.NoTypeID {
		n.static = append(n.static, depgraph.Edge{
			Target: f.typeSymbolOrExtern(td.BaseType, true), Reason: "base type",
		})
	}
	for _, iface := range td.Interfaces {
		n.static = append(n.static, depgraph.Edge{
			Target: f.typeSymbolOrExtern(iface, true), Reason: "implements interface",
		})
	}
	if !td.IsInterface && td.Kind != tsystem.KindArray {
		n.static = append(n.static, depgraph.Edge{Target: f.VTable(k.Type), Reason: "vtable"})
		if len(td.Interfaces) > 0 {
			n.static = append(n.static, depgraph.Edge{
				Target: f.InterfaceDispatchMap(k.Type), Reason: "interface dispatch map",
			})
		}
	}
	if td.Kind == tsystem.KindArray {
		n.static = append(n.static, depgraph.Edge{
			Target: f.typeSymbolOrExtern(td.ElementType, false), Reason: "array element type",
		})
	}
	return n, nil
}

// vtableNode resolves every virtual slot T's vtable layout requires to
// the concrete MethodEntrypoint that must exist for the slot target
// (spec §4.1 "vtable layout").
type vtableNode struct {
	key    VTableKey
	static []depgraph.Edge
}

func (n *vtableNode) Key() depgraph.NodeKey                  { return n.key }
func (n *vtableNode) HasConditionalStaticDependencies() bool { return false }
func (n *vtableNode) HasDynamicDependencies() bool           { return false }
func (n *vtableNode) StaticDependenciesAreComputed() bool    { return true }
func (n *vtableNode) StaticDependencies() ([]depgraph.Edge, error) { return n.static, nil }
func (n *vtableNode) ConditionalDependencies() ([]depgraph.ConditionalEdge, error) {
	return nil, nil
}
func (n *vtableNode) SearchDynamicDependencies(depgraph.MarkedView, int) ([]depgraph.Edge, error) {
	return nil, nil
}

func (f *Factory) buildVTable(k VTableKey) (depgraph.Node, error) {
	n := &vtableNode{key: k}
	for _, slot := range f.ctx.EnumAllVirtualSlots(k.Type) {
		if slot.Target == tsystem.NoMethodID {
			continue
		}
		n.static = append(n.static, depgraph.Edge{
			Target: f.methodEntrypointOrExtern(slot.Target), Reason: "virtual slot target",
		})
	}
	return n, nil
}

// interfaceDispatchMapNode resolves every interface T implements to the
// concrete method it dispatches to (the non-variant runtime dispatch
// table, spec §4.1).
type interfaceDispatchMapNode struct {
	key    InterfaceDispatchMapKey
	static []depgraph.Edge
}

func (n *interfaceDispatchMapNode) Key() depgraph.NodeKey                  { return n.key }
func (n *interfaceDispatchMapNode) HasConditionalStaticDependencies() bool { return false }
func (n *interfaceDispatchMapNode) HasDynamicDependencies() bool           { return false }
func (n *interfaceDispatchMapNode) StaticDependenciesAreComputed() bool    { return true }
func (n *interfaceDispatchMapNode) StaticDependencies() ([]depgraph.Edge, error) {
	return n.static, nil
}
func (n *interfaceDispatchMapNode) ConditionalDependencies() ([]depgraph.ConditionalEdge, error) {
	return nil, nil
}
func (n *interfaceDispatchMapNode) SearchDynamicDependencies(depgraph.MarkedView, int) ([]depgraph.Edge, error) {
	return nil, nil
}

func (f *Factory) buildInterfaceDispatchMap(k InterfaceDispatchMapKey) (depgraph.Node, error) {
	n := &interfaceDispatchMapNode{key: k}
	td := f.ctx.Type(k.Type)
	for _, iface := range td.Interfaces {
		ifaceDef := iface
		ifaceType := f.ctx.Type(iface)
		if ifaceType.Kind == tsystem.KindInstantiated {
			ifaceDef = ifaceType.GenericDef
		}
		for _, im := range f.ctx.Type(ifaceDef).Methods {
			target, err := f.ctx.ResolveInterfaceMethodToVirtualMethodOnTypeVariant(im, iface, k.Type)
			if err != nil {
				continue // abstract type, or interface re-abstracted further down the chain
			}
			n.static = append(n.static, depgraph.Edge{
				Target: f.methodEntrypointOrExtern(target), Reason: "interface method implementation",
			})
		}
	}
	return n, nil
}

// virtualMethodUseNode is VirtualMethodUseKey's node (spec §8 scenario
// S2): for every type currently known to implement the interface owning
// Method, it declares a conditional edge that fires once that type is
// constructed, resolving the call to that type's concrete override.
// Implementers discovered *after* this node's conditional edges are
// declared are still covered: the declaring call happens once a node is
// marked (spec §4.4 step 2), and ConstructedType(candidate) can only be
// marked later in the same run if candidate was already registered as
// an implementer by the time AddInterface ran during module load, which
// happens before any pass starts (spec §5).
type virtualMethodUseNode struct {
	key  VirtualMethodUseKey
	cond []depgraph.ConditionalEdge
}

func (n *virtualMethodUseNode) Key() depgraph.NodeKey                  { return n.key }
func (n *virtualMethodUseNode) HasConditionalStaticDependencies() bool { return len(n.cond) > 0 }
func (n *virtualMethodUseNode) HasDynamicDependencies() bool           { return false }
func (n *virtualMethodUseNode) StaticDependenciesAreComputed() bool    { return true }
func (n *virtualMethodUseNode) StaticDependencies() ([]depgraph.Edge, error) { return nil, nil }
func (n *virtualMethodUseNode) ConditionalDependencies() ([]depgraph.ConditionalEdge, error) {
	return n.cond, nil
}
func (n *virtualMethodUseNode) SearchDynamicDependencies(depgraph.MarkedView, int) ([]depgraph.Edge, error) {
	return nil, nil
}

func (f *Factory) buildVirtualMethodUse(k VirtualMethodUseKey) (depgraph.Node, error) {
	n := &virtualMethodUseNode{key: k}
	md := f.ctx.Method(k.Method)
	iface := md.OwningType
	for _, candidate := range f.ctx.ImplementersOf(iface) {
		target, err := f.ctx.ResolveInterfaceMethodToVirtualMethodOnType(k.Method, candidate)
		if err != nil {
			continue
		}
		n.cond = append(n.cond, depgraph.ConditionalEdge{
			Trigger: f.ConstructedTypeSymbol(candidate),
			Target:  f.methodEntrypointOrExtern(target),
			Reason:  "reachable through interface dispatch once constructed",
		})
	}
	return n, nil
}
