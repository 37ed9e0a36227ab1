package nodes

import (
	"naotc/internal/depgraph"
	"naotc/internal/tsystem"
)

// scannedMethodNode is the scan-mode MethodEntrypoint node: its
// dependencies come from f.analyzer.AnalyzeMethod rather than from real
// codegen, per spec §4.7.
type scannedMethodNode struct {
	f      *Factory
	method tsystem.MethodID
	static []depgraph.Edge
	cond   []depgraph.ConditionalEdge
}

func (n *scannedMethodNode) Key() depgraph.NodeKey { return MethodEntrypointKey{Method: n.method} }
func (n *scannedMethodNode) HasConditionalStaticDependencies() bool { return len(n.cond) > 0 }
func (n *scannedMethodNode) HasDynamicDependencies() bool           { return false }
func (n *scannedMethodNode) StaticDependenciesAreComputed() bool    { return true }
func (n *scannedMethodNode) StaticDependencies() ([]depgraph.Edge, error) {
	return n.static, nil
}
func (n *scannedMethodNode) ConditionalDependencies() ([]depgraph.ConditionalEdge, error) {
	return n.cond, nil
}
func (n *scannedMethodNode) SearchDynamicDependencies(depgraph.MarkedView, int) ([]depgraph.Edge, error) {
	return nil, nil
}

func (f *Factory) buildMethodEntrypoint(k MethodEntrypointKey) (depgraph.Node, error) {
	md := f.ctx.Method(k.Method)

	// A method whose canonical body is shared across instantiations
	// routes through its CanonicalEntrypoint (spec §3.3): the real
	// dependency work happens once, on the shared node, and every
	// instantiation's MethodEntrypoint simply requires it plus its own
	// ShadowConcreteMethod bookkeeping.
	if md.IsCanonicalMethod && k.Method != md.GenericDef && md.GenericDef != tsystem.NoMethodID {
		return &sharedBodyNode{
			key:    k,
			target: CanonicalEntrypointKey{Method: md.GenericDef},
			owner:  md.OwningType,
		}, nil
	}

	switch f.mode {
	case ScanMode:
		return f.buildScannedMethod(k)
	case CompileMode:
		return f.buildCompileMethod(k)
	default:
		return leafNode{key: k}, nil
	}
}

func (f *Factory) buildScannedMethod(k MethodEntrypointKey) (depgraph.Node, error) {
	n := &scannedMethodNode{f: f, method: k.Method}
	if f.analyzer == nil {
		return n, nil
	}
	findings, err := f.analyzer.AnalyzeMethod(f.ctx, f.group, k.Method)
	if err != nil {
		return nil, err
	}
	for _, t := range findings.ConstructedTypes {
		n.static = append(n.static, depgraph.Edge{Target: f.typeSymbolOrExtern(t, true), Reason: "constructs"})
	}
	for _, t := range findings.NecessaryTypes {
		n.static = append(n.static, depgraph.Edge{Target: f.typeSymbolOrExtern(t, false), Reason: "references type"})
	}
	for _, m := range findings.CalledMethods {
		n.static = append(n.static, depgraph.Edge{Target: f.methodEntrypointOrExtern(m), Reason: "calls"})
	}
	for _, m := range findings.InterfaceCalls {
		n.static = append(n.static, depgraph.Edge{Target: f.VirtualMethodUse(m), Reason: "calls through interface"})
	}
	return n, nil
}

// sharedBodyNode links an instantiation's MethodEntrypoint to the
// canonical shared body plus the instantiation-specific shadow record
// (spec §3.3 "(Method, ConcreteOwningType)").
type sharedBodyNode struct {
	key    depgraph.NodeKey
	target depgraph.NodeKey
	owner  tsystem.TypeID
}

func (n *sharedBodyNode) Key() depgraph.NodeKey                        { return n.key }
func (n *sharedBodyNode) HasConditionalStaticDependencies() bool       { return false }
func (n *sharedBodyNode) HasDynamicDependencies() bool                 { return false }
func (n *sharedBodyNode) StaticDependenciesAreComputed() bool          { return true }
func (n *sharedBodyNode) StaticDependencies() ([]depgraph.Edge, error) {
	mk, ok := n.key.(MethodEntrypointKey)
	if !ok {
		return []depgraph.Edge{{Target: n.target, Reason: "shares canonical body"}}, nil
	}
	return []depgraph.Edge{
		{Target: n.target, Reason: "shares canonical body"},
		{Target: ShadowConcreteMethodKey{Method: mk.Method, InstantiationCtx: n.owner}, Reason: "per-instantiation dictionary"},
	}, nil
}
func (n *sharedBodyNode) ConditionalDependencies() ([]depgraph.ConditionalEdge, error) { return nil, nil }
func (n *sharedBodyNode) SearchDynamicDependencies(depgraph.MarkedView, int) ([]depgraph.Edge, error) {
	return nil, nil
}

// shadowConcreteNode is ShadowConcreteMethod(Method, InstantiationCtx)'s
// node (spec §9 "Generic instantiation storage"): it owns no code, but
// its static dependencies are the dictionary entries — one per generic
// argument of InstantiationCtx — that the canonical body needs looked
// up in this context.
type shadowConcreteNode struct {
	key    ShadowConcreteMethodKey
	static []depgraph.Edge
}

func (n *shadowConcreteNode) Key() depgraph.NodeKey                  { return n.key }
func (n *shadowConcreteNode) HasConditionalStaticDependencies() bool { return false }
func (n *shadowConcreteNode) HasDynamicDependencies() bool           { return false }
func (n *shadowConcreteNode) StaticDependenciesAreComputed() bool    { return true }
func (n *shadowConcreteNode) StaticDependencies() ([]depgraph.Edge, error) {
	return n.static, nil
}
func (n *shadowConcreteNode) ConditionalDependencies() ([]depgraph.ConditionalEdge, error) {
	return nil, nil
}
func (n *shadowConcreteNode) SearchDynamicDependencies(depgraph.MarkedView, int) ([]depgraph.Edge, error) {
	return nil, nil
}

func (f *Factory) buildShadowConcrete(k ShadowConcreteMethodKey) (depgraph.Node, error) {
	n := &shadowConcreteNode{key: k}
	for _, arg := range f.ctx.Type(k.InstantiationCtx).Instantiation {
		n.static = append(n.static, depgraph.Edge{
			Target: f.typeSymbolOrExtern(arg, false), Reason: "dictionary entry (generic argument)",
		})
	}
	return n, nil
}

func (f *Factory) buildUnboxingStub(k UnboxingStubKey) (depgraph.Node, error) {
	return &unboxingStubNode{key: k, method: k.Method}, nil
}

type unboxingStubNode struct {
	key    depgraph.NodeKey
	method tsystem.MethodID
}

func (n *unboxingStubNode) Key() depgraph.NodeKey                  { return n.key }
func (n *unboxingStubNode) HasConditionalStaticDependencies() bool { return false }
func (n *unboxingStubNode) HasDynamicDependencies() bool           { return false }
func (n *unboxingStubNode) StaticDependenciesAreComputed() bool    { return true }
func (n *unboxingStubNode) StaticDependencies() ([]depgraph.Edge, error) {
	return []depgraph.Edge{{Target: MethodEntrypointKey{Method: n.method}, Reason: "unboxes then calls real body"}}, nil
}
func (n *unboxingStubNode) ConditionalDependencies() ([]depgraph.ConditionalEdge, error) { return nil, nil }
func (n *unboxingStubNode) SearchDynamicDependencies(depgraph.MarkedView, int) ([]depgraph.Edge, error) {
	return nil, nil
}
