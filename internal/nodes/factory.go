package nodes

import (
	"fmt"
	"sync"

	"naotc/internal/backend"
	"naotc/internal/depgraph"
	"naotc/internal/modgroup"
	"naotc/internal/tsystem"
)

// Mode selects which node subtype a key maps to (spec §4.5 "Policy
// dispatch").
type Mode int

const (
	ScanMode Mode = iota
	CompileMode
)

// Findings is what a BodyAnalyzer reports about one method for the
// scanner pass — a conservative over-approximation of what the method
// might reach, standing in for real IL analysis (spec §1: bytecode
// parsing of method bodies is out of scope beyond its role as a
// dependency source; this factory only consumes whatever an analyzer
// reports, it never parses bytes itself).
type Findings struct {
	ConstructedTypes []tsystem.TypeID
	NecessaryTypes   []tsystem.TypeID
	CalledMethods    []tsystem.MethodID
	InterfaceCalls   []tsystem.MethodID // methods invoked through an interface reference
}

// BodyAnalyzer is the scan pass's cheap importer (spec §4.7).
type BodyAnalyzer interface {
	AnalyzeMethod(ctx *tsystem.Context, group modgroup.Policy, m tsystem.MethodID) (Findings, error)
}

// Factory is the Node Factory of spec §4.5. Exactly one Node exists
// per key within a Factory's lifetime (spec §4.5 invariant); scanner
// and compiler build independent Factories, so cross-pass identity is
// not required.
type Factory struct {
	ctx   *tsystem.Context
	group modgroup.Policy
	mode  Mode

	analyzer BodyAnalyzer     // ScanMode only
	back     backend.Backend  // CompileMode only

	mu    sync.Mutex
	cache map[depgraph.NodeKey]depgraph.Node
}

// NewScanFactory builds a Factory whose MethodEntrypoint nodes are
// lightweight ScannedMethodNodes driven by analyzer.
func NewScanFactory(ctx *tsystem.Context, group modgroup.Policy, analyzer BodyAnalyzer) *Factory {
	return &Factory{ctx: ctx, group: group, mode: ScanMode, analyzer: analyzer, cache: make(map[depgraph.NodeKey]depgraph.Node)}
}

// NewCompileFactory builds a Factory whose MethodEntrypoint nodes
// invoke back to produce a real (if opaque) compiled body.
func NewCompileFactory(ctx *tsystem.Context, group modgroup.Policy, back backend.Backend) *Factory {
	return &Factory{ctx: ctx, group: group, mode: CompileMode, back: back, cache: make(map[depgraph.NodeKey]depgraph.Node)}
}

// Context and Group expose the factory's collaborators to callers that
// need to build keys (root providers, oracle consumers).
func (f *Factory) Context() *tsystem.Context  { return f.ctx }
func (f *Factory) Group() modgroup.Policy     { return f.group }

// --- Accessors (spec §4.5 "named constructors for every node family") ---

func (f *Factory) MethodEntrypoint(m tsystem.MethodID) depgraph.NodeKey {
	return MethodEntrypointKey{Method: m}
}
func (f *Factory) CanonicalEntrypoint(m tsystem.MethodID) depgraph.NodeKey {
	return CanonicalEntrypointKey{Method: m}
}
func (f *Factory) ShadowConcreteMethod(m tsystem.MethodID, instCtx tsystem.TypeID) depgraph.NodeKey {
	return ShadowConcreteMethodKey{Method: m, InstantiationCtx: instCtx}
}
func (f *Factory) ConstructedTypeSymbol(t tsystem.TypeID) depgraph.NodeKey {
	return ConstructedTypeKey{Type: t}
}
func (f *Factory) NecessaryTypeSymbol(t tsystem.TypeID) depgraph.NodeKey {
	return NecessaryTypeKey{Type: t}
}
func (f *Factory) VTable(t tsystem.TypeID) depgraph.NodeKey { return VTableKey{Type: t} }
func (f *Factory) InterfaceDispatchMap(t tsystem.TypeID) depgraph.NodeKey {
	return InterfaceDispatchMapKey{Type: t}
}
func (f *Factory) ReadyToRunHelper(h HelperID, target tsystem.TypeID) depgraph.NodeKey {
	return ReadyToRunHelperKey{Helper: h, Target: target}
}
func (f *Factory) ExternMethodSymbol(m tsystem.MethodID) depgraph.NodeKey {
	return ExternMethodSymbolKey{Method: m}
}
func (f *Factory) ExternalTypeNode(t tsystem.TypeID) depgraph.NodeKey {
	return ExternalTypeKey{Type: t}
}
func (f *Factory) VirtualMethodUse(m tsystem.MethodID) depgraph.NodeKey {
	return VirtualMethodUseKey{Method: m}
}

// methodEntrypointOrExtern is the policy-aware version of
// MethodEntrypoint a dependency-resolution path should use: a method
// whose body is not in the module group resolves to an extern symbol
// instead (spec §4.2/§4.5).
func (f *Factory) methodEntrypointOrExtern(m tsystem.MethodID) depgraph.NodeKey {
	if f.group.ContainsMethodBody(m, false) {
		return f.MethodEntrypoint(m)
	}
	return f.ExternMethodSymbol(m)
}

func (f *Factory) typeSymbolOrExtern(t tsystem.TypeID, constructed bool) depgraph.NodeKey {
	if !f.group.ContainsType(t) {
		return f.ExternalTypeNode(t)
	}
	if constructed {
		return f.ConstructedTypeSymbol(t)
	}
	return f.NecessaryTypeSymbol(t)
}

// GetNode implements depgraph.Provider: memoized construction of the
// concrete Node for key.
func (f *Factory) GetNode(key depgraph.NodeKey) (depgraph.Node, error) {
	f.mu.Lock()
	if n, ok := f.cache[key]; ok {
		f.mu.Unlock()
		return n, nil
	}
	f.mu.Unlock()

	n, err := f.build(key)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	if existing, ok := f.cache[key]; ok {
		f.mu.Unlock()
		return existing, nil
	}
	f.cache[key] = n
	f.mu.Unlock()
	return n, nil
}

func (f *Factory) build(key depgraph.NodeKey) (depgraph.Node, error) {
	switch k := key.(type) {
	case MethodEntrypointKey:
		return f.buildMethodEntrypoint(k)
	case ExternMethodSymbolKey:
		return leafNode{key: k}, nil
	case ExternalTypeKey:
		return leafNode{key: k}, nil
	case CanonicalEntrypointKey:
		return f.buildMethodEntrypoint(MethodEntrypointKey{Method: k.Method})
	case ShadowConcreteMethodKey:
		return f.buildShadowConcrete(k)
	case ConstructedTypeKey:
		return f.buildConstructedType(k)
	case NecessaryTypeKey:
		return leafNode{key: k}, nil
	case VTableKey:
		return f.buildVTable(k)
	case InterfaceDispatchMapKey:
		return f.buildInterfaceDispatchMap(k)
	case ReadyToRunHelperKey:
		return leafNode{key: k}, nil
	case VirtualMethodUseKey:
		return f.buildVirtualMethodUse(k)
	case UnboxingStubKey:
		return f.buildUnboxingStub(k)
	default:
		return nil, fmt.Errorf("nodes: unknown key type %T", key)
	}
}

// leafNode is a node with no dependencies of its own — used for
// externs, NecessaryType (existence only, spec §3.3), and
// ReadyToRunHelper stand-ins.
type leafNode struct{ key depgraph.NodeKey }

func (n leafNode) Key() depgraph.NodeKey                           { return n.key }
func (n leafNode) HasConditionalStaticDependencies() bool          { return false }
func (n leafNode) HasDynamicDependencies() bool                    { return false }
func (n leafNode) StaticDependenciesAreComputed() bool              { return true }
func (n leafNode) StaticDependencies() ([]depgraph.Edge, error)     { return nil, nil }
func (n leafNode) ConditionalDependencies() ([]depgraph.ConditionalEdge, error) {
	return nil, nil
}
func (n leafNode) SearchDynamicDependencies(depgraph.MarkedView, int) ([]depgraph.Edge, error) {
	return nil, nil
}
