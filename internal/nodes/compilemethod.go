package nodes

import (
	"errors"

	"naotc/internal/backend"
	"naotc/internal/depgraph"
	"naotc/internal/tsystem"
)

// compileMethodNode is the compile-mode MethodEntrypoint node: it calls
// back into f.back.CompileMethod, collecting every Request* call as a
// depgraph edge (spec §6). Compilation happens lazily, the first time
// StaticDependencies is asked for, and is memoized so a later
// ConditionalDependencies call (there are none for this node family,
// but symmetry matters) never recompiles.
// CompiledMethodNode is what a finished compile-mode MethodEntrypoint
// node exposes once the graph has marked it: the codegen pass reads
// Body/RequiresRuntimeJit off of it after ComputeMarkedNodes returns,
// by asking the same Factory for the same key again (memoized, so this
// never triggers a second CompileMethod call).
type CompiledMethodNode interface {
	Method() tsystem.MethodID
	Body() backend.CompiledBody
	RequiresRuntimeJit() bool
}

type compileMethodNode struct {
	f      *Factory
	method tsystem.MethodID

	done   bool
	edges  []depgraph.Edge
	body   backend.CompiledBody
	jitErr *backend.RequiresRuntimeJitError
}

func (f *Factory) buildCompileMethod(k MethodEntrypointKey) (depgraph.Node, error) {
	return &compileMethodNode{f: f, method: k.Method}, nil
}

func (n *compileMethodNode) Key() depgraph.NodeKey { return MethodEntrypointKey{Method: n.method} }
func (n *compileMethodNode) HasConditionalStaticDependencies() bool { return false }
func (n *compileMethodNode) HasDynamicDependencies() bool           { return false }
func (n *compileMethodNode) StaticDependenciesAreComputed() bool    { return n.done }

func (n *compileMethodNode) StaticDependencies() ([]depgraph.Edge, error) {
	if n.done {
		return n.edges, nil
	}
	n.done = true

	body, err := n.f.back.CompileMethod(n, n.f.ctx)
	var rj *backend.RequiresRuntimeJitError
	if errors.As(err, &rj) {
		// Not fatal: the method exists but cannot be precompiled (spec
		// §7 RequiresRuntimeJit). It simply contributes no edges.
		n.jitErr = rj
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n.body = body
	return n.edges, nil
}

func (n *compileMethodNode) ConditionalDependencies() ([]depgraph.ConditionalEdge, error) { return nil, nil }
func (n *compileMethodNode) SearchDynamicDependencies(depgraph.MarkedView, int) ([]depgraph.Edge, error) {
	return nil, nil
}

// Body exposes the compiled bytes to the codegen pass once marking has
// completed (the zero CompiledBody, with nil Code, if the method was
// JIT-deferred).
func (n *compileMethodNode) Body() backend.CompiledBody { return n.body }

// RequiresRuntimeJit reports whether CompileMethod declined to
// precompile this method.
func (n *compileMethodNode) RequiresRuntimeJit() bool { return n.jitErr != nil }

// --- backend.MethodNode ---

func (n *compileMethodNode) Method() tsystem.MethodID { return n.method }

func (n *compileMethodNode) RequestMethodEntrypoint(m tsystem.MethodID, reason string) {
	n.edges = append(n.edges, depgraph.Edge{Target: n.f.methodEntrypointOrExtern(m), Reason: reason})
}

func (n *compileMethodNode) RequestConstructedType(t tsystem.TypeID, reason string) {
	n.edges = append(n.edges, depgraph.Edge{Target: n.f.typeSymbolOrExtern(t, true), Reason: reason})
}

func (n *compileMethodNode) RequestNecessaryType(t tsystem.TypeID, reason string) {
	n.edges = append(n.edges, depgraph.Edge{Target: n.f.typeSymbolOrExtern(t, false), Reason: reason})
}

func (n *compileMethodNode) RequestReadyToRunHelper(helper int, target tsystem.TypeID, reason string) {
	n.edges = append(n.edges, depgraph.Edge{
		Target: ReadyToRunHelperKey{Helper: HelperID(helper), Target: target},
		Reason: reason,
	})
}

func (n *compileMethodNode) RequestStringLiteral(value string) {
	// String literals resolve to a frozen object the object writer
	// places directly; they never need a graph node of their own (spec
	// §6 lists them among CompileMethod's outputs, not its dependency
	// requests).
}

func (n *compileMethodNode) RequestFieldRVAData(field tsystem.FieldID, reason string) {
	fd := n.f.ctx.Field(field)
	n.edges = append(n.edges, depgraph.Edge{Target: n.f.typeSymbolOrExtern(fd.FieldType, false), Reason: reason})
}
