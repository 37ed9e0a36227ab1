package nodes

import (
	"testing"

	"naotc/internal/backend"
	"naotc/internal/depgraph"
	"naotc/internal/modgroup"
	"naotc/internal/tsystem"
)

func buildSimpleHierarchy(t *testing.T) (*tsystem.Context, *modgroup.SingleFile, tsystem.TypeID, tsystem.TypeID, tsystem.MethodID, tsystem.MethodID) {
	t.Helper()
	ctx := tsystem.NewContext()
	mb := ctx.AddModule("app", nil)

	object := mb.DefType("System", "Object", tsystem.NoTypeID, false, false, false, 0)
	iface := mb.DefType("App", "IGreeter", tsystem.NoTypeID, false, true, true, 0)
	greet := mb.AddMethod(iface, "Greet", tsystem.Signature{}, false, true, true, false, tsystem.NoMethodID)

	impl := mb.DefType("App", "Greeter", object, false, false, false, 0)
	mb.AddInterface(impl, iface)
	implGreet := mb.AddMethod(impl, "Greet", tsystem.Signature{}, false, true, false, false, greet)

	group := modgroup.NewSingleFile(ctx, []tsystem.ModuleID{mb.Module().ID}, mb.Module().ID)
	return ctx, group, iface, impl, greet, implGreet
}

func TestVirtualMethodUseConditionallyReachesImplementer(t *testing.T) {
	ctx, group, _, impl, greet, implGreet := buildSimpleHierarchy(t)
	f := NewScanFactory(ctx, group, nil)

	g := depgraph.NewGraph(f, nil, nil, depgraph.TrackNone)
	g.AddRoot(f.VirtualMethodUse(greet), "test root")
	if err := g.ComputeMarkedNodes(); err != nil {
		t.Fatalf("ComputeMarkedNodes: %v", err)
	}
	if g.IsMarked(f.MethodEntrypoint(implGreet)) {
		t.Fatalf("implementer's method should not be reachable before its type is constructed")
	}

	g.AddRoot(f.ConstructedTypeSymbol(impl), "test root")
	if err := g.ComputeMarkedNodes(); err != nil {
		t.Fatalf("ComputeMarkedNodes: %v", err)
	}
	if !g.IsMarked(f.MethodEntrypoint(implGreet)) {
		t.Fatalf("expected implementer's Greet override to be marked once Greeter is constructed")
	}
}

func TestConstructedTypeRequiresBaseVTableAndInterfaces(t *testing.T) {
	ctx, group, iface, impl, _, implGreet := buildSimpleHierarchy(t)
	f := NewScanFactory(ctx, group, nil)

	g := depgraph.NewGraph(f, nil, nil, depgraph.TrackNone)
	g.AddRoot(f.ConstructedTypeSymbol(impl), "test root")
	if err := g.ComputeMarkedNodes(); err != nil {
		t.Fatalf("ComputeMarkedNodes: %v", err)
	}

	if !g.IsMarked(f.VTable(impl)) {
		t.Fatalf("expected VTable(impl) to be marked")
	}
	if !g.IsMarked(f.InterfaceDispatchMap(impl)) {
		t.Fatalf("expected InterfaceDispatchMap(impl) to be marked")
	}
	if !g.IsMarked(f.ConstructedTypeSymbol(iface)) {
		t.Fatalf("expected interface's ConstructedType to be marked")
	}
	if !g.IsMarked(f.MethodEntrypoint(implGreet)) {
		t.Fatalf("expected Greeter.Greet to be marked via the vtable slot")
	}
}

type recordingAnalyzer struct {
	calls tsystem.MethodID
}

func (a *recordingAnalyzer) AnalyzeMethod(ctx *tsystem.Context, group modgroup.Policy, m tsystem.MethodID) (Findings, error) {
	return Findings{CalledMethods: []tsystem.MethodID{a.calls}}, nil
}

func TestScanModeDelegatesToAnalyzer(t *testing.T) {
	ctx, group, _, _, greet, _ := buildSimpleHierarchy(t)
	mb := ctx.AddModule("caller", nil)
	caller := mb.AddMethod(mb.DefType("App", "Caller", tsystem.NoTypeID, false, false, false, 0),
		"Run", tsystem.Signature{}, true, false, false, false, tsystem.NoMethodID)

	f := NewScanFactory(ctx, group, &recordingAnalyzer{calls: greet})
	g := depgraph.NewGraph(f, nil, nil, depgraph.TrackNone)
	g.AddRoot(f.MethodEntrypoint(caller), "test root")
	if err := g.ComputeMarkedNodes(); err != nil {
		t.Fatalf("ComputeMarkedNodes: %v", err)
	}
	if !g.IsMarked(f.MethodEntrypoint(greet)) {
		t.Fatalf("expected analyzer-reported call to be a static dependency")
	}
}

type stubBackend struct{}

func (stubBackend) CompileMethod(node backend.MethodNode, ctx *tsystem.Context) (backend.CompiledBody, error) {
	node.RequestMethodEntrypoint(node.Method(), "self-recursive test edge")
	return backend.CompiledBody{Code: []byte{0x90}}, nil
}

func TestCompileModeCollectsBackendRequests(t *testing.T) {
	ctx, group, _, _, greet, _ := buildSimpleHierarchy(t)
	f := NewCompileFactory(ctx, group, stubBackend{})

	n, err := f.GetNode(f.MethodEntrypoint(greet))
	if err != nil {
		t.Fatalf("GetNode: %v", err)
	}
	edges, err := n.StaticDependencies()
	if err != nil {
		t.Fatalf("StaticDependencies: %v", err)
	}
	if len(edges) != 1 || edges[0].Target != f.MethodEntrypoint(greet) {
		t.Fatalf("expected one self-referential edge, got %v", edges)
	}
}

func TestGetNodeIsMemoized(t *testing.T) {
	ctx, group, _, _, greet, _ := buildSimpleHierarchy(t)
	f := NewScanFactory(ctx, group, nil)

	a, err := f.GetNode(f.MethodEntrypoint(greet))
	if err != nil {
		t.Fatalf("GetNode: %v", err)
	}
	b, err := f.GetNode(f.MethodEntrypoint(greet))
	if err != nil {
		t.Fatalf("GetNode: %v", err)
	}
	if a != b {
		t.Fatalf("expected the same Node instance from repeated GetNode calls")
	}
}
