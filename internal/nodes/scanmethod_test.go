package nodes

import (
	"testing"

	"naotc/internal/depgraph"
	"naotc/internal/modgroup"
	"naotc/internal/tsystem"
)

func TestShadowConcreteMethodDependsOnEachDictionaryEntry(t *testing.T) {
	ctx := tsystem.NewContext()
	mb := ctx.AddModule("app", nil)
	object := mb.DefType("System", "Object", tsystem.NoTypeID, false, false, false, 0)
	gen := mb.DefType("Coll", "Box", object, false, false, false, 1)
	method := mb.AddMethod(gen, "Get", tsystem.Signature{}, false, false, false, false, tsystem.NoMethodID)
	str := mb.DefType("System", "String", object, false, false, false, 0)

	inst, err := ctx.MakeInstantiatedType(gen, []tsystem.TypeID{str})
	if err != nil {
		t.Fatalf("MakeInstantiatedType: %v", err)
	}

	group := modgroup.NewSingleFile(ctx, []tsystem.ModuleID{mb.Module().ID}, mb.Module().ID)
	f := NewScanFactory(ctx, group, nil)

	key := ShadowConcreteMethodKey{Method: method, InstantiationCtx: inst}
	node, err := f.GetNode(key)
	if err != nil {
		t.Fatalf("GetNode: %v", err)
	}
	edges, err := node.StaticDependencies()
	if err != nil {
		t.Fatalf("StaticDependencies: %v", err)
	}
	if len(edges) != 1 || edges[0].Target != f.typeSymbolOrExtern(str, false) {
		t.Fatalf("expected one dependency on String as a dictionary entry, got %v", edges)
	}

	g := depgraph.NewGraph(f, nil, nil, depgraph.TrackNone)
	g.AddRoot(key, "test root")
	if err := g.ComputeMarkedNodes(); err != nil {
		t.Fatalf("ComputeMarkedNodes: %v", err)
	}
	if !g.IsMarked(f.NecessaryTypeSymbol(str)) {
		t.Fatalf("expected the dictionary entry's type to be marked live")
	}
}
