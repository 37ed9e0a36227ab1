package scanner

import (
	"testing"

	"naotc/internal/modgroup"
	"naotc/internal/nodes"
	"naotc/internal/roots"
	"naotc/internal/tsystem"
)

type constructedTypeRoot struct{ t tsystem.TypeID }

func (r constructedTypeRoot) AddCompilationRoots(sink roots.RootSink, f *nodes.Factory) error {
	sink.AddCompilationRoot(f.ConstructedTypeSymbol(r.t), "test root", "")
	return nil
}

func TestRunClassifiesConstructedTypesAndCompiledMethods(t *testing.T) {
	ctx := tsystem.NewContext()
	mb := ctx.AddModule("app", nil)
	object := mb.DefType("System", "Object", tsystem.NoTypeID, false, false, false, 0)
	owner := mb.DefType("App", "Program", object, false, false, false, 0)
	main := mb.AddMethod(owner, "Main", tsystem.Signature{}, true, false, false, false, tsystem.NoMethodID)

	group := modgroup.NewSingleFile(ctx, []tsystem.ModuleID{mb.Module().ID}, mb.Module().ID)

	results, err := Run(Config{
		Ctx:   ctx,
		Group: group,
		Roots: []roots.Provider{roots.EcmaModuleEntrypoint{Module: mb.Module().ID, Entry: main}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !results.CompiledMethods[main] {
		t.Fatalf("expected Main to be recorded as compiled")
	}
}

func TestRunBuildsDevirtualizationOracle(t *testing.T) {
	ctx := tsystem.NewContext()
	mb := ctx.AddModule("app", nil)
	base := mb.DefType("App", "Base", tsystem.NoTypeID, false, false, false, 0)
	derived := mb.DefType("App", "Derived", base, false, false, false, 0)

	group := modgroup.NewSingleFile(ctx, []tsystem.ModuleID{mb.Module().ID}, mb.Module().ID)
	results, err := Run(Config{
		Ctx:   ctx,
		Group: group,
		Roots: []roots.Provider{constructedTypeRoot{t: derived}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !results.ConstructedTypes[derived] {
		t.Fatalf("expected Derived to be constructed, got %v", results.ConstructedTypes)
	}
	if results.Devirtualization.IsEffectivelySealed(base) {
		t.Fatalf("expected Base to not be effectively sealed once Derived is constructed")
	}
	if !results.Devirtualization.IsEffectivelySealed(derived) {
		t.Fatalf("expected Derived itself to be effectively sealed (no further subtype constructed)")
	}
}

type shadowConcreteRoot struct {
	method tsystem.MethodID
	inst   tsystem.TypeID
}

func (r shadowConcreteRoot) AddCompilationRoots(sink roots.RootSink, f *nodes.Factory) error {
	sink.AddCompilationRoot(nodes.ShadowConcreteMethodKey{Method: r.method, InstantiationCtx: r.inst}, "test root", "")
	return nil
}

func TestRunDictionaryOracleReportsRealGenericArguments(t *testing.T) {
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
	results, err := Run(Config{
		Ctx:   ctx,
		Group: group,
		Roots: []roots.Provider{shadowConcreteRoot{method: method, inst: inst}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries := results.DictionaryLayout.EntriesFor(method, inst)
	if len(entries) != 1 || entries[0] != str {
		t.Fatalf("expected the dictionary oracle to report [String] as the real ordered entry list, got %v", entries)
	}
}

func TestRunDevirtualizationOracleNeverSealsAnAbstractLeaf(t *testing.T) {
	ctx := tsystem.NewContext()
	mb := ctx.AddModule("app", nil)
	abstractBase := mb.DefType("App", "Shape", tsystem.NoTypeID, false, false, true, 0)
	derived := mb.DefType("App", "Circle", abstractBase, false, false, false, 0)

	group := modgroup.NewSingleFile(ctx, []tsystem.ModuleID{mb.Module().ID}, mb.Module().ID)
	results, err := Run(Config{
		Ctx:   ctx,
		Group: group,
		Roots: []roots.Provider{constructedTypeRoot{t: derived}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if results.Devirtualization.IsEffectivelySealed(abstractBase) {
		t.Fatalf("expected an abstract type to never be reported effectively sealed, even with no constructed subtype seen")
	}
}
