package codegenpass

import (
	"testing"

	"naotc/internal/backend"
	"naotc/internal/modgroup"
	"naotc/internal/nodes"
	"naotc/internal/roots"
	"naotc/internal/scanner"
	"naotc/internal/tsystem"
)

type constructedTypeRoot struct{ t tsystem.TypeID }

func (r constructedTypeRoot) AddCompilationRoots(sink roots.RootSink, f *nodes.Factory) error {
	sink.AddCompilationRoot(f.ConstructedTypeSymbol(r.t), "test root", "")
	return nil
}

func buildFixture(t *testing.T) (*tsystem.Context, tsystem.ModuleID, tsystem.MethodID, modgroup.Policy) {
	t.Helper()
	ctx := tsystem.NewContext()
	mb := ctx.AddModule("app", nil)
	object := mb.DefType("System", "Object", tsystem.NoTypeID, false, false, false, 0)
	owner := mb.DefType("App", "Program", object, false, false, false, 0)
	main := mb.AddMethod(owner, "Main", tsystem.Signature{}, true, false, false, false, tsystem.NoMethodID)
	group := modgroup.NewSingleFile(ctx, []tsystem.ModuleID{mb.Module().ID}, mb.Module().ID)
	return ctx, mb.Module().ID, main, group
}

func TestRunCompilesRootedMethodWithStraightlineBackend(t *testing.T) {
	ctx, mod, main, group := buildFixture(t)

	results, err := Run(Config{
		Ctx:     ctx,
		Group:   group,
		Backend: backend.Straightline{},
		Roots:   []roots.Provider{roots.EcmaModuleEntrypoint{Module: mod, Entry: main}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	body, ok := results.CompiledMethods[main]
	if !ok {
		t.Fatalf("expected Main to be compiled")
	}
	if len(body.Code) == 0 {
		t.Fatalf("expected a non-empty compiled body")
	}
}

func TestRunRejectsNodeTheScannerNeverMarked(t *testing.T) {
	ctx, mod, main, group := buildFixture(t)

	scanResults, err := scanner.Run(scanner.Config{
		Ctx:   ctx,
		Group: group,
		Roots: nil, // scanner sees nothing live
	})
	if err != nil {
		t.Fatalf("scanner.Run: %v", err)
	}

	_, err = Run(Config{
		Ctx:     ctx,
		Group:   group,
		Backend: backend.Straightline{},
		Roots:   []roots.Provider{roots.EcmaModuleEntrypoint{Module: mod, Entry: main}},
		Scan:    scanResults,
	})
	if err == nil {
		t.Fatalf("expected a ScannerFailedError when compiling a root the scanner never proved live")
	}
	if _, ok := err.(*ScannerFailedError); !ok {
		t.Fatalf("expected *ScannerFailedError, got %T", err)
	}
}

func TestRunAcceptsNodesTheScannerAlsoMarked(t *testing.T) {
	ctx, mod, main, group := buildFixture(t)

	entry := roots.EcmaModuleEntrypoint{Module: mod, Entry: main}
	scanResults, err := scanner.Run(scanner.Config{
		Ctx:   ctx,
		Group: group,
		Roots: []roots.Provider{entry},
	})
	if err != nil {
		t.Fatalf("scanner.Run: %v", err)
	}

	results, err := Run(Config{
		Ctx:     ctx,
		Group:   group,
		Backend: backend.Straightline{},
		Roots:   []roots.Provider{entry},
		Scan:    scanResults,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := results.CompiledMethods[main]; !ok {
		t.Fatalf("expected Main to be compiled once the scanner agrees it is live")
	}
}

func TestResultsSymbolsOrdersByMarking(t *testing.T) {
	ctx, mod, main, group := buildFixture(t)

	results, err := Run(Config{
		Ctx:     ctx,
		Group:   group,
		Backend: backend.Straightline{},
		Roots:   []roots.Provider{roots.EcmaModuleEntrypoint{Module: mod, Entry: main}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	symbols := results.Symbols(ctx)
	if len(symbols) == 0 {
		t.Fatalf("expected at least one emitted symbol")
	}
	found := false
	for _, s := range symbols {
		if s.IsMethod && len(s.Bytes) > 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a method symbol carrying compiled bytes")
	}
}

func TestRunBuildsModuleManifestWithGCLayoutForEveryConstructedType(t *testing.T) {
	ctx := tsystem.NewContext()
	mb := ctx.AddModule("app", nil)
	object := mb.DefType("System", "Object", tsystem.NoTypeID, false, false, false, 0)
	str := mb.DefType("System", "String", object, false, false, false, 0)
	widget := mb.DefType("App", "Widget", object, false, false, false, 0)
	mb.AddField(widget, "Name", str, false)
	group := modgroup.NewSingleFile(ctx, []tsystem.ModuleID{mb.Module().ID}, mb.Module().ID)

	results, err := Run(Config{
		Ctx:     ctx,
		Group:   group,
		Backend: backend.Straightline{},
		Roots:   []roots.Provider{constructedTypeRoot{t: widget}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results.Manifest == nil || len(results.Manifest.Types) == 0 {
		t.Fatalf("expected a module manifest entry for the constructed type")
	}
	entry := results.Manifest.Types[0]
	if entry.Type != widget {
		t.Fatalf("expected the manifest entry to name Widget, got %v", entry.Type)
	}
	if entry.Layout == nil || entry.Layout.InstanceSize == 0 {
		t.Fatalf("expected a non-trivial GC layout for Widget, got %+v", entry.Layout)
	}

	symbols := results.Symbols(ctx)
	found := false
	for _, s := range symbols {
		if s.Name == "::typemanager" && len(s.Bytes) > 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ::typemanager symbol carrying the encoded manifest")
	}
}
