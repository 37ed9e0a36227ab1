package modgroup

import (
	"testing"

	"naotc/internal/tsystem"
)

func setupTwoModules(t *testing.T) (*tsystem.Context, tsystem.ModuleID, tsystem.ModuleID, tsystem.TypeID, tsystem.TypeID) {
	t.Helper()
	ctx := tsystem.NewContext()
	a := ctx.AddModule("A", nil)
	b := ctx.AddModule("B", nil)
	tA := a.DefType("App", "Local", tsystem.NoTypeID, false, false, false, 0)
	tB := b.DefType("App", "Remote", tsystem.NoTypeID, false, false, false, 0)
	return ctx, a.Module().ID, b.Module().ID, tA, tB
}

func TestSingleFilePolicyEverythingLocal(t *testing.T) {
	ctx, modA, modB, tA, tB := setupTwoModules(t)
	gen := ctx.AddModule("$generated", nil).Module().ID
	p := NewSingleFile(ctx, []tsystem.ModuleID{modA, modB}, gen)
	if !p.ContainsType(tA) || !p.ContainsType(tB) {
		t.Fatalf("SingleFile must consider every loaded module local")
	}
}

func TestReadyToRunSingleAssemblyOnlyInputIsCompiled(t *testing.T) {
	ctx, modA, modB, tA, tB := setupTwoModules(t)
	gen := ctx.AddModule("$generated", nil).Module().ID
	p := NewReadyToRunSingleAssembly(ctx, modA, []tsystem.ModuleID{modB}, gen)

	if !p.ContainsType(tA) {
		t.Fatalf("input module's types must be local")
	}
	if p.ContainsType(tB) {
		t.Fatalf("a reference module's types must not be ContainsType-local")
	}
}

func TestReadyToRunSingleAssemblyBubbleAllowsInlining(t *testing.T) {
	ctx, modA, modB, tA, tB := setupTwoModules(t)
	gen := ctx.AddModule("$generated", nil).Module().ID
	p := NewReadyToRunSingleAssembly(ctx, modA, []tsystem.ModuleID{modB}, gen)

	scratch := ctx.AddModule("__scratch", nil)
	localMethod := scratch.AddMethod(tA, "M", tsystem.Signature{}, false, false, false, false, tsystem.NoMethodID)
	if !p.VersionsWithMethodBody(localMethod) {
		t.Fatalf("expected a method on the input module's type to be inlinable")
	}

	bubbleMethod := scratch.AddMethod(tB, "M", tsystem.Signature{}, false, false, false, false, tsystem.NoMethodID)
	if !p.VersionsWithMethodBody(bubbleMethod) {
		t.Fatalf("expected a method on a bubble-member module's type to be inlinable")
	}
}

func TestExternalPolicyNothingLocal(t *testing.T) {
	ctx, _, _, tA, tB := setupTwoModules(t)
	gen := ctx.AddModule("$generated", nil).Module().ID
	p := NewExternal(gen)
	if p.ContainsType(tA) || p.ContainsType(tB) {
		t.Fatalf("External policy must never consider a type local")
	}
}
