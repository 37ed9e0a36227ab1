package reflectmeta

import (
	"testing"

	"naotc/internal/tsystem"
)

func buildFixture(t *testing.T) (*tsystem.Context, tsystem.TypeID, tsystem.MethodID) {
	t.Helper()
	ctx := tsystem.NewContext()
	mb := ctx.AddModule("app", nil)
	owner := mb.DefType("App", "Widget", tsystem.NoTypeID, false, false, false, 0)
	m := mb.AddMethod(owner, "Render", tsystem.Signature{}, false, false, false, false, tsystem.NoMethodID)
	return ctx, owner, m
}

func TestEmptyPolicyBlocksEverything(t *testing.T) {
	ctx, owner, m := buildFixture(t)
	_ = ctx
	var p Policy = Empty{}
	if p.GetMetadataCategoryType(owner) != 0 || p.GetMetadataCategoryMethod(m) != 0 {
		t.Fatalf("Empty policy must grant no metadata")
	}
}

func TestCompilerGeneratedGrantsOnlyListedEntities(t *testing.T) {
	ctx, owner, m := buildFixture(t)
	blocking := NewBlocking(ctx, tsystem.NoTypeID)
	p := NewCompilerGenerated(ctx, blocking, []tsystem.TypeID{owner}, []tsystem.MethodID{m})

	if p.GetMetadataCategoryType(owner) != Description|RuntimeMapping {
		t.Fatalf("expected full metadata for the listed type")
	}
	if !p.HasReflectionInvokeStubForInvokableMethod(m) {
		t.Fatalf("expected an invoke stub for the listed method")
	}

	mb := ctx.AddModule("other", nil)
	unlisted := mb.DefType("Other", "NotListed", tsystem.NoTypeID, false, false, false, 0)
	if p.GetMetadataCategoryType(unlisted) != 0 {
		t.Fatalf("unlisted type must get no metadata")
	}
}

type fakeCompiledSet struct {
	types   map[tsystem.TypeID]bool
	methods map[tsystem.MethodID]bool
}

func (s fakeCompiledSet) WasTypeConstructed(t tsystem.TypeID) bool { return s.types[t] }
func (s fakeCompiledSet) WasMethodCompiled(m tsystem.MethodID) bool { return s.methods[m] }

func TestUsageBasedFollowsCompiledSet(t *testing.T) {
	ctx, owner, m := buildFixture(t)
	blocking := NewBlocking(ctx, tsystem.NoTypeID)
	compiled := fakeCompiledSet{types: map[tsystem.TypeID]bool{owner: true}, methods: map[tsystem.MethodID]bool{m: true}}
	p := NewUsageBased(ctx, blocking, compiled)

	if p.GetMetadataCategoryType(owner) == 0 {
		t.Fatalf("expected metadata for a compiled type")
	}

	mb := ctx.AddModule("other", nil)
	neverCompiled := mb.DefType("Other", "Dead", tsystem.NoTypeID, false, false, false, 0)
	if p.GetMetadataCategoryType(neverCompiled) != 0 {
		t.Fatalf("expected no metadata for a type the scanner never constructed")
	}
}

func TestBlockedInternalsAlwaysWins(t *testing.T) {
	ctx, owner, m := buildFixture(t)
	blocking := NewBlocking(ctx, tsystem.NoTypeID)
	blocking.BlockType(owner)
	p := NewCompilerGenerated(ctx, blocking, []tsystem.TypeID{owner}, []tsystem.MethodID{m})

	if p.GetMetadataCategoryType(owner) != 0 {
		t.Fatalf("a blocked type must never get metadata even when explicitly listed")
	}
}

func TestScannerPolicyDeferToMarking(t *testing.T) {
	ctx, owner, _ := buildFixture(t)
	blocking := NewBlocking(ctx, tsystem.NoTypeID)
	p := NewScanner(ctx, blocking)

	if p.GetMetadataCategoryType(owner) != 0 {
		t.Fatalf("unmarked type should have no category yet")
	}
	p.MarkTypeReflectable(owner)
	if p.GetMetadataCategoryType(owner) != Description {
		t.Fatalf("marked type should get Description only, pending the real blob pass")
	}
}

func TestComputeMetadataSkipsBlockedAndUnreflectable(t *testing.T) {
	ctx, owner, m := buildFixture(t)
	blocking := NewBlocking(ctx, tsystem.NoTypeID)
	p := NewCompilerGenerated(ctx, blocking, []tsystem.TypeID{owner}, []tsystem.MethodID{m})

	blob := ComputeMetadata(ctx, p, []tsystem.TypeID{owner}, []tsystem.MethodID{m}, nil)
	if _, ok := blob.TypeMap[owner]; !ok {
		t.Fatalf("expected owner's record in the blob")
	}
	if len(blob.Bytes) == 0 {
		t.Fatalf("expected non-empty blob bytes")
	}
}
