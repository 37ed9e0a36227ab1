package cache

import (
	"testing"

	"naotc/internal/modgroup"
	"naotc/internal/nodes"
	"naotc/internal/tsystem"
)

func TestOpenUsesXDGCacheHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	s, err := Open("naotc")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.dir == "" {
		t.Fatalf("expected a non-empty cache dir")
	}
}

func TestStorePutGetRoundTrips(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	s, err := Open("naotc")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var key Digest
	key[0] = 1
	payload := &CachedFindings{ConstructedTypes: []string{"App!App.Widget"}}
	if err := s.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, hit, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatalf("expected a cache hit")
	}
	if len(got.ConstructedTypes) != 1 || got.ConstructedTypes[0] != "App!App.Widget" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestStoreGetMissesOnUnknownKey(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	s, err := Open("naotc")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var key Digest
	key[0] = 0xff
	_, hit, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatalf("expected a miss on an unwritten key")
	}
}

// fixedAnalyzer always returns the same Findings and counts how many
// times it was actually invoked, so tests can assert a cache hit
// skipped it.
type fixedAnalyzer struct {
	findings nodes.Findings
	calls    int
}

func (a *fixedAnalyzer) AnalyzeMethod(ctx *tsystem.Context, group modgroup.Policy, m tsystem.MethodID) (nodes.Findings, error) {
	a.calls++
	return a.findings, nil
}

func buildCacheFixture(t *testing.T) (*tsystem.Context, tsystem.ModuleID, tsystem.TypeID, tsystem.MethodID) {
	t.Helper()
	ctx := tsystem.NewContext()
	mb := ctx.AddModule("App", nil)
	object := mb.DefType("System", "Object", tsystem.NoTypeID, false, false, false, 0)
	widget := mb.DefType("App", "Widget", object, false, false, false, 0)
	owner := mb.DefType("App", "Program", object, false, false, false, 0)
	method := mb.AddMethod(owner, "Main", tsystem.Signature{}, true, false, false, false, tsystem.NoMethodID)
	return ctx, mb.Module().ID, widget, method
}

func TestCachingAnalyzerRoundTripsFindingsThroughDiskCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	store, err := Open("naotc")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	ctx, modID, widget, method := buildCacheFixture(t)
	group := modgroup.NewSingleFile(ctx, []tsystem.ModuleID{modID}, modID)
	inner := &fixedAnalyzer{findings: nodes.Findings{ConstructedTypes: []tsystem.TypeID{widget}}}
	ca := &CachingAnalyzer{Inner: inner, Store: store}

	f1, err := ca.AnalyzeMethod(ctx, group, method)
	if err != nil {
		t.Fatalf("AnalyzeMethod: %v", err)
	}
	if len(f1.ConstructedTypes) != 1 || f1.ConstructedTypes[0] != widget || inner.calls != 1 {
		t.Fatalf("expected one constructed type and one inner call, got %+v calls=%d", f1, inner.calls)
	}

	f2, err := ca.AnalyzeMethod(ctx, group, method)
	if err != nil {
		t.Fatalf("AnalyzeMethod (cached): %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected the second call to be served from cache, inner called %d times", inner.calls)
	}
	if len(f2.ConstructedTypes) != 1 || f2.ConstructedTypes[0] != widget {
		t.Fatalf("expected the cached call to resolve back to the same TypeID, got %+v", f2)
	}
}

func TestCachingAnalyzerFallsBackWhenInnerIsNil(t *testing.T) {
	ca := &CachingAnalyzer{}
	ctx, _, _, method := buildCacheFixture(t)
	f, err := ca.AnalyzeMethod(ctx, nil, method)
	if err != nil {
		t.Fatalf("AnalyzeMethod: %v", err)
	}
	if len(f.ConstructedTypes) != 0 {
		t.Fatalf("expected empty findings with no inner analyzer, got %+v", f)
	}
}
