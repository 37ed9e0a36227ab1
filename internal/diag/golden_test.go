package diag

import "testing"

func TestFormatDiagnosticsOrdering(t *testing.T) {
	diags := []Diagnostic{
		NewError(TSTypeLoad, Location{Module: "B", Entity: "B.Foo"}, "not found"),
		NewError(TSMissingField, Location{Module: "A", Entity: "A.Bar"}, "missing field").
			WithNote(Location{Module: "A", Entity: "A.Bar.x"}, "declared here"),
	}
	got := FormatDiagnostics(diags)
	want := "ERROR TS_MISSING_FIELD A!A.Bar missing field\n" +
		"  note: A!A.Bar.x: declared here\n" +
		"ERROR TS_TYPE_LOAD B!B.Foo not found"
	if got != want {
		t.Fatalf("unexpected rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestBagCapacityAndDedup(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(NewError(TSTypeLoad, Location{Entity: "X"}, "x")) {
		t.Fatal("first Add should succeed")
	}
	if bag.Add(NewError(TSTypeLoad, Location{Entity: "Y"}, "y")) {
		t.Fatal("second Add should be dropped at capacity")
	}
	if !bag.HasErrors() {
		t.Fatal("expected HasErrors")
	}

	other := NewBag(4)
	other.Add(NewError(TSTypeLoad, Location{Entity: "X"}, "x"))
	other.Add(NewError(TSTypeLoad, Location{Entity: "X"}, "x"))
	other.Dedup()
	if other.Len() != 1 {
		t.Fatalf("Dedup: got %d items, want 1", other.Len())
	}
}
