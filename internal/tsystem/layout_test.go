package tsystem

import "testing"

func TestComputeGCLayoutMarksReferenceFields(t *testing.T) {
	c := NewContext()
	mb := c.AddModule("Test", nil)

	str := mb.DefType("System", "String", NoTypeID, false, false, false, 0)
	mb.MarkContainsGCPointers(str)
	i32 := mb.DefType("System", "Int32", NoTypeID, true, false, false, 0)

	node := mb.DefType("App", "Node", NoTypeID, false, false, false, 0)
	mb.AddField(node, "Name", str, false)
	mb.AddField(node, "Count", i32, false)

	layout, err := c.ComputeGCLayout(node)
	if err != nil {
		t.Fatalf("ComputeGCLayout: %v", err)
	}
	if layout.InstanceSize != 2*pointerSize {
		t.Fatalf("expected instance size %d, got %d", 2*pointerSize, layout.InstanceSize)
	}
	if !layout.PointerMap[0] {
		t.Fatalf("expected slot 0 (Name, a reference field) to be marked as a GC pointer")
	}
	if layout.PointerMap[1] {
		t.Fatalf("expected slot 1 (Count, a value field) to not be marked as a GC pointer")
	}
}

func TestComputeGCLayoutCachesResult(t *testing.T) {
	c := NewContext()
	mb := c.AddModule("Test", nil)
	i32 := mb.DefType("System", "Int32", NoTypeID, true, false, false, 0)
	point := mb.DefType("App", "Point", NoTypeID, true, false, false, 0)
	mb.AddField(point, "X", i32, false)
	mb.AddField(point, "Y", i32, false)

	a, err := c.ComputeGCLayout(point)
	if err != nil {
		t.Fatalf("ComputeGCLayout: %v", err)
	}
	b, err := c.ComputeGCLayout(point)
	if err != nil {
		t.Fatalf("ComputeGCLayout: %v", err)
	}
	if a != b {
		t.Fatalf("expected the second call to return the cached *GCLayout")
	}
}

func TestFieldOffset(t *testing.T) {
	c := NewContext()
	mb := c.AddModule("Test", nil)
	i32 := mb.DefType("System", "Int32", NoTypeID, true, false, false, 0)
	point := mb.DefType("App", "Point", NoTypeID, true, false, false, 0)
	x := mb.AddField(point, "X", i32, false)
	y := mb.AddField(point, "Y", i32, false)

	xOff, err := c.FieldOffset(x)
	if err != nil {
		t.Fatalf("FieldOffset(X): %v", err)
	}
	if xOff != 0 {
		t.Fatalf("expected X at offset 0, got %d", xOff)
	}
	yOff, err := c.FieldOffset(y)
	if err != nil {
		t.Fatalf("FieldOffset(Y): %v", err)
	}
	if yOff != pointerSize {
		t.Fatalf("expected Y at offset %d, got %d", pointerSize, yOff)
	}
}
