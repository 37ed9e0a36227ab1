package tsystem

import "testing"

func TestInterningOfInstantiatedType(t *testing.T) {
	c := NewContext()
	mb := c.AddModule("Test", nil)
	list := mb.DefType("Coll", "List", NoTypeID, false, false, false, 1)
	str := mb.DefType("System", "String", NoTypeID, false, false, false, 0)

	a, err := c.MakeInstantiatedType(list, []TypeID{str})
	if err != nil {
		t.Fatalf("MakeInstantiatedType: %v", err)
	}
	b, err := c.MakeInstantiatedType(list, []TypeID{str})
	if err != nil {
		t.Fatalf("MakeInstantiatedType: %v", err)
	}
	if a != b {
		t.Fatalf("expected structurally equal instantiations to intern to the same handle, got %d != %d", a, b)
	}
}

func TestInterningDistinguishesDifferentArguments(t *testing.T) {
	c := NewContext()
	mb := c.AddModule("Test", nil)
	list := mb.DefType("Coll", "List", NoTypeID, false, false, false, 1)
	str := mb.DefType("System", "String", NoTypeID, false, false, false, 0)
	i32 := mb.DefType("System", "Int32", NoTypeID, true, false, false, 0)

	a, _ := c.MakeInstantiatedType(list, []TypeID{str})
	b, _ := c.MakeInstantiatedType(list, []TypeID{i32})
	if a == b {
		t.Fatalf("List<String> and List<Int32> must not share a handle")
	}
}

func TestGetTypeMissingIsTypeLoad(t *testing.T) {
	c := NewContext()
	mb := c.AddModule("Test", nil)
	_, err := c.GetType(mb.Module(), "System", "DoesNotExist")
	if !IsKind(err, TypeLoad) {
		t.Fatalf("expected TypeLoad, got %v", err)
	}
}

func TestGetTypeFound(t *testing.T) {
	c := NewContext()
	mb := c.AddModule("Test", nil)
	want := mb.DefType("System", "Object", NoTypeID, false, false, false, 0)
	got, err := c.GetType(mb.Module(), "System", "Object")
	if err != nil {
		t.Fatalf("GetType: %v", err)
	}
	if got != want {
		t.Fatalf("GetType returned %d, want %d", got, want)
	}
}
