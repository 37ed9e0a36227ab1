package tsystem

import "testing"

func TestConvertToCanonFormIdempotent(t *testing.T) {
	c := NewContext()
	mb := c.AddModule("Test", nil)
	gen := mb.DefType("Coll", "Gen", NoTypeID, false, false, false, 1)
	str := mb.DefType("System", "String", NoTypeID, false, false, false, 0)

	inst, err := c.MakeInstantiatedType(gen, []TypeID{str})
	if err != nil {
		t.Fatalf("MakeInstantiatedType: %v", err)
	}

	once, err := c.ConvertToCanonForm(inst, Universal)
	if err != nil {
		t.Fatalf("ConvertToCanonForm: %v", err)
	}
	twice, err := c.ConvertToCanonForm(once, Universal)
	if err != nil {
		t.Fatalf("ConvertToCanonForm: %v", err)
	}
	if once != twice {
		t.Fatalf("invariant 2 violated: ConvertToCanonForm not idempotent: %d != %d", once, twice)
	}
}

func TestConvertToCanonFormCommutesWithInstantiation(t *testing.T) {
	c := NewContext()
	mb := c.AddModule("Test", nil)
	gen := mb.DefType("Coll", "Gen", NoTypeID, false, false, false, 1)
	str := mb.DefType("System", "String", NoTypeID, false, false, false, 0)

	inst, err := c.MakeInstantiatedType(gen, []TypeID{str})
	if err != nil {
		t.Fatalf("MakeInstantiatedType: %v", err)
	}
	lhs, err := c.ConvertToCanonForm(inst, Universal)
	if err != nil {
		t.Fatalf("ConvertToCanonForm: %v", err)
	}

	canonStr, err := c.ConvertToCanonForm(str, Universal)
	if err != nil {
		t.Fatalf("ConvertToCanonForm(str): %v", err)
	}
	if canonStr == str {
		// str is not itself an InstantiatedType, canon form is a no-op on it;
		// the canonical argument for Universal substitution is __Canon directly.
		canonStr = c.Canon()
	}
	rhs, err := c.MakeInstantiatedType(gen, []TypeID{canonStr})
	if err != nil {
		t.Fatalf("MakeInstantiatedType(canon): %v", err)
	}

	if lhs != rhs {
		t.Fatalf("invariant 3 violated: canon-then-instantiate != instantiate-then-canon: %d != %d", lhs, rhs)
	}
}

func TestConvertToCanonFormPreservesValueTypeArgsForSpecificOnly(t *testing.T) {
	c := NewContext()
	mb := c.AddModule("Test", nil)
	gen := mb.DefType("Coll", "Gen", NoTypeID, false, false, false, 1)
	i32 := mb.DefType("System", "Int32", NoTypeID, true, false, false, 0)

	inst, err := c.MakeInstantiatedType(gen, []TypeID{i32})
	if err != nil {
		t.Fatalf("MakeInstantiatedType: %v", err)
	}
	specific, err := c.ConvertToCanonForm(inst, Specific)
	if err != nil {
		t.Fatalf("ConvertToCanonForm: %v", err)
	}
	if specific != inst {
		t.Fatalf("Specific canon form must preserve value-type arguments, got a different handle")
	}

	universal, err := c.ConvertToCanonForm(inst, Universal)
	if err != nil {
		t.Fatalf("ConvertToCanonForm(Universal): %v", err)
	}
	if universal == inst {
		t.Fatalf("Universal canon form must collapse value-type arguments too")
	}
	if c.Type(universal).Instantiation[0] != c.Canon() {
		t.Fatalf("expected the sole argument to be __Canon after Universal canonicalisation of a value-type arg")
	}
}

func TestConvertToCanonFormCollapsesReferenceArgsForUniversal(t *testing.T) {
	c := NewContext()
	mb := c.AddModule("Test", nil)
	gen := mb.DefType("Coll", "Gen", NoTypeID, false, false, false, 1)
	str := mb.DefType("System", "String", NoTypeID, false, false, false, 0)

	inst, err := c.MakeInstantiatedType(gen, []TypeID{str})
	if err != nil {
		t.Fatalf("MakeInstantiatedType: %v", err)
	}
	universal, err := c.ConvertToCanonForm(inst, Universal)
	if err != nil {
		t.Fatalf("ConvertToCanonForm: %v", err)
	}
	if universal == inst {
		t.Fatalf("Universal canon form must collapse a reference-type argument to __Canon")
	}
	if c.Type(universal).Instantiation[0] != c.Canon() {
		t.Fatalf("expected the sole argument to be __Canon after Universal canonicalisation")
	}
}
