package tsystem

// ConvertToCanonForm rewrites an instantiated type's arguments to the
// __Canon sentinel according to kind (spec §4.1 "canonicalisation
// rule"):
//
//   - Specific: reference-type (and constrained-reference-type)
//     arguments collapse to __Canon; value-type arguments keep their
//     identity, since they have distinct layouts that cannot share a
//     body.
//   - Universal: every argument collapses to __Canon, value or
//     reference alike.
//
// Applying either kind twice must return the same TypeID as applying it
// once (idempotence) — guaranteed here by interning plus __Canon being
// a fixed point of both conversions.
func (c *Context) ConvertToCanonForm(t TypeID, kind CanonKind) (TypeID, error) {
	td := c.Type(t)
	if td.Kind != KindInstantiated {
		return t, nil
	}
	if kind == NotCanonical {
		return t, nil
	}

	args := make([]TypeID, len(td.Instantiation))
	changed := false
	for i, a := range td.Instantiation {
		canon, err := c.canonicalizeArg(a, kind)
		if err != nil {
			return NoTypeID, err
		}
		args[i] = canon
		changed = changed || canon != a
	}
	if !changed {
		return t, nil
	}
	newID, err := c.MakeInstantiatedType(td.GenericDef, args)
	if err != nil {
		return NoTypeID, err
	}
	c.mu.Lock()
	c.types[newID].CanonOf = kind
	c.mu.Unlock()
	return newID, nil
}

func (c *Context) canonicalizeArg(arg TypeID, kind CanonKind) (TypeID, error) {
	at := c.Type(arg)
	if at.IsCanonSentinel {
		return arg, nil
	}
	switch kind {
	case Universal:
		return c.canonSentinel, nil
	case Specific:
		if at.IsValueType {
			// Value types keep distinct layouts per instantiation;
			// Specific canon form cannot erase them.
			return arg, nil
		}
		return c.canonSentinel, nil
	default:
		return arg, nil
	}
}

// IsCanonicalSubtype reports whether t is a canonical form of, or
// identical to, candidate — used when the graph needs to know if a
// shared canonical body's type can stand in for a more specific one.
func (c *Context) IsCanonicalSubtype(t, candidate TypeID) bool {
	if t == candidate {
		return true
	}
	td := c.Type(t)
	cd := c.Type(candidate)
	if td.Kind != KindInstantiated || cd.Kind != KindInstantiated {
		return false
	}
	if td.GenericDef != cd.GenericDef || len(td.Instantiation) != len(cd.Instantiation) {
		return false
	}
	for i, a := range td.Instantiation {
		b := cd.Instantiation[i]
		if a == b {
			continue
		}
		if c.Type(b).IsCanonSentinel {
			continue
		}
		return false
	}
	return true
}

// GetCanonMethodTarget resolves the method whose compiled body m's
// instantiation should actually share, per spec §4.1's canonical-code
// sharing rule: a method on a Universal-canon-eligible instantiated
// type is redirected to the same method on the Universal-canon form of
// its owning type, unless the method itself can't be shared (e.g. it is
// a synthetic per-type stub).
func (c *Context) GetCanonMethodTarget(m MethodID) (MethodID, error) {
	md := c.Method(m)
	if !md.CanBeCanonical() {
		return m, nil
	}
	owner := c.Type(md.OwningType)
	if owner.Kind != KindInstantiated {
		return m, nil
	}
	canonOwner, err := c.ConvertToCanonForm(md.OwningType, Universal)
	if err != nil {
		return NoMethodID, err
	}
	if canonOwner == md.OwningType {
		return m, nil
	}
	return c.findMethodOnType(canonOwner, md.Name, md.Signature)
}

func (c *Context) findMethodOnType(owner TypeID, name string, sig Signature) (MethodID, error) {
	td := c.Type(owner)
	for _, mid := range td.Methods {
		m := c.Method(mid)
		if m.Name == name && signaturesMatch(m.Signature, sig) {
			return mid, nil
		}
	}
	return NoMethodID, NewError(MissingMethod, td.QualifiedName()+"."+name, "canonical target method not found", nil)
}

func signaturesMatch(a, b Signature) bool {
	if a.Return != b.Return || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if a.Params[i] != b.Params[i] {
			return false
		}
	}
	return true
}
