package tsystem

// Signature is a method's parameter and return types, already resolved
// to TypeIDs (no raw blob decoding — see package doc).
type Signature struct {
	Params []TypeID
	Return TypeID
}

// MethodDesc is the polymorphic method-system entity of spec §3.1.
type MethodDesc struct {
	ID         MethodID
	Kind       MethodKind
	OwningType TypeID
	Name       string
	Signature  Signature

	IsStatic   bool
	IsAbstract bool
	IsVirtual  bool
	IsFinal    bool // sealed override, cannot be further overridden

	// Generic method instantiation (distinct from the owning type's).
	HasInstantiation bool
	Instantiation    []TypeID
	GenericDef       MethodID // for InstantiatedMethod/MethodForInstantiatedType
	GenericParamCount int

	// Overrides names the base-type or interface virtual method this
	// method's vslot entry replaces, or NoMethodID if it introduces a
	// fresh slot (spec §4.1 "introduced slot").
	Overrides MethodID

	IsCanonicalMethod bool
}

// CanBeCanonical reports whether m's body could be shared across
// instantiations (generic, not a synthetic stub tied to one type).
func (m *MethodDesc) CanBeCanonical() bool {
	return m.HasInstantiation || m.GenericParamCount > 0
}

// QualifiedName renders "Namespace.Type.Method" style names for
// diagnostics; ownerName is supplied by the caller (Context has it).
func (m *MethodDesc) QualifiedName(ownerName string) string {
	if ownerName == "" {
		return m.Name
	}
	return ownerName + "." + m.Name
}
