package tsystem

// TypeKind discriminates the polymorphic TypeDesc variants of spec
// §3.1. DefType is a plain ECMA type definition; the rest are
// constructed from it.
type TypeKind uint8

const (
	KindDef TypeKind = iota + 1
	KindArray
	KindByRef
	KindPointer
	KindFunctionPointer
	KindGenericParameter
	KindInstantiated
	KindSignatureVariable
)

func (k TypeKind) String() string {
	switch k {
	case KindDef:
		return "DefType"
	case KindArray:
		return "ArrayType"
	case KindByRef:
		return "ByRefType"
	case KindPointer:
		return "PointerType"
	case KindFunctionPointer:
		return "FunctionPointerType"
	case KindGenericParameter:
		return "GenericParameterDesc"
	case KindInstantiated:
		return "InstantiatedType"
	case KindSignatureVariable:
		return "SignatureVariable"
	default:
		return "UnknownType"
	}
}

// MethodKind discriminates the polymorphic MethodDesc variants.
type MethodKind uint8

const (
	KindEcmaMethod MethodKind = iota + 1
	KindInstantiatedMethod
	KindMethodForInstantiatedType
	KindSyntheticStub
)

func (k MethodKind) String() string {
	switch k {
	case KindEcmaMethod:
		return "EcmaMethod"
	case KindInstantiatedMethod:
		return "InstantiatedMethod"
	case KindMethodForInstantiatedType:
		return "MethodForInstantiatedType"
	case KindSyntheticStub:
		return "SyntheticStub"
	default:
		return "UnknownMethod"
	}
}

// CanonKind selects the canonicalisation flavour (spec §3.1 invariant 3).
type CanonKind uint8

const (
	// NotCanonical means "do not canonicalise" — used as a no-op
	// argument where a CanonKind parameter is structurally required.
	NotCanonical CanonKind = iota
	// Specific collapses reference-type generic arguments to __Canon
	// but preserves value-type arguments' identity.
	Specific
	// Universal collapses every generic argument, reference or value,
	// to __Canon.
	Universal
)

func (k CanonKind) String() string {
	switch k {
	case Specific:
		return "Specific"
	case Universal:
		return "Universal"
	default:
		return "NotCanonical"
	}
}
