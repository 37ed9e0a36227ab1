package tsystem

// TypeDesc is the polymorphic type-system entity of spec §3.1. Which
// fields are meaningful depends on Kind; unused fields are zero.
type TypeDesc struct {
	ID   TypeID
	Kind TypeKind

	// DefType
	Module    ModuleID
	Namespace string
	Name      string
	BaseType  TypeID   // NoTypeID for System.Object and interfaces
	Interfaces []TypeID // RuntimeInterfaces, declared or inherited
	Fields    []FieldID
	Methods   []MethodID // declaration order matters for slot introduction
	GenericParamCount int

	// ArrayType / ByRefType / PointerType
	ElementType TypeID
	ArrayRank   int // 0 for szarray, >0 for multi-dim

	// FunctionPointerType
	SigParams []TypeID
	SigReturn TypeID

	// GenericParameterDesc / SignatureVariable
	ParamIndex int
	IsMethodParam bool // true: signature variable of a method, false: of a type

	// InstantiatedType
	GenericDef  TypeID
	Instantiation []TypeID

	// Category flags (spec §3.1).
	IsValueType              bool
	ContainsGCPointers       bool
	ContainsGenericVariables bool
	IsCanonSentinel          bool // true only for the single __Canon type
	CanonOf                  CanonKind
	IsAbstract               bool
	IsInterface              bool
}

// IsGeneric reports whether t has unbound generic parameters of its own
// (as opposed to being, or containing, an instantiation).
func (t *TypeDesc) IsGeneric() bool {
	return t.Kind == KindDef && t.GenericParamCount > 0
}

// QualifiedName returns "Namespace.Name" for DefType, falling back to a
// Kind-prefixed synthetic name for constructed types.
func (t *TypeDesc) QualifiedName() string {
	switch t.Kind {
	case KindDef:
		if t.Namespace == "" {
			return t.Name
		}
		return t.Namespace + "." + t.Name
	default:
		return t.Kind.String() + "(" + t.Name + ")"
	}
}
