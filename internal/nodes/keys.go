package nodes

import (
	"fmt"

	"naotc/internal/tsystem"
)

// MethodEntrypointKey is the MethodEntrypoint(M) family of spec §4.5.
type MethodEntrypointKey struct{ Method tsystem.MethodID }

func (k MethodEntrypointKey) String() string { return fmt.Sprintf("MethodEntrypoint(%d)", k.Method) }

// CanonicalEntrypointKey is the canonical shared-body node (spec §3.3
// "(CanonicalMethod)").
type CanonicalEntrypointKey struct{ Method tsystem.MethodID }

func (k CanonicalEntrypointKey) String() string {
	return fmt.Sprintf("CanonicalEntrypoint(%d)", k.Method)
}

// ShadowConcreteMethodKey is the "(Method, ConcreteOwningType)" shadow
// node of spec §3.3: tracks one instantiation's dictionary-driven
// dependencies while pointing at the shared canonical body.
type ShadowConcreteMethodKey struct {
	Method            tsystem.MethodID
	InstantiationCtx  tsystem.TypeID
}

func (k ShadowConcreteMethodKey) String() string {
	return fmt.Sprintf("ShadowConcreteMethod(%d,%d)", k.Method, k.InstantiationCtx)
}

// ConstructedTypeKey is ConstructedType(T): T plus everything needed to
// allocate and operate on an instance (spec §3.3).
type ConstructedTypeKey struct{ Type tsystem.TypeID }

func (k ConstructedTypeKey) String() string { return fmt.Sprintf("ConstructedType(%d)", k.Type) }

// NecessaryTypeKey is NecessaryType(T): T's existence is needed (e.g.
// as a generic argument) without requiring it be constructible.
type NecessaryTypeKey struct{ Type tsystem.TypeID }

func (k NecessaryTypeKey) String() string { return fmt.Sprintf("NecessaryType(%d)", k.Type) }

// VTableKey is VTable(T).
type VTableKey struct{ Type tsystem.TypeID }

func (k VTableKey) String() string { return fmt.Sprintf("VTable(%d)", k.Type) }

// InterfaceDispatchMapKey is InterfaceDispatchMap(T).
type InterfaceDispatchMapKey struct{ Type tsystem.TypeID }

func (k InterfaceDispatchMapKey) String() string {
	return fmt.Sprintf("InterfaceDispatchMap(%d)", k.Type)
}

// HelperID names one of the fixed set of ReadyToRunHelper kinds a
// compiled body may request (spec §4.5 "ReadyToRunHelper nodes are
// keyed by (HelperId, target)").
type HelperID uint8

const (
	HelperUnknown HelperID = iota
	HelperNewObject
	HelperNewArray
	HelperCastClass
	HelperIsInst
	HelperThrowIfNull
	HelperGenericLookup
)

func (h HelperID) String() string {
	switch h {
	case HelperNewObject:
		return "NewObject"
	case HelperNewArray:
		return "NewArray"
	case HelperCastClass:
		return "CastClass"
	case HelperIsInst:
		return "IsInst"
	case HelperThrowIfNull:
		return "ThrowIfNull"
	case HelperGenericLookup:
		return "GenericLookup"
	default:
		return "UnknownHelper"
	}
}

// ReadyToRunHelperKey is ReadyToRunHelper(helperKey): (HelperId, target).
type ReadyToRunHelperKey struct {
	Helper HelperID
	Target tsystem.TypeID
}

func (k ReadyToRunHelperKey) String() string {
	return fmt.Sprintf("ReadyToRunHelper(%s,%d)", k.Helper, k.Target)
}

// ExternMethodSymbolKey is the extern stand-in used for a method whose
// body lives outside the module group (spec §4.2/§4.5).
type ExternMethodSymbolKey struct{ Method tsystem.MethodID }

func (k ExternMethodSymbolKey) String() string {
	return fmt.Sprintf("ExternMethodSymbol(%d)", k.Method)
}

// ExternalTypeKey is the extern stand-in for a type outside the group.
type ExternalTypeKey struct{ Type tsystem.TypeID }

func (k ExternalTypeKey) String() string { return fmt.Sprintf("ExternalType(%d)", k.Type) }

// VirtualMethodUseKey marks that some call site invokes ifaceMethod
// through an interface reference (spec §8 scenario S2). Its conditional
// edges fire, per implementing type, once that type is also
// constructed.
type VirtualMethodUseKey struct{ Method tsystem.MethodID }

func (k VirtualMethodUseKey) String() string { return fmt.Sprintf("VirtualMethodUse(%d)", k.Method) }

// UnboxingStubKey is the special unboxing thunk spec §4.5 describes for
// canonical instance methods on value types.
type UnboxingStubKey struct {
	Method tsystem.MethodID
	Owner  tsystem.TypeID
}

func (k UnboxingStubKey) String() string {
	return fmt.Sprintf("UnboxingStub(%d,%d)", k.Method, k.Owner)
}
