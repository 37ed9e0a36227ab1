package backend

import (
	"fmt"

	"naotc/internal/tsystem"
)

// Straightline is a minimal Backend: it "compiles" a method by
// requesting the symbols a real codegen backend would always need —
// the owning type's constructed-type symbol for an instance method,
// and a necessary-type symbol for every type mentioned in the
// signature — then emits a fixed-size placeholder body. It never
// inspects or requires an actual method body, since bytecode parsing
// is out of scope (spec §1).
type Straightline struct{}

// CompileMethod implements Backend.
func (Straightline) CompileMethod(node MethodNode, ctx *tsystem.Context) (CompiledBody, error) {
	m := ctx.Method(node.Method())
	if m.IsAbstract {
		return CompiledBody{}, &RequiresRuntimeJitError{Method: node.Method(), Reason: "abstract method has no body"}
	}

	if !m.IsStatic {
		node.RequestConstructedType(m.OwningType, "instance method needs its owning type constructed")
	}
	for i, p := range m.Signature.Params {
		node.RequestNecessaryType(p, fmt.Sprintf("parameter %d", i))
	}
	if m.Signature.Return != tsystem.NoTypeID {
		node.RequestNecessaryType(m.Signature.Return, "return type")
	}

	return CompiledBody{
		Code:      []byte{0x00}, // opaque placeholder, never executed
		FrameSize: 16,
	}, nil
}
