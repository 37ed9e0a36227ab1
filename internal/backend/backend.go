package backend

import "naotc/internal/tsystem"

// Relocation is one fixup the object writer must patch in once final
// addresses are known (spec §6 CompileMethod output: "code, relocs,
// frame info, GC info").
type Relocation struct {
	Offset int
	Target string // symbol name the object writer resolves
}

// CompiledBody is the opaque artifact CompileMethod produces. It is
// never executed by naotc itself — real codegen and runtime execution
// are both explicitly out of scope per spec §1's Non-goals; the bytes
// exist only so the object writer has something to place into a
// section.
type CompiledBody struct {
	Code         []byte
	Relocations  []Relocation
	FrameSize    int
	GCPointerMap []bool
}

// MethodNode is what a MethodWithGCInfo compile-mode node exposes to
// the backend so it can discover dependencies while generating code
// (spec §6: CompileMethod "calls back into the NodeFactory for every
// symbol it references").
type MethodNode interface {
	Method() tsystem.MethodID

	// RequestMethodEntrypoint, RequestConstructedType,
	// RequestNecessaryType and RequestReadyToRunHelper record that the
	// body references another symbol; the compile-mode node turns each
	// request into a depgraph edge once CompileMethod returns.
	RequestMethodEntrypoint(m tsystem.MethodID, reason string)
	RequestConstructedType(t tsystem.TypeID, reason string)
	RequestNecessaryType(t tsystem.TypeID, reason string)
	RequestReadyToRunHelper(helper int, target tsystem.TypeID, reason string)
	RequestStringLiteral(value string)
	RequestFieldRVAData(field tsystem.FieldID, reason string)
}

// Backend is the external codegen collaborator (spec §6).
type Backend interface {
	// CompileMethod returns node's compiled body and reports every
	// symbol the body references through node's Request* callbacks.
	CompileMethod(node MethodNode, ctx *tsystem.Context) (CompiledBody, error)
}

// RequiresRuntimeJitError marks a method the backend declines to
// precompile (spec §7 RequiresRuntimeJit: "not fatal; the method
// cannot be pre-compiled but the program is well-formed").
type RequiresRuntimeJitError struct {
	Method tsystem.MethodID
	Reason string
}

func (e *RequiresRuntimeJitError) Error() string {
	return "requires runtime JIT: " + e.Reason
}
