// Package backend defines the codegen backend external collaborator of
// spec §6: "a JIT-like backend invoked per method", explicitly out of
// scope for the dependency engine itself (spec §1). Only the interface
// the compiler pass drives is specified here, plus Straightline, a
// stub implementation that produces an opaque, never-executed
// CompiledBody so the rest of the driver has something concrete to
// exercise — real machine-code generation and the object format it
// targets are not modeled (spec §1 Non-goals: "runtime execution").
package backend
