// Package trace provides a tracing subsystem for the dependency engine.
//
// Tracing here is a leveled, context-propagated event stream rather
// than ad hoc fmt.Printf: the root provider, graph engine, scanner, and
// compiler all emit spans and points through the Tracer obtained from
// context.Context. A Nop tracer is installed by default; the CLI wires
// in a Stream (or ring-buffered) tracer only when the user asks for one:
//
//	naotc build --trace=- --trace-mode=stream --trace-level=detail naotc.toml
//
// Scope (level.go) controls granularity: ScopeDriver for the top-level
// run, ScopePass for scan vs. compile, ScopeModule for per-module work,
// ScopeNode for individual graph-node marking — the last of which is
// how §7's "verbose mode logs every method as compilation begins" is
// realized, by emitting a ScopeNode span per MethodWithGCInfo.
package trace
