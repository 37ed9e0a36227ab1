// Package nodes implements the Node Factory of spec §4.5: a memoized
// mapping from type-system entities to depgraph.Node, with the factory
// itself encoding which concrete node subtype a key maps to depending
// on whether the run is scanning or compiling (spec §4.5 "Policy
// dispatch").
//
// Dependency discovery for a method body is delegated to a
// BodyAnalyzer (scan mode) or a codegen backend.Backend (compile mode),
// both supplied to NewFactory by the pass that owns it; the factory's
// own job is exclusively identity (one node per key) and translating
// whatever those collaborators report into depgraph edges. This split
// mirrors the separation between internal/symbols (identity, no
// policy) and internal/sema (policy, consumes symbols).
package nodes
