// Package depgraph implements the Dependency Graph Engine of spec
// §3.2/§4.4: a polymorphic node graph with static, conditional, and
// dynamic dependency edges, driven to a fixed point by a work-queue
// marking algorithm.
//
// The graph itself knows nothing about types, methods, or compilation
// policy — it operates purely on Node, NodeKey, and a Provider that
// resolves keys to nodes on demand (internal/nodes supplies that
// Provider for this domain). This mirrors the layering style of
// internal/sema, where a generic solver/worklist core is kept
// separate from the domain rules that populate it.
package depgraph
