package depgraph

// NodeKey is the interned identity of a graph node (spec §3.3
// "canonical sharing keys"). Concrete keys are produced by
// internal/nodes; depgraph only requires comparability.
type NodeKey interface {
	// String renders the key for diagnostics and the edge-reason log.
	String() string
}

// Edge is a static dependency: always implied once its source is
// marked.
type Edge struct {
	Target NodeKey
	Reason string
}

// ConditionalEdge fires only once both its Trigger and the node that
// declared it are marked (spec §4.4 "Conditional (A if B)").
type ConditionalEdge struct {
	Trigger NodeKey
	Target  NodeKey
	Reason  string
}

// MarkedView is the read-only, monotone view of the marked-node list a
// dynamic dependency producer may consult (spec §9 "Dynamic dispatch in
// the graph": "producers that consume a read-only monotone view and
// emit a delta"). Implementations must never be mutated by a producer.
type MarkedView interface {
	// Len returns the number of nodes marked so far.
	Len() int
	// At returns the NodeKey marked at position i (0 <= i < Len()).
	At(i int) NodeKey
}

// Node is the polymorphic graph entity of spec §3.2. Every node family
// (MethodEntrypoint, VTable, ConstructedTypeSymbol, ...) implements
// this through a concrete wrapper in internal/nodes.
type Node interface {
	Key() NodeKey

	// HasConditionalStaticDependencies reports whether
	// ConditionalDependencies is worth calling — nodes that never
	// declare conditional edges skip the bookkeeping entirely.
	HasConditionalStaticDependencies() bool
	// HasDynamicDependencies reports whether this node must be
	// registered as a dynamic producer for re-querying on every wave.
	HasDynamicDependencies() bool
	// StaticDependenciesAreComputed reports whether StaticDependencies
	// has already run for this node (used for diagnostics only; the
	// graph itself always computes dependencies exactly once per node).
	StaticDependenciesAreComputed() bool

	// StaticDependencies returns the edges always implied by this node
	// being marked.
	StaticDependencies() ([]Edge, error)
	// ConditionalDependencies returns this node's conditional edges.
	// Only called when HasConditionalStaticDependencies is true.
	ConditionalDependencies() ([]ConditionalEdge, error)
	// SearchDynamicDependencies is asked, on every marking wave after
	// this node is marked, to produce additional edges given the
	// current marked view and the index of the first node marked since
	// the previous call. Only called when HasDynamicDependencies is
	// true.
	SearchDynamicDependencies(marked MarkedView, firstNewIndex int) ([]Edge, error)
}
