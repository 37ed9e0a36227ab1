package depgraph

import (
	"fmt"

	"naotc/internal/diag"
)

// TrackingLevel controls how much edge provenance the graph retains
// for debugging (spec §4.4).
type TrackingLevel int

const (
	TrackNone TrackingLevel = iota
	TrackFirstEdge
	TrackAll
)

// Provider resolves a NodeKey to a Node on first demand, interning by
// key (spec §3.2 "Lifecycle"). internal/nodes' Factory implements this.
type Provider interface {
	GetNode(key NodeKey) (Node, error)
}

// FailureClassifier decides whether an error raised while computing a
// node's dependencies is fatal to the whole pass (spec §7
// ScannerFailed) or a local failure to be downgraded to a throwing
// stub (every other TypeSystemException subkind, spec §4.4).
type FailureClassifier func(error) bool

type markedView struct{ g *Graph }

func (v markedView) Len() int          { return len(v.g.markedList) }
func (v markedView) At(i int) NodeKey  { return v.g.markedList[i] }

type edgeRecord struct {
	from   NodeKey
	reason string
}

// Graph is the Dependency Graph Engine of spec §3.2/§4.4.
type Graph struct {
	provider   Provider
	classifier FailureClassifier
	reporter   diag.Reporter
	tracking   TrackingLevel

	marked     map[NodeKey]bool
	markedList []NodeKey
	nodeOf     map[NodeKey]Node

	queue []NodeKey

	// conditionalByTrigger indexes every conditional edge declared by an
	// already-marked node, keyed by its Trigger, so marking the trigger
	// fires the edge in O(1) amortised (spec §4.4 step 3).
	conditionalByTrigger map[NodeKey][]ConditionalEdge
	// declaredConditional remembers which marked nodes have already had
	// ConditionalDependencies pulled, so they are not re-queried.
	declaredConditional map[NodeKey]bool

	dynamicNodes     []Node
	dynamicNextIndex map[NodeKey]int

	edges map[NodeKey][]edgeRecord
}

// NewGraph constructs an empty Graph. reporter may be nil (diagnostics
// are dropped); classifier may be nil (every error is treated as a
// local failure, never fatal).
func NewGraph(provider Provider, classifier FailureClassifier, reporter diag.Reporter, tracking TrackingLevel) *Graph {
	return &Graph{
		provider:             provider,
		classifier:           classifier,
		reporter:             reporter,
		tracking:             tracking,
		marked:               make(map[NodeKey]bool),
		nodeOf:               make(map[NodeKey]Node),
		conditionalByTrigger: make(map[NodeKey][]ConditionalEdge),
		declaredConditional:  make(map[NodeKey]bool),
		dynamicNextIndex:     make(map[NodeKey]int),
		edges:                make(map[NodeKey][]edgeRecord),
	}
}

// AddRoot marks key unconditionally, as a seed for the closure (spec
// §4.4 AddRoot).
func (g *Graph) AddRoot(key NodeKey, reason string) {
	g.mark(key, nil, reason)
}

// MarkedNodeList returns the ordered, monotone list of marked keys
// (spec §4.4 MarkedNodeList).
func (g *Graph) MarkedNodeList() []NodeKey {
	return g.markedList
}

// IsMarked reports whether key has been marked.
func (g *Graph) IsMarked(key NodeKey) bool { return g.marked[key] }

func (g *Graph) mark(key NodeKey, from NodeKey, reason string) {
	if g.marked[key] {
		return
	}
	g.marked[key] = true
	g.markedList = append(g.markedList, key)
	g.queue = append(g.queue, key)
	if g.tracking != TrackNone {
		if g.tracking == TrackFirstEdge && len(g.edges[key]) > 0 {
			return
		}
		g.edges[key] = append(g.edges[key], edgeRecord{from: from, reason: reason})
	}
}

func (g *Graph) resolve(key NodeKey) (Node, error) {
	if n, ok := g.nodeOf[key]; ok {
		return n, nil
	}
	n, err := g.provider.GetNode(key)
	if err != nil {
		return nil, err
	}
	g.nodeOf[key] = n
	return n, nil
}

// stubNode replaces a node whose dependency computation failed with a
// local failure: an empty body with no outgoing edges (spec §4.4
// "Failure semantics").
type stubNode struct{ key NodeKey }

func (s stubNode) Key() NodeKey                                          { return s.key }
func (s stubNode) HasConditionalStaticDependencies() bool                { return false }
func (s stubNode) HasDynamicDependencies() bool                          { return false }
func (s stubNode) StaticDependenciesAreComputed() bool                   { return true }
func (s stubNode) StaticDependencies() ([]Edge, error)                   { return nil, nil }
func (s stubNode) ConditionalDependencies() ([]ConditionalEdge, error)   { return nil, nil }
func (s stubNode) SearchDynamicDependencies(MarkedView, int) ([]Edge, error) {
	return nil, nil
}

// ComputeMarkedNodes runs the marking algorithm to a fixed point (spec
// §4.4). It returns an error only for a classifier-judged fatal
// failure (ScannerFailed); every other per-node failure is reported
// through the Graph's diag.Reporter and downgraded to a throwing stub.
func (g *Graph) ComputeMarkedNodes() error {
	for {
		progressed, err := g.drainQueue()
		if err != nil {
			return err
		}
		dynProgress, err := g.runDynamicProducers()
		if err != nil {
			return err
		}
		if !progressed && !dynProgress {
			return nil
		}
	}
}

func (g *Graph) drainQueue() (bool, error) {
	progressed := false
	for len(g.queue) > 0 {
		key := g.queue[0]
		g.queue = g.queue[1:]
		progressed = true

		node, err := g.resolveOrStub(key)
		if err != nil {
			return progressed, err
		}

		if err := g.applyStatic(key, node); err != nil {
			return progressed, err
		}
		if node.HasConditionalStaticDependencies() {
			if err := g.applyConditionalDeclared(key, node); err != nil {
				return progressed, err
			}
		}
		g.applyConditionalTriggered(key)
		if node.HasDynamicDependencies() {
			g.dynamicNodes = append(g.dynamicNodes, node)
			// Start from 0 so the first SearchDynamicDependencies call
			// sees every node marked so far, including ones marked
			// earlier in this same wave before the producer registered.
			g.dynamicNextIndex[key] = 0
		}
	}
	return progressed, nil
}

func (g *Graph) resolveOrStub(key NodeKey) (Node, error) {
	node, err := g.resolve(key)
	if err == nil {
		return node, nil
	}
	if g.classifier != nil && g.classifier(err) {
		return nil, fmt.Errorf("fatal failure resolving node %s: %w", key, err)
	}
	g.reportWarning(key, err)
	stub := stubNode{key: key}
	g.nodeOf[key] = stub
	return stub, nil
}

func (g *Graph) applyStatic(key NodeKey, node Node) error {
	edges, err := node.StaticDependencies()
	if err != nil {
		if g.classifier != nil && g.classifier(err) {
			return fmt.Errorf("fatal failure computing static dependencies of %s: %w", key, err)
		}
		g.reportWarning(key, err)
		return nil
	}
	for _, e := range edges {
		g.mark(e.Target, key, e.Reason)
	}
	return nil
}

func (g *Graph) applyConditionalDeclared(key NodeKey, node Node) error {
	if g.declaredConditional[key] {
		return nil
	}
	g.declaredConditional[key] = true
	edges, err := node.ConditionalDependencies()
	if err != nil {
		if g.classifier != nil && g.classifier(err) {
			return fmt.Errorf("fatal failure computing conditional dependencies of %s: %w", key, err)
		}
		g.reportWarning(key, err)
		return nil
	}
	for _, ce := range edges {
		g.conditionalByTrigger[ce.Trigger] = append(g.conditionalByTrigger[ce.Trigger], ce)
		// Symmetric check (spec §4.4 step 3): the trigger may already be
		// marked by the time the conditional edge is declared.
		if g.marked[ce.Trigger] {
			g.mark(ce.Target, key, ce.Reason)
		}
	}
	return nil
}

func (g *Graph) applyConditionalTriggered(key NodeKey) {
	for _, ce := range g.conditionalByTrigger[key] {
		g.mark(ce.Target, key, ce.Reason)
	}
}

func (g *Graph) runDynamicProducers() (bool, error) {
	progressed := false
	view := markedView{g: g}
	for _, node := range g.dynamicNodes {
		key := node.Key()
		first := g.dynamicNextIndex[key]
		if first >= len(g.markedList) {
			continue
		}
		edges, err := node.SearchDynamicDependencies(view, first)
		g.dynamicNextIndex[key] = len(g.markedList)
		if err != nil {
			if g.classifier != nil && g.classifier(err) {
				return progressed, fmt.Errorf("fatal failure computing dynamic dependencies of %s: %w", key, err)
			}
			g.reportWarning(key, err)
			continue
		}
		for _, e := range edges {
			before := len(g.markedList)
			g.mark(e.Target, key, e.Reason)
			if len(g.markedList) > before {
				progressed = true
			}
		}
	}
	return progressed, nil
}

func (g *Graph) reportWarning(key NodeKey, err error) {
	if g.reporter == nil {
		return
	}
	g.reporter.Report(diag.GraphDependencyFailed, diag.SevWarning,
		diag.Location{Module: "", Entity: key.String()},
		err.Error(), nil)
}
