package scanner

import (
	"fmt"

	"naotc/internal/depgraph"
	"naotc/internal/diag"
	"naotc/internal/modgroup"
	"naotc/internal/nodes"
	"naotc/internal/reflectmeta"
	"naotc/internal/roots"
	"naotc/internal/trace"
	"naotc/internal/tsystem"
)

// Config bundles a scan run's inputs (spec §4.7: "TypeSystemContext,
// ModuleGroup, root providers, an IL provider").
type Config struct {
	Ctx      *tsystem.Context
	Group    modgroup.Policy
	Analyzer nodes.BodyAnalyzer
	Roots    []roots.Provider
	Metadata reflectmeta.Policy // may be nil to skip metadata classification
	Reporter diag.Reporter
	Tracer   trace.Tracer
	Tracking depgraph.TrackingLevel
}

// rootAdder adapts a depgraph.Graph to roots.RootSink.
type rootAdder struct{ g *depgraph.Graph }

func (a *rootAdder) AddCompilationRoot(key depgraph.NodeKey, reason, exportName string) {
	a.g.AddRoot(key, reason)
}

// scanClassifier never treats a scan-time node failure as fatal (spec
// §4.7: a ScannerFailed fatal classification belongs to the compiler
// pass checking the scanner's output, not to scanning itself).
func scanClassifier(error) bool { return false }

// Run drives a fresh scan-mode Factory/Graph to a fixed point over
// cfg.Roots and returns the classified Results plus derived oracles.
func Run(cfg Config) (*Results, error) {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	passSpan := trace.Begin(tracer, trace.ScopePass, "scan", 0)

	f := nodes.NewScanFactory(cfg.Ctx, cfg.Group, cfg.Analyzer)
	g := depgraph.NewGraph(f, scanClassifier, cfg.Reporter, cfg.Tracking)

	sink := &rootAdder{g: g}
	for _, p := range cfg.Roots {
		if err := p.AddCompilationRoots(sink, f); err != nil {
			passSpan.End("root provider failed")
			return nil, err
		}
	}

	if err := g.ComputeMarkedNodes(); err != nil {
		passSpan.End("marking failed")
		return nil, err
	}

	r := newResults()
	r.classify(g, cfg.Ctx, cfg.Metadata)
	buildOracles(cfg.Ctx, r)
	passSpan.End(fmt.Sprintf("%d constructed types, %d compiled methods", len(r.ConstructedTypes), len(r.CompiledMethods)))
	return r, nil
}
