package codegenpass

import (
	"fmt"

	"naotc/internal/backend"
	"naotc/internal/depgraph"
	"naotc/internal/diag"
	"naotc/internal/modgroup"
	"naotc/internal/nodes"
	"naotc/internal/roots"
	"naotc/internal/scanner"
	"naotc/internal/trace"
	"naotc/internal/tsystem"
)

// LiveSet is the minimal view of a completed scan this pass needs to
// enforce the Oracle property: "everything the compiler reaches, the
// scanner already proved reachable" (spec §4.7/§7).
type LiveSet interface {
	IsLive(key depgraph.NodeKey) bool
}

// Config bundles a compile run's inputs.
type Config struct {
	Ctx     *tsystem.Context
	Group   modgroup.Policy
	Backend backend.Backend
	Roots   []roots.Provider

	// Scan, if non-nil, is checked against the compiler's own marked
	// set once marking completes; a node the compiler reached that Scan
	// never marked is the ScannerFailed fatal condition (spec §7).
	Scan LiveSet

	Reporter diag.Reporter
	Tracer   trace.Tracer
	Tracking depgraph.TrackingLevel
}

// ScannerFailedError is the fatal condition of spec §7: the compiler
// reached a node scanning never proved live, meaning the scanner's
// oracles (vtable layout, dictionary layout, devirtualization,
// inlining) were computed over an incomplete view of the program.
type ScannerFailedError struct{ Key depgraph.NodeKey }

func (e *ScannerFailedError) Error() string {
	return fmt.Sprintf("scanner failed: compiler reached %s, which the scan pass never proved live", e.Key)
}

type rootAdder struct{ g *depgraph.Graph }

func (a *rootAdder) AddCompilationRoot(key depgraph.NodeKey, reason, exportName string) {
	a.g.AddRoot(key, reason)
}

// compileClassifier never treats a per-node compile failure as fatal;
// the only fatal condition in this pass is the scanner-subset check
// applied after ComputeMarkedNodes returns.
func compileClassifier(error) bool { return false }

// Run drives a fresh compile-mode Factory/Graph to a fixed point over
// cfg.Roots, enforces the scanner-subset invariant, and returns the
// compiled bodies ready for internal/objwriter.
func Run(cfg Config) (*Results, error) {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}

	f := nodes.NewCompileFactory(cfg.Ctx, cfg.Group, cfg.Backend)
	g := depgraph.NewGraph(f, compileClassifier, cfg.Reporter, cfg.Tracking)

	passSpan := trace.Begin(tracer, trace.ScopePass, "compile", 0)

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

	if cfg.Scan != nil {
		for _, key := range g.MarkedNodeList() {
			if cfg.Scan.IsLive(key) {
				continue
			}
			err := &ScannerFailedError{Key: key}
			diag.ReportError(cfg.Reporter, diag.ScannerFailed, diag.Location{Entity: key.String()}, err.Error()).Emit()
			passSpan.End("scanner-subset violation")
			return nil, err
		}
	}

	r := newResults(f, g.MarkedNodeList())
	r.collect(cfg.Ctx, cfg.Reporter, tracer, passSpan.ID())

	manifest, err := nodes.BuildModuleManifest(cfg.Ctx, g.MarkedNodeList())
	if err != nil {
		passSpan.End("manifest build failed")
		return nil, err
	}
	r.Manifest = manifest

	passSpan.End(fmt.Sprintf("%d methods compiled, %d deferred", len(r.CompiledMethods), len(r.DeferredToRuntimeJit)))
	return r, nil
}
