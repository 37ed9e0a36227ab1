package driver

import (
	"context"
	"fmt"

	"naotc/internal/backend"
	"naotc/internal/cache"
	"naotc/internal/codegenpass"
	"naotc/internal/config"
	"naotc/internal/diag"
	"naotc/internal/loader"
	"naotc/internal/nodes"
	"naotc/internal/objwriter"
	"naotc/internal/observ"
	"naotc/internal/pereader"
	"naotc/internal/reflectmeta"
	"naotc/internal/roots"
	"naotc/internal/scanner"
	"naotc/internal/trace"
	"naotc/internal/tsystem"
)

// Request bundles one Run's inputs. Only ManifestPath is required;
// every other field defaults to the opaque, always-available stand-in
// named in its comment.
type Request struct {
	ManifestPath string
	OutputPath   string // defaults to "a.out"
	Flags        config.Flags

	Backend  backend.Backend    // default: backend.Straightline{}
	Writer   objwriter.Writer   // default: &objwriter.FlatWriter{}
	Analyzer nodes.BodyAnalyzer // default: straightlineAnalyzer{}, matched to Backend
	Metadata reflectmeta.Policy // default: nil, skips metadata classification
	Cache    *cache.Store       // default: nil, disables the findings cache

	// Declare populates each loaded module's types/methods through
	// tsystem.Context.Builder, standing in for the ECMA-335 metadata
	// decoder this compiler does not implement (spec §1). Required for
	// any run that expects to find a real entrypoint; a nil Declare
	// loads modules' raw bytes only, so resolveEntrypoint will fail to
	// find any type.
	Declare func(ctx *tsystem.Context, ids []tsystem.ModuleID) error

	Reporter diag.Reporter // default: diag.NopReporter{}
	Tracer   trace.Tracer  // default: trace.Nop
	Progress ProgressSink  // default: nil, no progress events

	Jobs int // loader concurrency; <=0 means GOMAXPROCS
}

// Result is everything a Run produced.
type Result struct {
	Manifest *config.Manifest
	Modules  []tsystem.ModuleID
	Scan     *scanner.Results
	Compile  *codegenpass.Results
	Timings  observ.Report
}

// Run loads req.ManifestPath's modules, scans, compiles, and emits an
// object file, in that order, reporting progress to req.Progress as it
// goes (spec §1's OVERVIEW pipeline).
func Run(ctx context.Context, req *Request) (*Result, error) {
	back := req.Backend
	if back == nil {
		back = backend.Straightline{}
	}
	writer := req.Writer
	if writer == nil {
		writer = &objwriter.FlatWriter{}
	}
	analyzer := req.Analyzer
	if analyzer == nil {
		analyzer = straightlineAnalyzer{}
	}
	if req.Cache != nil {
		analyzer = &cache.CachingAnalyzer{Inner: analyzer, Store: req.Cache}
	}
	reporter := req.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	tracer := req.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = "a.out"
	}

	timer := observ.NewTimer()
	driverSpan := trace.Begin(tracer, trace.ScopeDriver, "build", 0)

	loadIdx := timer.Begin(StageLoad.String())
	moduleSpan := trace.Begin(tracer, trace.ScopeModule, "load", driverSpan.ID())
	emit(req.Progress, Event{Stage: StageLoad, Status: StatusRunning})
	manifest, err := config.LoadManifest(req.ManifestPath)
	if err != nil {
		emit(req.Progress, Event{Stage: StageLoad, Status: StatusError, Detail: err.Error()})
		timer.End(loadIdx, "manifest load failed")
		moduleSpan.End("manifest load failed")
		driverSpan.End("manifest load failed")
		return nil, err
	}
	for _, entry := range manifest.Modules {
		emit(req.Progress, Event{Stage: StageLoad, Status: StatusQueued, Module: entry.Name})
	}

	tctx := tsystem.NewContext()
	ids, err := loader.LoadAll(ctx, tctx, manifest.Modules, req.Jobs)
	if err != nil {
		emit(req.Progress, Event{Stage: StageLoad, Status: StatusError, Detail: err.Error()})
		timer.End(loadIdx, "module load failed")
		moduleSpan.End("module load failed")
		driverSpan.End("module load failed")
		return nil, err
	}
	for _, entry := range manifest.Modules {
		emit(req.Progress, Event{Stage: StageLoad, Status: StatusDone, Module: entry.Name})
	}
	if req.Declare != nil {
		if err := req.Declare(tctx, ids); err != nil {
			emit(req.Progress, Event{Stage: StageLoad, Status: StatusError, Detail: err.Error()})
			timer.End(loadIdx, "module declaration failed")
			moduleSpan.End("module declaration failed")
			driverSpan.End("module declaration failed")
			return nil, err
		}
	}
	timer.End(loadIdx, fmt.Sprintf("%d modules loaded", len(ids)))
	moduleSpan.End(fmt.Sprintf("%d modules loaded", len(ids)))

	group, primary, err := buildPolicy(tctx, manifest, ids)
	if err != nil {
		driverSpan.End("policy build failed")
		return nil, err
	}
	result := &Result{Manifest: manifest, Modules: ids}

	if manifest.Project.Policy == "external" {
		driverSpan.End("external policy: load only")
		return result, nil
	}

	// single_file roots exactly the manifest's named Main method;
	// ready_to_run has no single entry point to root — it roots every
	// publicly reachable method of the input module instead (spec §4.3),
	// which is also the only path that ever consults req.Flags'
	// RootCanonicalCode switch.
	var rootProviders []roots.Provider
	if manifest.Project.Policy == "ready_to_run" {
		rootProviders = []roots.Provider{roots.ReadyToRunLibrary{Ctx: tctx, Group: group, Module: primary, Flags: req.Flags}}
	} else {
		entryMod, entryMethod, err := resolveEntrypoint(tctx, manifest.Project.Entrypoint)
		if err != nil {
			driverSpan.End("entrypoint resolution failed")
			return nil, err
		}
		rootProviders = []roots.Provider{roots.EcmaModuleEntrypoint{Module: entryMod, Entry: entryMethod}}
	}

	scanIdx := timer.Begin(StageScan.String())
	emit(req.Progress, Event{Stage: StageScan, Status: StatusRunning})
	scanResults, err := scanner.Run(scanner.Config{
		Ctx:      tctx,
		Group:    group,
		Analyzer: analyzer,
		Roots:    rootProviders,
		Metadata: req.Metadata,
		Reporter: reporter,
		Tracer:   tracer,
	})
	if err != nil {
		emit(req.Progress, Event{Stage: StageScan, Status: StatusError, Detail: err.Error()})
		timer.End(scanIdx, "scan failed")
		driverSpan.End("scan failed")
		return nil, err
	}
	result.Scan = scanResults
	emit(req.Progress, Event{Stage: StageScan, Status: StatusDone})
	timer.End(scanIdx, fmt.Sprintf("%d methods compiled-reachable", len(scanResults.CompiledMethods)))

	compileIdx := timer.Begin(StageCompile.String())
	emit(req.Progress, Event{Stage: StageCompile, Status: StatusRunning})
	compileResults, err := codegenpass.Run(codegenpass.Config{
		Ctx:      tctx,
		Group:    group,
		Backend:  back,
		Roots:    []roots.Provider{roots.FilteredByScan{Inner: rootProviders[0], Live: scanResults}},
		Scan:     scanResults,
		Reporter: reporter,
		Tracer:   tracer,
	})
	if err != nil {
		emit(req.Progress, Event{Stage: StageCompile, Status: StatusError, Detail: err.Error()})
		timer.End(compileIdx, "compile failed")
		driverSpan.End("compile failed")
		return nil, err
	}
	result.Compile = compileResults
	emit(req.Progress, Event{Stage: StageCompile, Status: StatusDone})
	timer.End(compileIdx, fmt.Sprintf("%d methods compiled", len(compileResults.CompiledMethods)))

	emitIdx := timer.Begin(StageEmit.String())
	emit(req.Progress, Event{Stage: StageEmit, Status: StatusRunning})
	var input *pereader.Module
	if primary != tsystem.NoModuleID {
		input = tctx.Module(primary).Reader
	}
	if err := writer.EmitObject(input, outputPath, compileResults.Symbols(tctx)); err != nil {
		emit(req.Progress, Event{Stage: StageEmit, Status: StatusError, Detail: err.Error()})
		timer.End(emitIdx, "emit failed")
		driverSpan.End("emit failed")
		return nil, err
	}
	emit(req.Progress, Event{Stage: StageEmit, Status: StatusDone, Detail: outputPath})
	timer.End(emitIdx, "object written")
	driverSpan.End("build complete")

	result.Timings = timer.Report()
	return result, nil
}
