package codegenpass

import (
	"bytes"
	"encoding/binary"

	"naotc/internal/backend"
	"naotc/internal/depgraph"
	"naotc/internal/diag"
	"naotc/internal/nodes"
	"naotc/internal/objwriter"
	"naotc/internal/trace"
	"naotc/internal/tsystem"
)

// Results is the CompileResults of spec §4.8: the compiled body per
// reachable method, plus the full marked-node list objwriter needs for
// a topologically stable emission order.
type Results struct {
	factory *nodes.Factory

	MarkedNodeList       []depgraph.NodeKey
	CompiledMethods      map[tsystem.MethodID]backend.CompiledBody
	DeferredToRuntimeJit map[tsystem.MethodID]bool

	// Manifest is this output module's TypeManagerHandle-equivalent:
	// every ConstructedTypeSymbol this pass marked, paired with its GC
	// layout (spec §3 SUPPLEMENTED FEATURES).
	Manifest *nodes.ModuleManifestNode
}

func newResults(f *nodes.Factory, marked []depgraph.NodeKey) *Results {
	return &Results{
		factory:              f,
		MarkedNodeList:        marked,
		CompiledMethods:       make(map[tsystem.MethodID]backend.CompiledBody),
		DeferredToRuntimeJit:  make(map[tsystem.MethodID]bool),
	}
}

// collect walks MarkedNodeList, pulling the finished CompiledMethodNode
// back out of the Factory (memoized, so this triggers no recompile)
// for every MethodEntrypoint key, and sorts each into CompiledMethods
// or DeferredToRuntimeJit. A ScopeNode trace point and a
// diag.CompileMethodInfo diagnostic fire per compiled method, realizing
// spec §7's "verbose mode logs every method as compilation begins".
func (r *Results) collect(ctx *tsystem.Context, reporter diag.Reporter, tracer trace.Tracer, parentSpan uint64) {
	for _, key := range r.MarkedNodeList {
		mk, ok := key.(nodes.MethodEntrypointKey)
		if !ok {
			continue
		}
		node, err := r.factory.GetNode(key)
		if err != nil {
			continue
		}
		cn, ok := node.(nodes.CompiledMethodNode)
		if !ok {
			continue
		}
		name := qualifiedMethodName(ctx, mk.Method)
		if cn.RequiresRuntimeJit() {
			r.DeferredToRuntimeJit[mk.Method] = true
			diag.ReportInfo(reporter, diag.RequiresRuntimeJit, diag.Location{Entity: name}, "left for runtime JIT").Emit()
			continue
		}
		r.CompiledMethods[mk.Method] = cn.Body()
		trace.Begin(tracer, trace.ScopeNode, "compile:"+name, parentSpan).End("")
		diag.ReportInfo(reporter, diag.CompileMethodInfo, diag.Location{Entity: name}, "compiling "+name).Emit()
	}
}

func qualifiedMethodName(ctx *tsystem.Context, m tsystem.MethodID) string {
	md := ctx.Method(m)
	owner := ctx.Type(md.OwningType).QualifiedName()
	return md.QualifiedName(owner)
}

// Symbols renders MarkedNodeList into the objwriter.Symbol slice
// EmitObject expects, in marking order (spec §6: "the core only
// guarantees a topologically stable marked-node order"). Bookkeeping-
// only node families (CanonicalEntrypoint, ShadowConcreteMethod,
// VirtualMethodUse, ReadyToRunHelper, UnboxingStub) contribute no
// symbol of their own — they exist purely to drive the graph closure.
func (r *Results) Symbols(ctx *tsystem.Context) []objwriter.Symbol {
	var out []objwriter.Symbol
	for _, key := range r.MarkedNodeList {
		switch k := key.(type) {
		case nodes.MethodEntrypointKey:
			body, ok := r.CompiledMethods[k.Method]
			if !ok {
				continue // deferred to runtime JIT, or an extern/scan-only stand-in
			}
			out = append(out, objwriter.Symbol{Name: qualifiedMethodName(ctx, k.Method), IsMethod: true, Bytes: body.Code})
		case nodes.ConstructedTypeKey:
			out = append(out, objwriter.Symbol{Name: ctx.Type(k.Type).QualifiedName()})
		case nodes.NecessaryTypeKey:
			out = append(out, objwriter.Symbol{Name: ctx.Type(k.Type).QualifiedName()})
		case nodes.VTableKey:
			out = append(out, objwriter.Symbol{Name: ctx.Type(k.Type).QualifiedName() + "::vtable"})
		case nodes.InterfaceDispatchMapKey:
			out = append(out, objwriter.Symbol{Name: ctx.Type(k.Type).QualifiedName() + "::ifacemap"})
		case nodes.ExternalTypeKey:
			out = append(out, objwriter.Symbol{Name: ctx.Type(k.Type).QualifiedName() + "::extern"})
		case nodes.ExternMethodSymbolKey:
			out = append(out, objwriter.Symbol{Name: qualifiedMethodName(ctx, k.Method) + "::extern"})
		}
	}
	if r.Manifest != nil && len(r.Manifest.Types) > 0 {
		out = append(out, objwriter.Symbol{Name: "::typemanager", Bytes: encodeManifest(ctx, r.Manifest)})
	}
	return out
}

// encodeManifest serialises manifest into the single root-table blob
// internal/objwriter writes alongside every other symbol: one entry per
// ConstructedTypeSymbol, each its qualified name followed by its GC
// layout's instance size and pointer bitmap, packed one bit per slot.
func encodeManifest(ctx *tsystem.Context, manifest *nodes.ModuleManifestNode) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(len(manifest.Types)))
	for _, entry := range manifest.Types {
		name := ctx.Type(entry.Type).QualifiedName()
		binary.Write(&buf, binary.LittleEndian, uint32(len(name)))
		buf.WriteString(name)
		binary.Write(&buf, binary.LittleEndian, uint32(entry.Layout.InstanceSize))
		binary.Write(&buf, binary.LittleEndian, uint32(len(entry.Layout.PointerMap)))
		var bitmapByte byte
		for i, isPtr := range entry.Layout.PointerMap {
			if isPtr {
				bitmapByte |= 1 << (uint(i) % 8)
			}
			if i%8 == 7 {
				buf.WriteByte(bitmapByte)
				bitmapByte = 0
			}
		}
		if len(entry.Layout.PointerMap)%8 != 0 {
			buf.WriteByte(bitmapByte)
		}
	}
	return buf.Bytes()
}
