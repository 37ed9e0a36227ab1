package driver

import (
	"naotc/internal/modgroup"
	"naotc/internal/nodes"
	"naotc/internal/tsystem"
)

// straightlineAnalyzer is the scan pass's default BodyAnalyzer when a
// Request supplies none: it reports exactly the symbols
// backend.Straightline's CompileMethod itself requests. Keeping the
// two in lockstep means a default Run never trips the compiler pass's
// scanner-subset check (spec §7 ScannerFailed) against its own output
// — the scan's conservative approximation and the compiler's real
// demands agree by construction.
type straightlineAnalyzer struct{}

func (straightlineAnalyzer) AnalyzeMethod(ctx *tsystem.Context, group modgroup.Policy, m tsystem.MethodID) (nodes.Findings, error) {
	md := ctx.Method(m)
	var f nodes.Findings
	if !md.IsStatic {
		f.ConstructedTypes = append(f.ConstructedTypes, md.OwningType)
	}
	for _, p := range md.Signature.Params {
		f.NecessaryTypes = append(f.NecessaryTypes, p)
	}
	if md.Signature.Return != tsystem.NoTypeID {
		f.NecessaryTypes = append(f.NecessaryTypes, md.Signature.Return)
	}
	return f, nil
}
