package nodes

import (
	"naotc/internal/depgraph"
	"naotc/internal/tsystem"
)

// ConstructedTypeEntry is one ConstructedTypeSymbol's contribution to a
// ModuleManifestNode: the type plus the GC layout the runtime's GC
// environment would need to walk an instance's pointers (spec §3
// SUPPLEMENTED FEATURES, "GC environment shape").
type ConstructedTypeEntry struct {
	Type   tsystem.TypeID
	Layout *tsystem.GCLayout
}

// ModuleManifestNode is the TypeManagerHandle-equivalent the compiler
// pass emits once per output module: every ConstructedTypeSymbol the
// pass marked, paired with its GC layout, so internal/objwriter has a
// single root table to serialise instead of re-deriving one from the
// marked node list itself (spec §3 SUPPLEMENTED FEATURES, "TypeManager
// registration").
type ModuleManifestNode struct {
	Types []ConstructedTypeEntry
}

// BuildModuleManifest walks marked in marking order and computes (via
// ctx's memoized ComputeGCLayout) the GC layout for every
// ConstructedTypeKey it finds.
func BuildModuleManifest(ctx *tsystem.Context, marked []depgraph.NodeKey) (*ModuleManifestNode, error) {
	m := &ModuleManifestNode{}
	for _, key := range marked {
		ck, ok := key.(ConstructedTypeKey)
		if !ok {
			continue
		}
		layout, err := ctx.ComputeGCLayout(ck.Type)
		if err != nil {
			return nil, err
		}
		m.Types = append(m.Types, ConstructedTypeEntry{Type: ck.Type, Layout: layout})
	}
	return m, nil
}
