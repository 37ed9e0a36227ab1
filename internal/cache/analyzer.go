package cache

import (
	"crypto/sha256"
	"strings"

	"naotc/internal/modgroup"
	"naotc/internal/nodes"
	"naotc/internal/tsystem"
)

// CachingAnalyzer wraps another BodyAnalyzer with a Store lookup keyed
// on the owning module's content plus the method's qualified name.
//
// A cache entry is written or read as a whole: if any type or method
// nodes.Findings names cannot be rendered as (or resolved back from) a
// qualified name — an instantiated/constructed type has no stable
// Module!Namespace.Type spelling — the entry is skipped on write and
// treated as a miss on read, rather than silently dropping individual
// references. Findings are a conservative over-approximation the
// scanner's soundness depends on (spec §4.7); a partial cache hit
// could under-approximate and must never be returned.
type CachingAnalyzer struct {
	Inner nodes.BodyAnalyzer
	Store *Store
}

func (a *CachingAnalyzer) AnalyzeMethod(ctx *tsystem.Context, group modgroup.Policy, m tsystem.MethodID) (nodes.Findings, error) {
	if a.Store == nil || a.Inner == nil {
		if a.Inner == nil {
			return nodes.Findings{}, nil
		}
		return a.Inner.AnalyzeMethod(ctx, group, m)
	}

	name, ok := qualifiedMethodName(ctx, m)
	if !ok {
		return a.Inner.AnalyzeMethod(ctx, group, m)
	}
	key := digestFor(ctx, ctx.Type(ctx.Method(m).OwningType).Module, name)

	if cached, hit, err := a.Store.Get(key); err == nil && hit {
		if f, ok := decodeFindings(ctx, cached); ok {
			return f, nil
		}
	}

	findings, err := a.Inner.AnalyzeMethod(ctx, group, m)
	if err != nil {
		return findings, err
	}
	if payload, ok := encodeFindings(ctx, findings); ok {
		_ = a.Store.Put(key, payload) // a cache write failure never fails analysis
	}
	return findings, nil
}

// digestFor hashes the owning module's backing bytes plus the
// method's qualified name, so a change to either invalidates the key.
func digestFor(ctx *tsystem.Context, mod tsystem.ModuleID, methodQualifiedName string) Digest {
	h := sha256.New()
	if md := ctx.Module(mod); md != nil {
		h.Write([]byte(md.Name))
		if md.Reader != nil {
			for _, sec := range md.Reader.Sections {
				h.Write(sec.Data)
			}
		}
	}
	h.Write([]byte(methodQualifiedName))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func qualifiedTypeName(ctx *tsystem.Context, t tsystem.TypeID) (string, bool) {
	td := ctx.Type(t)
	if td.Kind != tsystem.KindDef {
		return "", false
	}
	mod := ctx.Module(td.Module)
	if mod == nil {
		return "", false
	}
	return mod.Name + "!" + td.QualifiedName(), true
}

func qualifiedMethodName(ctx *tsystem.Context, m tsystem.MethodID) (string, bool) {
	md := ctx.Method(m)
	owner, ok := qualifiedTypeName(ctx, md.OwningType)
	if !ok {
		return "", false
	}
	return owner + "." + md.Name, true
}

func resolveType(ctx *tsystem.Context, qualified string) (tsystem.TypeID, bool) {
	modName, rest, ok := strings.Cut(qualified, "!")
	if !ok {
		return tsystem.NoTypeID, false
	}
	for _, mod := range ctx.Modules() {
		if mod.Name != modName {
			continue
		}
		if id, ok := mod.LookupType(rest); ok {
			return id, true
		}
	}
	return tsystem.NoTypeID, false
}

func resolveMethod(ctx *tsystem.Context, qualified string) (tsystem.MethodID, bool) {
	lastDot := strings.LastIndex(qualified, ".")
	if lastDot < 0 {
		return tsystem.NoMethodID, false
	}
	ownerQualified, methodName := qualified[:lastDot], qualified[lastDot+1:]
	ownerType, ok := resolveType(ctx, ownerQualified)
	if !ok {
		return tsystem.NoMethodID, false
	}
	for _, m := range ctx.Type(ownerType).Methods {
		if ctx.Method(m).Name == methodName {
			return m, true
		}
	}
	return tsystem.NoMethodID, false
}

func encodeTypes(ctx *tsystem.Context, ids []tsystem.TypeID) ([]string, bool) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := qualifiedTypeName(ctx, id)
		if !ok {
			return nil, false
		}
		out = append(out, name)
	}
	return out, true
}

func encodeMethods(ctx *tsystem.Context, ids []tsystem.MethodID) ([]string, bool) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := qualifiedMethodName(ctx, id)
		if !ok {
			return nil, false
		}
		out = append(out, name)
	}
	return out, true
}

func decodeTypes(ctx *tsystem.Context, names []string) ([]tsystem.TypeID, bool) {
	out := make([]tsystem.TypeID, 0, len(names))
	for _, name := range names {
		id, ok := resolveType(ctx, name)
		if !ok {
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}

func decodeMethods(ctx *tsystem.Context, names []string) ([]tsystem.MethodID, bool) {
	out := make([]tsystem.MethodID, 0, len(names))
	for _, name := range names {
		id, ok := resolveMethod(ctx, name)
		if !ok {
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}

func encodeFindings(ctx *tsystem.Context, f nodes.Findings) (*CachedFindings, bool) {
	ct, ok := encodeTypes(ctx, f.ConstructedTypes)
	if !ok {
		return nil, false
	}
	nt, ok := encodeTypes(ctx, f.NecessaryTypes)
	if !ok {
		return nil, false
	}
	cm, ok := encodeMethods(ctx, f.CalledMethods)
	if !ok {
		return nil, false
	}
	ic, ok := encodeMethods(ctx, f.InterfaceCalls)
	if !ok {
		return nil, false
	}
	return &CachedFindings{ConstructedTypes: ct, NecessaryTypes: nt, CalledMethods: cm, InterfaceCalls: ic}, true
}

func decodeFindings(ctx *tsystem.Context, c *CachedFindings) (nodes.Findings, bool) {
	ct, ok := decodeTypes(ctx, c.ConstructedTypes)
	if !ok {
		return nodes.Findings{}, false
	}
	nt, ok := decodeTypes(ctx, c.NecessaryTypes)
	if !ok {
		return nodes.Findings{}, false
	}
	cm, ok := decodeMethods(ctx, c.CalledMethods)
	if !ok {
		return nodes.Findings{}, false
	}
	ic, ok := decodeMethods(ctx, c.InterfaceCalls)
	if !ok {
		return nodes.Findings{}, false
	}
	return nodes.Findings{ConstructedTypes: ct, NecessaryTypes: nt, CalledMethods: cm, InterfaceCalls: ic}, true
}
