package roots

import (
	"naotc/internal/config"
	"naotc/internal/depgraph"
	"naotc/internal/modgroup"
	"naotc/internal/nodes"
	"naotc/internal/tsystem"
)

// RootSink is what a Provider calls to add a seed to the graph (spec
// §4.3: "svc exposes AddCompilationRoot(method|type, reason,
// exportName?)").
type RootSink interface {
	AddCompilationRoot(key depgraph.NodeKey, reason string, exportName string)
}

// Provider is one root-seeding strategy.
type Provider interface {
	AddCompilationRoots(sink RootSink, f *nodes.Factory) error
}

// SingleMethod roots exactly one method — the common case for a unit
// test or a REPL single-expression compile.
type SingleMethod struct {
	Method tsystem.MethodID
	Reason string
}

func (p SingleMethod) AddCompilationRoots(sink RootSink, f *nodes.Factory) error {
	reason := p.Reason
	if reason == "" {
		reason = "single method root"
	}
	sink.AddCompilationRoot(f.MethodEntrypoint(p.Method), reason, "")
	return nil
}

// EcmaModuleEntrypoint roots the module's designated entry method (the
// ECMA-335 "managed entry point", spec §4.3).
type EcmaModuleEntrypoint struct {
	Module tsystem.ModuleID
	Entry  tsystem.MethodID
}

func (p EcmaModuleEntrypoint) AddCompilationRoots(sink RootSink, f *nodes.Factory) error {
	if p.Entry == tsystem.NoMethodID {
		return tsystem.NewError(tsystem.MissingMethod, "", "module declares no entry point", nil)
	}
	sink.AddCompilationRoot(f.MethodEntrypoint(p.Entry), "module entrypoint", "")
	return nil
}

// ReadyToRunLibrary roots every publicly reachable, non-abstract method
// of a library build: every type's declared methods, plus — only when
// flags.RootCanonicalCode is set — the canonical instantiation of every
// generic type/method, with arguments replaced by __Canon (spec §4.3
// "Generic policy for library rooting", scenario S4). Without the flag,
// generics are reached only through use sites, never rooted directly.
type ReadyToRunLibrary struct {
	Ctx     *tsystem.Context
	Group   modgroup.Policy
	Module  tsystem.ModuleID
	Flags   config.Flags
}

func (p ReadyToRunLibrary) AddCompilationRoots(sink RootSink, f *nodes.Factory) error {
	mod := p.Ctx.Module(p.Module)
	for _, t := range mod.Types() {
		td := p.Ctx.Type(t)
		if !p.Group.ContainsType(t) {
			continue
		}
		// A generic type is only rooted, at its canonical instantiation,
		// when canonical-code rooting is enabled; otherwise it is reached
		// only through use sites (spec §4.3 "Generic policy for library
		// rooting", scenario S4).
		if td.GenericParamCount > 0 {
			if !p.Flags.RootCanonicalCode {
				continue
			}
			args := make([]tsystem.TypeID, td.GenericParamCount)
			for i := range args {
				args[i] = p.Ctx.Canon()
			}
			canon, err := p.Ctx.MakeInstantiatedType(t, args)
			if err != nil {
				return err
			}
			sink.AddCompilationRoot(f.ConstructedTypeSymbol(canon), "library root (canonical instantiation)", mod.Name+"!"+td.Name)
		}

		for _, m := range td.Methods {
			md := p.Ctx.Method(m)
			if md.IsAbstract {
				continue
			}
			rootedMethod := m
			if md.GenericParamCount > 0 {
				if !p.Flags.RootCanonicalCode {
					continue
				}
				args := make([]tsystem.TypeID, md.GenericParamCount)
				for i := range args {
					args[i] = p.Ctx.Canon()
				}
				inst, err := p.Ctx.MakeInstantiatedMethod(m, args)
				if err != nil {
					return err
				}
				rootedMethod = inst
			}
			sink.AddCompilationRoot(f.MethodEntrypoint(rootedMethod), "library root", mod.Name+"!"+md.Name)
		}
	}
	return nil
}

// LiveSet is the minimal view FilteredByScan needs of a completed scan
// pass: whether a given root was actually proved reachable.
type LiveSet interface {
	IsLive(key depgraph.NodeKey) bool
}

// FilteredByScan wraps another provider and discards any root the
// scanner did not prove live, supporting a compile pass that only
// compiles what scanning found reachable (spec §4.3).
type FilteredByScan struct {
	Inner Provider
	Live  LiveSet
}

type filteringSink struct {
	inner RootSink
	live  LiveSet
}

func (s filteringSink) AddCompilationRoot(key depgraph.NodeKey, reason, exportName string) {
	if !s.live.IsLive(key) {
		return
	}
	s.inner.AddCompilationRoot(key, reason, exportName)
}

func (p FilteredByScan) AddCompilationRoots(sink RootSink, f *nodes.Factory) error {
	return p.Inner.AddCompilationRoots(filteringSink{inner: sink, live: p.Live}, f)
}
