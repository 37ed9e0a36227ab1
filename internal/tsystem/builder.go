package tsystem

import "naotc/internal/pereader"

// ModuleBuilder declaratively constructs a ModuleDesc and its TypeDesc
// graph, standing in for the ECMA-335 table decoder that would
// populate a Context from a real PE image (out of scope per spec §1:
// "Bytecode parsing of individual method bodies... is external").
// Tests and the loader's synthetic-module path use it to build fixture
// modules without a real metadata blob.
type ModuleBuilder struct {
	ctx    *Context
	module *ModuleDesc
}

// AddModule registers a new, empty module named name backed by reader
// (may be nil for purely synthetic/test modules) and returns a builder
// scoped to it.
func (c *Context) AddModule(name string, reader *pereader.Module) *ModuleBuilder {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := ModuleID(len(c.modules))
	m := &ModuleDesc{ID: id, Name: name, Reader: reader, typeByName: make(map[string]TypeID)}
	c.modules = append(c.modules, m)
	c.moduleIndex[name] = id
	return &ModuleBuilder{ctx: c, module: m}
}

// Module returns the ModuleDesc under construction.
func (b *ModuleBuilder) Module() *ModuleDesc { return b.module }

// Builder returns a ModuleBuilder scoped to an already-registered
// module, for a caller that loaded the module (internal/loader) before
// it has any types to declare — e.g. a driver's metadata-decoding hook
// populating a module's types only after the module's backing bytes
// were read and hashed.
func (c *Context) Builder(id ModuleID) *ModuleBuilder {
	c.mu.RLock()
	m := c.modules[id]
	c.mu.RUnlock()
	return &ModuleBuilder{ctx: c, module: m}
}

// DefType interns a new DefType (namespace.name) owned by this module
// and registers it in the module's lookup table, per spec §3.1.
func (b *ModuleBuilder) DefType(namespace, name string, baseType TypeID, isValueType, isInterface, isAbstract bool, genericParamCount int) TypeID {
	c := b.ctx
	c.mu.Lock()
	key := typeKey{kind: KindDef, args: b.module.Name + "!" + normalizeName(joinQualified(namespace, name))}
	id := c.internType(TypeDesc{
		Kind:              KindDef,
		Module:            b.module.ID,
		Namespace:         namespace,
		Name:              name,
		BaseType:          baseType,
		IsValueType:       isValueType,
		IsInterface:       isInterface,
		IsAbstract:        isAbstract,
		GenericParamCount: genericParamCount,
	}, key)
	qualified := normalizeName(joinQualified(namespace, name))
	b.module.typeByName[qualified] = id
	b.module.typeList = append(b.module.typeList, id)
	c.mu.Unlock()
	return id
}

// AddField appends a field of fieldType to owner and returns its ID.
func (b *ModuleBuilder) AddField(owner TypeID, name string, fieldType TypeID, isStatic bool) FieldID {
	c := b.ctx
	c.mu.Lock()
	id := FieldID(len(c.fields))
	c.fields = append(c.fields, FieldDesc{ID: id, OwningType: owner, Name: name, FieldType: fieldType, IsStatic: isStatic})
	c.types[owner].Fields = append(c.types[owner].Fields, id)
	c.mu.Unlock()
	return id
}

// AddRVAField is AddField for a field backed by fixed PE data (spec
// GLOSSARY "RVA field", §8-S6).
func (b *ModuleBuilder) AddRVAField(owner TypeID, name string, fieldType TypeID, rva uint32) FieldID {
	c := b.ctx
	c.mu.Lock()
	id := FieldID(len(c.fields))
	c.fields = append(c.fields, FieldDesc{
		ID: id, OwningType: owner, Name: name, FieldType: fieldType,
		IsStatic: true, HasRVA: true, RVA: rva,
	})
	c.types[owner].Fields = append(c.types[owner].Fields, id)
	c.mu.Unlock()
	return id
}

// AddMethod appends a method to owner. overrides is NoMethodID if this
// method introduces a fresh vtable slot.
func (b *ModuleBuilder) AddMethod(owner TypeID, name string, sig Signature, isStatic, isVirtual, isAbstract, isFinal bool, overrides MethodID) MethodID {
	c := b.ctx
	c.mu.Lock()
	id := MethodID(len(c.methods))
	c.methods = append(c.methods, MethodDesc{
		ID: id, Kind: KindEcmaMethod, OwningType: owner, Name: name, Signature: sig,
		IsStatic: isStatic, IsVirtual: isVirtual, IsAbstract: isAbstract, IsFinal: isFinal,
		Overrides: overrides,
	})
	c.types[owner].Methods = append(c.types[owner].Methods, id)
	c.mu.Unlock()
	return id
}

// AddGenericMethod is AddMethod for a method that itself introduces
// genericParamCount fresh method-level generic parameters.
func (b *ModuleBuilder) AddGenericMethod(owner TypeID, name string, sig Signature, genericParamCount int, isStatic bool) MethodID {
	c := b.ctx
	c.mu.Lock()
	id := MethodID(len(c.methods))
	c.methods = append(c.methods, MethodDesc{
		ID: id, Kind: KindEcmaMethod, OwningType: owner, Name: name, Signature: sig,
		IsStatic: isStatic, GenericParamCount: genericParamCount,
	})
	c.types[owner].Methods = append(c.types[owner].Methods, id)
	c.mu.Unlock()
	return id
}

// AddInterface records that owner implements iface.
func (b *ModuleBuilder) AddInterface(owner, iface TypeID) {
	c := b.ctx
	c.mu.Lock()
	c.types[owner].Interfaces = append(c.types[owner].Interfaces, iface)
	c.recordImplementer(iface, owner)
	c.mu.Unlock()
}

// MarkContainsGCPointers is used by fixture construction when a DefType
// has reference-typed fields and the builder wants that reflected
// before ComputeGCLayout is asked to run on a dependent type.
func (b *ModuleBuilder) MarkContainsGCPointers(t TypeID) {
	c := b.ctx
	c.mu.Lock()
	c.types[t].ContainsGCPointers = true
	c.mu.Unlock()
}
