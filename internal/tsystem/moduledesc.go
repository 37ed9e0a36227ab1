package tsystem

import "naotc/internal/pereader"

// ModuleDesc owns a metadata reader and a type lookup table, per spec
// §3.1. "Metadata reader" here is the pereader.Module plus the
// declarative rows added through ModuleBuilder — see package doc.
type ModuleDesc struct {
	ID     ModuleID
	Name   string
	Reader *pereader.Module

	typeByName map[string]TypeID // "Namespace.Name" -> TypeID
	typeList   []TypeID          // declaration order, for whole-module enumeration
}

// LookupType resolves a type by its "Namespace.Name" qualified name
// within this module. The second return is false if absent.
func (m *ModuleDesc) LookupType(qualifiedName string) (TypeID, bool) {
	id, ok := m.typeByName[qualifiedName]
	return id, ok
}

// Types returns every DefType declared directly in this module, in
// declaration order — the enumeration a library root provider walks
// (spec §4.3 ReadyToRunLibrary).
func (m *ModuleDesc) Types() []TypeID { return m.typeList }

// FieldRVAData reads the raw bytes of an RVA field (spec §8-S6),
// delegating to the module's underlying PE reader.
func (m *ModuleDesc) FieldRVAData(rva uint32, elementSize int) ([]byte, error) {
	if m.Reader == nil {
		return nil, NewError(BadImageFormat, m.Name, "module has no backing PE reader", nil)
	}
	data, err := m.Reader.ReadRVA(rva, elementSize)
	if err != nil {
		return nil, NewError(BadImageFormat, m.Name, "RVA field read failed", err)
	}
	return data, nil
}
