// Package pereader models the slice of a PE image the dependency engine
// actually reads: named sections addressed by relative virtual address
// (RVA), plus the bit-exact RVA field contract in spec §6 and §8-S6.
//
// Full ECMA-335 metadata table decoding (string/blob/guid heaps,
// compressed signatures) is out of scope: bytecode parsing beyond its
// role as a dependency source is an external collaborator's job (§1).
// A Module's type/method/field tables
// are instead populated declaratively through tsystem's ModuleBuilder,
// standing in for the decoded metadata tables a real front end would
// hand the engine.
package pereader

import "fmt"

// Section is one named region of a PE image, addressed starting at
// VirtualAddress and running for len(Data) bytes.
type Section struct {
	Name           string
	VirtualAddress uint32
	Data           []byte
}

func (s Section) contains(rva uint32) bool {
	end := s.VirtualAddress + uint32(len(s.Data))
	return rva >= s.VirtualAddress && rva < end
}

// Module is the minimal PE-image view the engine needs: a name (used as
// the module's simple name in diagnostics) and its sections.
type Module struct {
	Name     string
	Sections []Section
}

// NewModule constructs an empty module ready to receive sections.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddSection appends a section. Sections may be added in any order;
// lookups are linear, which is fine for the handful of sections a real
// PE image carries (.text, .rdata, .data, ...).
func (m *Module) AddSection(name string, virtualAddress uint32, data []byte) {
	m.Sections = append(m.Sections, Section{Name: name, VirtualAddress: virtualAddress, Data: data})
}

// sectionFor returns the section containing rva, or false if none does.
func (m *Module) sectionFor(rva uint32) (Section, bool) {
	for _, s := range m.Sections {
		if s.contains(rva) {
			return s, true
		}
	}
	return Section{}, false
}

// ErrBadImageFormat is returned by ReadRVA when the requested region
// falls outside any section, or spills past the end of its section.
type ErrBadImageFormat struct {
	RVA  uint32
	Size int
	Msg  string
}

func (e *ErrBadImageFormat) Error() string {
	return fmt.Sprintf("bad image format: rva=0x%x size=%d: %s", e.RVA, e.Size, e.Msg)
}

// ReadRVA returns exactly `size` bytes starting at rva. Per §6/§8-S6,
// the field's element size must not exceed the section block's
// remaining length; on overrun this returns ErrBadImageFormat instead
// of a truncated slice.
func (m *Module) ReadRVA(rva uint32, size int) ([]byte, error) {
	if size < 0 {
		return nil, &ErrBadImageFormat{RVA: rva, Size: size, Msg: "negative size"}
	}
	sec, ok := m.sectionFor(rva)
	if !ok {
		return nil, &ErrBadImageFormat{RVA: rva, Size: size, Msg: "rva not contained in any section"}
	}
	offset := int(rva - sec.VirtualAddress)
	if offset+size > len(sec.Data) {
		return nil, &ErrBadImageFormat{RVA: rva, Size: size, Msg: fmt.Sprintf("read spills past end of section %q", sec.Name)}
	}
	out := make([]byte, size)
	copy(out, sec.Data[offset:offset+size])
	return out, nil
}
