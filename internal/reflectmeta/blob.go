package reflectmeta

import (
	"fmt"

	"naotc/internal/tsystem"
)

// Blob is the assembled metadata of spec §4.6 ComputeMetadata's four
// outputs: a serialised byte blob plus the three maps a runtime type
// loader would index into it by.
type Blob struct {
	Bytes     []byte
	TypeMap   map[tsystem.TypeID]int   // TypeID -> byte offset of its record
	MethodMap map[tsystem.MethodID]int
	FieldMap  map[tsystem.FieldID]int
}

// ComputeMetadata assembles the final blob for every type/method policy
// grants at least Description to, over the types/methods a completed
// compile actually produced (spec §4.6 "at end of compile"). The blob
// format here is a simple newline-delimited text record per entity —
// real NativeAOT-style binary metadata encoding is out of scope per
// spec §1, but the map/record shape is preserved so downstream code
// (and tests) can verify exactly what got included.
func ComputeMetadata(ctx *tsystem.Context, policy Policy, types []tsystem.TypeID, methods []tsystem.MethodID, fields []tsystem.FieldID) Blob {
	b := Blob{
		TypeMap:   make(map[tsystem.TypeID]int),
		MethodMap: make(map[tsystem.MethodID]int),
		FieldMap:  make(map[tsystem.FieldID]int),
	}
	for _, t := range types {
		cat := policy.GetMetadataCategoryType(t)
		if cat == 0 {
			continue
		}
		td := ctx.Type(t)
		b.TypeMap[t] = len(b.Bytes)
		b.Bytes = append(b.Bytes, []byte(fmt.Sprintf("T %d %s.%s cat=%d\n", t, td.Namespace, td.Name, cat))...)
	}
	for _, m := range methods {
		cat := policy.GetMetadataCategoryMethod(m)
		if cat == 0 {
			continue
		}
		md := ctx.Method(m)
		b.MethodMap[m] = len(b.Bytes)
		b.Bytes = append(b.Bytes, []byte(fmt.Sprintf("M %d %s cat=%d\n", m, md.Name, cat))...)
	}
	for _, fld := range fields {
		ft := ctx.Type(ctx.Field(fld).FieldType)
		if policy.GetMetadataCategoryType(ft.ID) == 0 {
			continue
		}
		fd := ctx.Field(fld)
		b.FieldMap[fld] = len(b.Bytes)
		b.Bytes = append(b.Bytes, []byte(fmt.Sprintf("F %d %s\n", fld, fd.Name))...)
	}
	return b
}
