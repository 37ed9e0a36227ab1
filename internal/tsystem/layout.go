package tsystem

import "fortio.org/safecast"

const pointerSize = 8 // target is always a 64-bit native image in this driver

// GCLayout is the GC pointer bitmap the SUPPLEMENTED FEATURES section
// adds on top of the distilled type-system algebra: one bit per
// pointer-sized slot in an instance, set when that slot holds a
// tracked object reference. The garbage collector walks this bitmap at
// run time instead of re-deriving it from metadata, so it must be
// computed once per type and cached.
type GCLayout struct {
	InstanceSize int
	// PointerMap has len == InstanceSize/pointerSize; PointerMap[i]
	// is true when slot i is a GC pointer.
	PointerMap []bool
}

// ComputeGCLayout lays out t's instance fields in declaration order
// (no field reordering optimization modeled) and produces the pointer
// bitmap a GC would need. A value-typed field contributes its own
// layout, computed recursively; every other field takes one
// pointer-sized slot, marked as a GC pointer when its type is a
// reference type with ContainsGCPointers set.
func (c *Context) ComputeGCLayout(t TypeID) (*GCLayout, error) {
	c.layoutMu.Lock()
	if cached, ok := c.layoutCache[t]; ok {
		c.layoutMu.Unlock()
		return cached, nil
	}
	if c.layoutOnStack[t] {
		c.layoutMu.Unlock()
		return nil, NewError(InvalidProgram, c.Type(t).QualifiedName(), "cyclic value-type field layout", nil)
	}
	c.layoutOnStack[t] = true
	c.layoutMu.Unlock()
	defer func() {
		c.layoutMu.Lock()
		delete(c.layoutOnStack, t)
		c.layoutMu.Unlock()
	}()

	td := c.Type(t)
	var offset int
	var bitmap []bool

	grow := func(size int) {
		need, err := safecast.Conv[int](size)
		if err != nil {
			need = size
		}
		for len(bitmap)*pointerSize < offset+need {
			bitmap = append(bitmap, false)
		}
	}

	for _, fid := range td.Fields {
		f := c.Field(fid)
		if f.IsStatic {
			continue
		}
		ft := c.Type(f.FieldType)
		switch {
		case ft.Kind == KindDef && ft.IsValueType:
			sub, err := c.ComputeGCLayout(f.FieldType)
			if err != nil {
				return nil, err
			}
			grow(sub.InstanceSize)
			base := offset / pointerSize
			for i, isPtr := range sub.PointerMap {
				if isPtr {
					bitmap[base+i] = true
				}
			}
			offset += sub.InstanceSize
		case ft.ContainsGCPointers && !ft.IsValueType:
			grow(pointerSize)
			bitmap[offset/pointerSize] = true
			offset += pointerSize
		default:
			grow(pointerSize)
			offset += pointerSize
		}
	}

	// A value type with no instance fields of its own (a primitive such
	// as Int32) still occupies one non-pointer slot.
	if td.IsValueType && offset == 0 {
		grow(pointerSize)
		offset = pointerSize
	}

	layout := &GCLayout{InstanceSize: offset, PointerMap: bitmap}
	c.layoutMu.Lock()
	c.layoutCache[t] = layout
	c.layoutMu.Unlock()
	return layout, nil
}

// FieldOffset returns the byte offset of field within its owning
// type's instance layout, recomputing the layout if necessary.
func (c *Context) FieldOffset(field FieldID) (int, error) {
	f := c.Field(field)
	td := c.Type(f.OwningType)
	offset := 0
	for _, fid := range td.Fields {
		if fid == field {
			return offset, nil
		}
		other := c.Field(fid)
		if other.IsStatic {
			continue
		}
		ot := c.Type(other.FieldType)
		if ot.Kind == KindDef && ot.IsValueType {
			sub, err := c.ComputeGCLayout(other.FieldType)
			if err != nil {
				return 0, err
			}
			offset += sub.InstanceSize
		} else {
			offset += pointerSize
		}
	}
	return 0, NewError(MissingField, f.Name, "field not found on its recorded owning type", nil)
}
