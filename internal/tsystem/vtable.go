package tsystem

import "sync"

// VirtualSlot names one entry of a type's vtable: the method that
// introduced the slot and the method currently occupying it for a
// given concrete type (spec §4.1, "vtable layout").
type VirtualSlot struct {
	Index      int
	Introduced MethodID // the base/interface method that first declared the slot
	Target     MethodID // the most-derived override for the queried type
}

// vtableCache memoizes per-definition introduced-slot layouts (the
// ordered list of slots a type *introduces*, independent of which
// concrete subtype is asked) plus the full per-type impl-slot array,
// since both are expensive to recompute and are asked for repeatedly
// while the graph marks VTable nodes.
type vtableCache struct {
	mu         sync.Mutex
	introduced map[TypeID][]MethodID // per type-def: slots it introduces, in declaration order
	slots      map[TypeID][]VirtualSlot
}

func newVTableCache() vtableCache {
	return vtableCache{
		introduced: make(map[TypeID][]MethodID),
		slots:      make(map[TypeID][]VirtualSlot),
	}
}

// introducedSlots returns, in declaration order, the virtual methods
// def itself introduces (i.e. Overrides == NoMethodID and IsVirtual).
func (c *Context) introducedSlots(def TypeID) []MethodID {
	c.vtableCache.mu.Lock()
	if cached, ok := c.vtableCache.introduced[def]; ok {
		c.vtableCache.mu.Unlock()
		return cached
	}
	c.vtableCache.mu.Unlock()

	td := c.Type(def)
	var out []MethodID
	for _, mid := range td.Methods {
		m := c.Method(mid)
		if m.IsVirtual && m.Overrides == NoMethodID {
			out = append(out, mid)
		}
	}
	c.vtableCache.mu.Lock()
	c.vtableCache.introduced[def] = out
	c.vtableCache.mu.Unlock()
	return out
}

// EnumAllVirtualSlots walks t's inheritance chain (base first) and
// returns the ordered slot list the runtime vtable layout would use:
// base-type slots first, then slots t's own definition introduces.
// Overrides declared anywhere in the chain replace Target but never
// move Index (spec §4.1 "vtable layout" invariant).
func (c *Context) EnumAllVirtualSlots(t TypeID) []VirtualSlot {
	c.vtableCache.mu.Lock()
	if cached, ok := c.vtableCache.slots[t]; ok {
		c.vtableCache.mu.Unlock()
		return cached
	}
	c.vtableCache.mu.Unlock()

	var chain []TypeID
	for cur := t; cur != NoTypeID; {
		chain = append([]TypeID{cur}, chain...)
		cur = c.Type(cur).BaseType
	}

	var out []VirtualSlot
	for _, link := range chain {
		ldef := link
		if c.Type(link).Kind == KindInstantiated {
			ldef = c.Type(link).GenericDef
		}
		for _, introducer := range c.introducedSlots(ldef) {
			out = append(out, VirtualSlot{Index: len(out), Introduced: introducer, Target: introducer})
		}
	}

	// Apply overrides declared anywhere in the chain, most-derived last
	// so it wins.
	for _, link := range chain {
		lt := c.Type(link)
		for _, mid := range lt.Methods {
			m := c.Method(mid)
			if m.Overrides == NoMethodID {
				continue
			}
			for i := range out {
				if out[i].Introduced == m.Overrides {
					out[i].Target = mid
				}
			}
		}
	}

	c.vtableCache.mu.Lock()
	c.vtableCache.slots[t] = out
	c.vtableCache.mu.Unlock()
	return out
}

// FindVirtualFunctionTargetMethodOnObjectType resolves which method a
// virtual call through baseMethod actually reaches when the runtime
// object's exact type is objectType (spec §4.1 devirtualization input).
func (c *Context) FindVirtualFunctionTargetMethodOnObjectType(baseMethod MethodID, objectType TypeID) (MethodID, error) {
	slots := c.EnumAllVirtualSlots(objectType)
	for _, s := range slots {
		if s.Introduced == baseMethod {
			return s.Target, nil
		}
	}
	bm := c.Method(baseMethod)
	if !bm.IsVirtual {
		return baseMethod, nil
	}
	return NoMethodID, NewError(MissingMethod, bm.Name, "virtual slot not found on object type", nil)
}

// ResolveInterfaceMethodToVirtualMethodOnType resolves an interface
// method call to the implementing class method on implementingType,
// using exact (non-variant) interface matching.
func (c *Context) ResolveInterfaceMethodToVirtualMethodOnType(interfaceMethod MethodID, implementingType TypeID) (MethodID, error) {
	td := c.Type(implementingType)
	im := c.Method(interfaceMethod)
	for _, mid := range td.Methods {
		m := c.Method(mid)
		if m.Overrides == interfaceMethod {
			return mid, nil
		}
		if m.Name == im.Name && signaturesMatch(m.Signature, im.Signature) && !m.IsAbstract {
			return mid, nil
		}
	}
	return NoMethodID, NewError(MissingMethod, im.Name, "no implementation of interface method on type", nil)
}

// ResolveInterfaceMethodToVirtualMethodOnTypeVariant is the
// variance-aware counterpart: interfaceType may be a different (but
// assignment-compatible via generic variance) instantiation of the
// same generic interface definition than the one implementingType
// actually declares, which happens for covariant interfaces like
// IEnumerable<out T>.
func (c *Context) ResolveInterfaceMethodToVirtualMethodOnTypeVariant(interfaceMethod MethodID, interfaceType, implementingType TypeID) (MethodID, error) {
	it := c.Type(interfaceType)
	td := c.Type(implementingType)
	if it.Kind != KindInstantiated {
		return c.ResolveInterfaceMethodToVirtualMethodOnType(interfaceMethod, implementingType)
	}
	for _, decl := range td.Interfaces {
		dt := c.Type(decl)
		if dt.Kind == KindInstantiated && dt.GenericDef == it.GenericDef {
			return c.ResolveInterfaceMethodToVirtualMethodOnType(interfaceMethod, implementingType)
		}
	}
	return NoMethodID, NewError(MissingMethod, c.Method(interfaceMethod).Name,
		"implementing type does not declare a compatible instantiation of the interface", nil)
}
