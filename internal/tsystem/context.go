package tsystem

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// typeKey structurally identifies a constructed (non-Def) TypeDesc for
// interning (spec §3.1 invariant 1).
type typeKey struct {
	kind        TypeKind
	genericDef  TypeID
	element     TypeID
	rank        int
	paramIndex  int
	isMethodParam bool
	args        string // canonical join of Instantiation/SigParams TypeIDs
}

func joinIDs(ids []TypeID) string {
	s := ""
	for i, id := range ids {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", id)
	}
	return s
}

// Context is the TypeSystemContext of spec §4.1: an interning arena for
// every type-system entity loaded or constructed during a run.
//
// Per §5, the Context must tolerate "create during dependency
// computation while iterating the marked list": a single pass is
// single-threaded, but module loading happens concurrently (§5,
// internal/loader) before any pass starts, so inserts are guarded by a
// mutex while reads of already-published entries need no lock once a
// pass begins (append-only after load).
type Context struct {
	mu sync.RWMutex

	modules     []*ModuleDesc
	moduleIndex map[string]ModuleID

	types     []TypeDesc
	typeIndex map[typeKey]TypeID

	methods     []MethodDesc
	methodIndex map[string]MethodID // structural key, see methodKey

	fields []FieldDesc

	canonSentinel TypeID

	vtableCache vtableCache

	layoutMu      sync.Mutex
	layoutCache   map[TypeID]*GCLayout
	layoutOnStack map[TypeID]bool

	implementers map[TypeID][]TypeID // interface TypeID -> implementing DefTypes
}

// NewContext creates an empty Context seeded with the __Canon sentinel
// type required by ConvertToCanonForm (spec §4.1).
func NewContext() *Context {
	c := &Context{
		moduleIndex:   make(map[string]ModuleID, 8),
		typeIndex:     make(map[typeKey]TypeID, 256),
		methodIndex:   make(map[string]MethodID, 256),
		layoutCache:   make(map[TypeID]*GCLayout),
		layoutOnStack: make(map[TypeID]bool),
		implementers:  make(map[TypeID][]TypeID),
	}
	// Reserve index 0 in every arena as the "invalid" sentinel so
	// NoTypeID/NoMethodID/NoFieldID/NoModuleID are never valid handles.
	c.types = append(c.types, TypeDesc{})
	c.methods = append(c.methods, MethodDesc{})
	c.fields = append(c.fields, FieldDesc{})
	c.modules = append(c.modules, nil)

	c.canonSentinel = c.internType(TypeDesc{
		Kind:            KindDef,
		Name:            "__Canon",
		Namespace:       "System",
		IsCanonSentinel: true,
	}, typeKey{kind: KindDef, args: "__Canon"})
	c.vtableCache = newVTableCache()
	return c
}

func (c *Context) internType(t TypeDesc, key typeKey) TypeID {
	if id, ok := c.typeIndex[key]; ok {
		return id
	}
	idx, err := safecast.Conv[uint32](len(c.types))
	if err != nil {
		panic(fmt.Errorf("tsystem: type arena overflow: %w", err))
	}
	t.ID = TypeID(idx)
	c.types = append(c.types, t)
	c.typeIndex[key] = t.ID
	return t.ID
}

// Type returns the TypeDesc for id. Panics on an out-of-range id since
// every TypeID in circulation must have come from this Context.
func (c *Context) Type(id TypeID) *TypeDesc {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &c.types[id]
}

// Method returns the MethodDesc for id.
func (c *Context) Method(id MethodID) *MethodDesc {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &c.methods[id]
}

// Field returns the FieldDesc for id.
func (c *Context) Field(id FieldID) *FieldDesc {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &c.fields[id]
}

// Module returns the ModuleDesc for id.
func (c *Context) Module(id ModuleID) *ModuleDesc {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modules[id]
}

// Canon returns the __Canon sentinel TypeID.
func (c *Context) Canon() TypeID { return c.canonSentinel }

// Modules returns every registered ModuleDesc, in registration order —
// the enumeration a driver walks to resolve a module by name (e.g. the
// findings cache resolving a cached qualified name back into a live
// TypeID/MethodID in internal/cache).
func (c *Context) Modules() []*ModuleDesc {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*ModuleDesc, 0, len(c.modules))
	for _, m := range c.modules[1:] {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

// ImplementersOf returns every DefType registered as implementing
// iface, for interface dispatch resolution (spec §3.2 scenario S2).
func (c *Context) ImplementersOf(iface TypeID) []TypeID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.implementers[iface]
}

// recordImplementer indexes owner as an implementer of iface; called
// by ModuleBuilder.AddInterface.
func (c *Context) recordImplementer(iface, owner TypeID) {
	c.implementers[iface] = append(c.implementers[iface], owner)
}

// normalizeName applies Unicode NFC normalisation to identifiers read
// from a module's string data, so two modules spelling the same name
// with different (but canonically equivalent) Unicode forms intern to
// the same TypeDesc — required for invariant 1 to hold across modules.
func normalizeName(s string) string {
	return norm.NFC.String(s)
}

// GetType resolves a type by namespace+name within module, per spec
// §4.1. Failure is TypeLoad, a local failure for the one entity.
func (c *Context) GetType(module *ModuleDesc, namespace, name string) (TypeID, error) {
	if module == nil {
		return NoTypeID, NewError(TypeLoad, name, "nil module", nil)
	}
	qualified := normalizeName(joinQualified(namespace, name))
	c.mu.RLock()
	id, ok := module.typeByName[qualified]
	c.mu.RUnlock()
	if !ok {
		return NoTypeID, NewError(TypeLoad, qualified, fmt.Sprintf("type not found in module %q", module.Name), nil)
	}
	return id, nil
}

func joinQualified(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
