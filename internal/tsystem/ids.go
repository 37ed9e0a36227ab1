package tsystem

// TypeID identifies an interned TypeDesc within a Context.
type TypeID uint32

// NoTypeID is the sentinel for "no type" / a failed lookup.
const NoTypeID TypeID = 0

// MethodID identifies an interned MethodDesc within a Context.
type MethodID uint32

// NoMethodID is the sentinel for "no method".
const NoMethodID MethodID = 0

// FieldID identifies an interned FieldDesc within a Context.
type FieldID uint32

// NoFieldID is the sentinel for "no field".
const NoFieldID FieldID = 0

// ModuleID identifies a loaded ModuleDesc within a Context.
type ModuleID uint32

// NoModuleID is the sentinel for "no module".
const NoModuleID ModuleID = 0
