// Package tsystem implements the type-system algebra described in
// spec §3.1 and §4.1: an interned representation of types, methods,
// fields, and modules, with generic instantiation, canonicalisation,
// and virtual-slot resolution.
//
// Every entity is a value-identity object interned by a *Context: two
// TypeID/MethodID/FieldID values compare equal iff they name
// structurally equal entities within that Context (invariant 1 in
// §8). There is no handle recycling and no entity is ever removed;
// a DefType's member lists and flags are still filled in by
// ModuleBuilder after it is interned, and ConvertToCanonForm records
// CanonOf on the form it returns. The arena pattern mirrors symbols.Scopes/
// symbols.Symbols arenas, adapted from string/scope identifiers to
// type-system identifiers.
package tsystem
