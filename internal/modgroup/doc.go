// Package modgroup implements the Module Group Policy of spec §4.2:
// the sole source of truth for whether a type or method body belongs
// to "this compilation" (and can be inlined across) or is external
// and must be reached through an extern symbol.
//
// In the style of ModuleMapping (internal/project/modules.go): a
// policy object built once from a resolved manifest and consulted
// everywhere else, though that policy resolves filesystem module
// roots, not type/method membership.
package modgroup
