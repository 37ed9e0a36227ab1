// Package scanner implements the Scanner Pass of spec §4.7: it drives a
// depgraph.Graph in nodes.ScanMode from a set of root providers,
// classifies the resulting marked-node list into the categories
// downstream passes need, and derives the four oracles (vtable layout,
// dictionary layout, devirtualization, inlining) the compiler pass
// consumes under the "compiler ⊆ scanner" invariant of spec §4.7.
package scanner
