// Package objwriter defines the object-file writer external
// collaborator of spec §6: "EmitObject(peReader, outputPath,
// markedNodes, nodeFactory). The writer owns section layout; the core
// only guarantees a topologically stable marked-node order." Real
// PE/ELF/Mach-O emission is out of scope (spec §1); FlatWriter records
// what it was asked to emit, in marked-node order, so callers and
// tests can assert on that order without needing a real image.
package objwriter
