// Package codegenpass implements the Compiler Pass of spec §4.8: a
// second, compile-mode marking pass over the same root set the scanner
// already proved reachable, this time calling into a real (if opaque)
// backend.Backend per MethodEntrypoint and checking, once marking
// reaches a fixed point, that every node the compiler touched was also
// proven live by the prior scan (§4.7's "Oracle property" /
// §7 ScannerFailed).
//
// Grounded on internal/scanner's Run shape — a fresh mode-specific
// nodes.Factory feeding a depgraph.Graph to a fixed point — but the
// subset check here happens once, over the completed marked list,
// rather than per-node during marking: nothing about ScannerFailed
// depends on *when* the mismatch is discovered, only that it is fatal
// once found.
package codegenpass
