// Package diag defines the diagnostic model shared by the type system,
// graph engine, scanner, and compiler passes.
//
// # Purpose
//
//   - Provide deterministic, serialisable records describing findings
//     produced while resolving types, marking graph nodes, or invoking
//     the codegen backend.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or rendering.
//
// # Scope
//
// Package diag does not colorize or print anything; that is
// cmd/naotc's job. Its only formatter is FormatDiagnostics
// (golden.go), which renders plain text lines. It also does not decide
// what is fatal: per §7 of the specification, every kind except
// ScannerFailed degrades gracefully
// (throwing/empty stub substitution) and is simply logged here.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form
//     (codes.go), grouped by the component that raised it.
//   - Message – human-oriented text.
//   - Primary – the Location (module + entity) the diagnostic concerns.
//     There is no source span: the input is bytecode metadata, not text.
//   - Notes – optional secondary locations/messages for context.
//
// # Emitting diagnostics
//
// Passes use a Reporter to decouple emission from storage. BagReporter
// collects into a *Bag, which supports sorting, deduplication, and
// capacity limits (mirroring how a malformed module must not allow an
// unbounded diagnostic stream to consume memory).
package diag
