// Package driver is the top-level orchestration spec §1's OVERVIEW
// describes: load a project manifest's modules, run the scan pass,
// run the compiler pass against exactly what scanning proved live,
// and hand the result to an object writer.
//
// In the style of internal/driver's general shape — a Request/Result
// pair, an observ.Timer wrapped around named phases, a channel-based
// progress Event a foreground UI drains while the pipeline runs on a
// background goroutine (cmd/surge/ui_runner.go) — generalized from a
// per-file parse/diagnose/lower/build/link/run pipeline to this
// compiler's per-module load/scan/compile/emit phases (internal/observ
// already names these four phases; Event.Stage mirrors them one-for-one).
package driver
