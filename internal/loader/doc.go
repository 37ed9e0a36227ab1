// Package loader reads a project manifest's module files concurrently
// and registers them with a tsystem.Context, standing in for the
// front end that would otherwise decode ECMA-335 metadata tables from
// each file (spec §1, §5).
//
// In the style of internal/driver.TokenizeDir/ParseDir: an errgroup
// with a job limit, one goroutine per input file writing into
// a pre-sized results slice by index so no mutex is needed, followed
// by a single-threaded pass that folds the results into shared state
// in manifest order for determinism.
package loader
