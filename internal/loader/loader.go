package loader

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"naotc/internal/config"
	"naotc/internal/pereader"
	"naotc/internal/tsystem"
)

// loadedFile is one manifest entry's concurrently-read bytes, kept by
// index so folding them into the Context afterward needs no mutex.
type loadedFile struct {
	data []byte
	err  error
}

// LoadAll reads every entry's backing file concurrently (bounded by
// jobs, defaulting to GOMAXPROCS) and then registers each one with ctx
// in manifest order, so module IDs are assigned deterministically
// regardless of how the reads interleaved.
//
// An entry with no Path is a purely declarative module (a test fixture
// or a manifest that only names a module to be populated later through
// tsystem.ModuleBuilder) and is registered with a nil reader.
func LoadAll(ctx context.Context, tctx *tsystem.Context, entries []config.ModuleEntry, jobs int) ([]tsystem.ModuleID, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	files := make([]loadedFile, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(entries)))

	for i, entry := range entries {
		g.Go(func(i int, path string) func() error {
			return func() error {
				if path == "" {
					return nil
				}
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				data, err := os.ReadFile(path)
				if err != nil {
					files[i] = loadedFile{err: err}
					return nil
				}
				files[i] = loadedFile{data: data}
				return nil
			}
		}(i, entry.Path))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make([]tsystem.ModuleID, len(entries))
	for i, entry := range entries {
		if entry.Path == "" {
			ids[i] = tctx.AddModule(entry.Name, nil).Module().ID
			continue
		}
		f := files[i]
		if f.err != nil {
			return nil, fmt.Errorf("loader: %s: %w", entry.Path, f.err)
		}
		pe := pereader.NewModule(entry.Name)
		pe.AddSection(".data", 0, f.data)
		ids[i] = tctx.AddModule(entry.Name, pe).Module().ID
	}
	return ids, nil
}
