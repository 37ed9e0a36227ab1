package driver

import (
	"fmt"

	"naotc/internal/config"
	"naotc/internal/modgroup"
	"naotc/internal/tsystem"
)

// buildPolicy resolves manifest.Project.Policy into a concrete
// modgroup.Policy over the modules just loaded (spec §4.2).
//
// single_file treats every loaded module as local. ready_to_run
// compiles exactly the first module not marked in_bubble, treating
// every in_bubble module as a reference the compile may inline across.
// external has no input of its own: Run loads the modules and builds
// the policy, then returns a Result with no scan or compile output,
// since there is nothing to root or compile.
func buildPolicy(ctx *tsystem.Context, manifest *config.Manifest, ids []tsystem.ModuleID) (modgroup.Policy, tsystem.ModuleID, error) {
	generated := ctx.AddModule("$generated", nil).Module().ID

	switch manifest.Project.Policy {
	case "single_file":
		primary := tsystem.NoModuleID
		if len(ids) > 0 {
			primary = ids[primaryIndex(manifest)]
		}
		return modgroup.NewSingleFile(ctx, ids, generated), primary, nil
	case "ready_to_run":
		inputIdx := -1
		var bubble []tsystem.ModuleID
		for i, entry := range manifest.Modules {
			if entry.InBubble {
				bubble = append(bubble, ids[i])
				continue
			}
			if inputIdx < 0 {
				inputIdx = i
			}
		}
		if inputIdx < 0 {
			return nil, tsystem.NoModuleID, fmt.Errorf("driver: ready_to_run manifest names no input module (every module is in_bubble)")
		}
		return modgroup.NewReadyToRunSingleAssembly(ctx, ids[inputIdx], bubble, generated), ids[inputIdx], nil
	case "external":
		return modgroup.NewExternal(generated), tsystem.NoModuleID, nil
	default:
		return nil, tsystem.NoModuleID, fmt.Errorf("driver: unknown policy %q", manifest.Project.Policy)
	}
}

// primaryIndex picks the single_file module whose reader Run hands to
// the object writer: the module named like the project, else the first
// one. The entrypoint search does not use it; every module is equally
// local under single_file.
func primaryIndex(manifest *config.Manifest) int {
	for i, entry := range manifest.Modules {
		if entry.Name == manifest.Project.Name {
			return i
		}
	}
	return 0
}
