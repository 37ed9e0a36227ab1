package driver

import (
	"fmt"
	"strings"

	"naotc/internal/tsystem"
)

// resolveEntrypoint finds qualified's "Main" method across every
// module currently loaded in ctx. qualified names a type
// ("Namespace.Type", or bare "Type" for the global namespace) — the
// method itself is always named "Main" by convention, mirroring the
// ECMA-335 managed entry point roots.EcmaModuleEntrypoint targets.
func resolveEntrypoint(ctx *tsystem.Context, qualified string) (tsystem.ModuleID, tsystem.MethodID, error) {
	ns, typeName := "", qualified
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		ns, typeName = qualified[:i], qualified[i+1:]
	}
	for _, mod := range ctx.Modules() {
		t, err := ctx.GetType(mod, ns, typeName)
		if err != nil {
			continue
		}
		for _, m := range ctx.Type(t).Methods {
			if ctx.Method(m).Name == "Main" {
				return mod.ID, m, nil
			}
		}
		return mod.ID, tsystem.NoMethodID, fmt.Errorf("driver: entrypoint type %q declares no Main method", qualified)
	}
	return tsystem.NoModuleID, tsystem.NoMethodID, fmt.Errorf("driver: entrypoint type %q not found in any loaded module", qualified)
}
