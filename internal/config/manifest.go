package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ModuleEntry describes one [[module]] table in a project manifest:
// a module file plus its membership in the compilation's version
// bubble (spec §4.2 ModuleGroup policy input).
type ModuleEntry struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
	// InBubble marks a module as eligible for cross-module inlining
	// under ReadyToRunSingleAssembly policy (spec §4.2
	// VersionsWithMethodBody).
	InBubble bool `toml:"in_bubble"`
}

// Manifest is the project.toml/naotc.toml root document: which module
// is the primary compilation unit, which policy the ModuleGroup should
// apply, and the reference modules that make up (or sit outside) the
// version bubble.
type Manifest struct {
	Project struct {
		Name       string `toml:"name"`
		Entrypoint string `toml:"entrypoint"`
		// Policy selects the ModuleGroup implementation: "single_file",
		// "ready_to_run", or "external" (spec §4.2).
		Policy string `toml:"policy"`
	} `toml:"project"`
	Modules []ModuleEntry `toml:"module"`
}

// LoadManifest parses path as a Manifest, following the
// toml.DecodeFile + meta.IsDefined validation idiom used by
// internal/project's LoadModuleManifest/LoadProjectModules.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: missing [project]", path)
	}
	m.Project.Policy = strings.TrimSpace(m.Project.Policy)
	if m.Project.Policy == "" {
		m.Project.Policy = "single_file"
	}
	switch m.Project.Policy {
	case "single_file", "ready_to_run", "external":
	default:
		return nil, fmt.Errorf("%s: unknown [project].policy %q", path, m.Project.Policy)
	}
	return &m, nil
}
