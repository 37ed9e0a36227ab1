// Package config builds the driver's Flags object from the three
// environment variables the source reads (spec §6) and from a TOML
// project manifest describing the module group (spec §4.2), following
// the project.LoadProjectModules / project.LoadModuleManifest shape
// (cmd/surge/project_manifest.go, internal/project/modules.go).
//
// Spec §9 flags environment-variable flags as global mutable state to
// avoid: "represent as an explicit configuration object passed to the
// compiler builder; do not read environment at arbitrary depth." Flags
// is built once, by cmd/naotc through FlagsFromEnv, and threaded
// explicitly from there; FlagsFromEnv is the only code that reads the
// three flag variables. internal/cache separately reads XDG_CACHE_HOME
// to locate its directory.
package config
