// Package cache persists the scan pass's BodyAnalyzer findings across
// runs, keyed by a content hash of the owning module's backing bytes
// plus the method's qualified name, so an unchanged module does not
// pay for re-analysis on every incremental build.
//
// In the style of internal/driver.DiskCache/DiskPayload (dcache.go):
// msgpack-encoded payloads under a schema version, atomic write via a
// temp file + os.Rename, XDG_CACHE_HOME resolution in OpenDiskCache.
// Unlike a cache keyed on a project.Digest computed over source text,
// this cache has no stable
// cross-run identifier for a tsystem.TypeID/MethodID (those are
// per-Context arena indices, not portable) — so a cached entry names
// its types and methods by qualified string name and is resolved back
// into the current Context's IDs on lookup, silently falling back to
// re-analysis when a name no longer resolves.
package cache
