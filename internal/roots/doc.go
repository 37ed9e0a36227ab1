// Package roots implements the Root Providers of spec §4.3: the seeds
// a Dependency Graph Engine run starts from. Each provider's
// AddCompilationRoots call translates domain-specific "what must exist"
// decisions (one method, a module's entrypoint, an entire library's
// public surface) into calls against a RootSink, decoupling root
// selection from how the graph itself is driven.
package roots
