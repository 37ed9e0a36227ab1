// Package reflectmeta implements the Metadata Manager of spec §4.6:
// the policy deciding which types and methods carry reflection
// metadata, what extra dependencies that reflectability pulls into the
// graph, and how the final metadata blob is assembled once a compile
// completes.
package reflectmeta
