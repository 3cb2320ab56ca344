// Package yang provides Go bindings for libyang, the YANG data
// modeling language library (RFC 7950).
//
// All schema compilation, data parsing, validation, XPath evaluation
// and printing is performed by the native library. This package is
// the binding layer: it owns the native handles, translates status
// codes into errors and exposes the schema and data trees through
// Go types and iterators.
//
// # Ownership
//
// Two types own native memory: Context (a libyang context with its
// loaded modules) and DataTree (a forest of data nodes). Both are
// released with an explicit, idempotent Destroy. Everything else,
// Module, SchemaNode, LeafType, DataNode and Metadata, is a borrowed
// view into one of the owners; using a view after its owner was
// destroyed panics rather than touching freed memory.
//
// # Linkage
//
// By default the package links dynamically against the system
// libyang through pkg-config. Building with the libyang_bundled tag
// links a prebuilt static archive instead; see cmd/libyang-install.
package yang
