// Package schema implements the immutable schema index consulted during
// tree materialization. An Index holds one schema tree per module and
// answers path lookups ("what kind of node lives at /mod:a/b, is it a
// presence container, which keys does this list have").
//
// Modules are registered once at startup, either programmatically through a
// Builder or from a JSON definition file via Load/LoadFile. After
// registration the index is read-only and safe for concurrent use.
package schema
