// Package types contains the shared enumerations and small API types used
// across getkit package boundaries: schema node kinds, datastore identifiers,
// datastore view modes, and RFC 6243 with-defaults modes.
//
// Keeping these in a leaf package avoids import cycles between the schema,
// data, and operation layers.
package types
