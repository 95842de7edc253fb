// Package data implements the mutable data tree a retrieval operation
// assembles: the composite forest of DataNodes, the record upsert engine
// with default-flag propagation, deep copy and grafting for virtual-source
// subtrees, and tree printing/export.
//
// A Tree is built by feeding it backend records in arbitrary order:
//
//	t := data.NewTree()
//	node, err := t.Upsert(idx, data.Record{Path: "/example:system/hostname", Value: "r1", Default: true})
//
// Upsert creates missing ancestors on demand and infers their default flags
// from the records that instantiate them; see Upsert for the exact rules.
// Trees are not safe for concurrent mutation; the operation layer serializes
// writes.
package data
