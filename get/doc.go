// Package get implements the retrieval operation layer: it turns a set of
// path selectors into one composite data tree, pulling most subtrees from a
// backend store record by record and grafting the rest from lazily built
// virtual sources.
//
// A Session is configured once with the schema index, the backend, and the
// virtual sources, then serves any number of operations:
//
//	sess, err := get.NewSession(idx, store, get.Options{})
//	sess.RegisterSource(yanglibrary.New(idx))
//	res, err := sess.Materialize(ctx, nil, types.ViewFull)
//
// An empty selector list expands to one wildcard selector per schema module
// that defines data nodes. Operations are all-or-nothing: any failure other
// than "no data for this selector" aborts the operation and releases every
// partially built tree.
package get
