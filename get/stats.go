package get

import "time"

// Stats describes what one materialization operation did.
type Stats struct {
	// Selectors is the number of selectors processed, after default
	// expansion.
	Selectors int

	// SkippedSelectors counts virtual-source selectors skipped because the
	// operation was configuration-only.
	SkippedSelectors int

	// Records is the number of backend records upserted.
	Records int

	// SourceBuilds counts virtual-source trees built (at most one per
	// source per operation).
	SourceBuilds int

	// Grafts is the number of virtual-source subtrees grafted into the
	// composite tree.
	Grafts int

	// Nodes is the final composite tree's node count.
	Nodes int

	// Elapsed is the operation's wall-clock duration.
	Elapsed time.Duration
}
