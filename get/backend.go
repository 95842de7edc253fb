package get

import (
	"context"

	"github.com/netconf-go/getkit/data"
	"github.com/netconf-go/getkit/pkg/types"
)

// Backend is the configuration store a session reads from. Implementations
// must return records in any order they like; the engine reconstructs the
// tree regardless of delivery order.
type Backend interface {
	// Iterate opens a record stream for everything under selector in the
	// given datastore. Selectors are absolute paths, optionally ending in
	// the wildcard "*" ("/mod:*"). Returns ErrNoData (possibly wrapped)
	// when the store has no model or no data there; that is not a failure.
	Iterate(ctx context.Context, ds types.Datastore, selector string) (RecordIter, error)
}

// RecordIter streams records for one selector. The usual loop:
//
//	for it.Next() {
//	    rec := it.Record()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
//
// Close releases the stream and is safe to call more than once.
type RecordIter interface {
	Next() bool
	Record() data.Record
	Err() error
	Close() error
}

// VirtualSource is an auxiliary data provider with its own self-contained
// tree, addressed by a fixed path prefix (for example
// "/ietf-yang-library:"). Sources carry state data only, so configuration-
// only operations skip them without building anything.
type VirtualSource interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Prefix is the selector prefix the source owns, "/<module>:".
	Prefix() string

	// Build materializes the source's full tree. Called at most once per
	// operation; the result is cached and must not be mutated afterwards.
	Build(ctx context.Context) (*data.Tree, error)
}
