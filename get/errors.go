package get

import (
	"errors"

	"github.com/netconf-go/getkit/data"
)

// Failure taxonomy for a retrieval operation. Every failure aborts the
// whole operation; discriminate with errors.Is.
var (
	// ErrSchemaMismatch: a backend record's path did not resolve against
	// the schema index.
	ErrSchemaMismatch = data.ErrSchemaMismatch

	// ErrBadRecord: a backend record's value did not fit its target node.
	ErrBadRecord = data.ErrBadValue

	// ErrNoData is returned by Backend.Iterate when the store has no model
	// or no data under a selector. It is the one backend condition that is
	// NOT a failure: the selector simply contributes nothing.
	ErrNoData = errors.New("no data for selector")

	// ErrBackend: any store-level failure other than ErrNoData.
	ErrBackend = errors.New("backend failure")

	// ErrSourceBuild: a virtual source failed to build its tree.
	ErrSourceBuild = errors.New("virtual source build failed")

	// ErrValidation: the finished composite tree failed schema validation.
	// The inputs were already schema-checked, so this indicates an engine
	// defect, not a user error.
	ErrValidation = errors.New("materialized tree failed validation")
)
