package get

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/netconf-go/getkit/data"
	"github.com/netconf-go/getkit/get/validate"
	"github.com/netconf-go/getkit/pkg/types"
)

// Result is the outcome of one successful materialization.
type Result struct {
	// Tree is the composite tree; ownership passes to the caller.
	Tree *data.Tree

	// Mode is the view the tree was assembled for.
	Mode types.ViewMode

	// WithDefaults is the disclosure mode for the reply layer, carried
	// through opaquely.
	WithDefaults types.WithDefaultsMode

	// Stats describes the operation.
	Stats Stats
}

// operation is the per-call state: the composite tree under construction
// and the virtual-source cache. Both live exactly as long as the call.
type operation struct {
	id   string
	tree *data.Tree
	mu   sync.Mutex // serializes composite-tree mutation
	srcs map[string]*data.Tree
	st   Stats
}

// release drops every partially built tree. Called on all failure paths;
// on success the composite tree's ownership moves to the Result instead.
func (op *operation) release() {
	op.tree = nil
	for name := range op.srcs {
		delete(op.srcs, name)
	}
}

// Materialize assembles one composite tree for the given selectors and
// view mode. A nil or empty selector list expands to one wildcard selector
// per module with data definitions.
//
// Selectors owned by a registered virtual source are served by grafting
// deep copies out of the source's tree (built at most once per operation,
// skipped entirely in configuration-only mode). All other selectors stream
// records from the backend into the composite tree. A backend "no data"
// condition contributes zero records and is not a failure.
//
// Any other failure aborts the whole operation: the partial composite tree
// and all cached source trees are released before the error is returned.
func (s *Session) Materialize(ctx context.Context, selectors []string, mode types.ViewMode) (*Result, error) {
	start := time.Now()
	if len(selectors) == 0 {
		selectors = DefaultSelectors(s.idx)
	}

	op := &operation{
		id:   newOperationID(),
		tree: data.NewTree(),
		srcs: make(map[string]*data.Tree),
	}
	op.st.Selectors = len(selectors)

	for _, sel := range selectors {
		if err := ctx.Err(); err != nil {
			op.release()
			return nil, fmt.Errorf("operation %s aborted: %w", op.id, err)
		}
		if err := s.resolve(ctx, op, sel, mode); err != nil {
			op.release()
			return nil, fmt.Errorf("operation %s: %w", op.id, err)
		}
	}

	if !s.opt.SkipValidation {
		if err := validate.Tree(s.idx, op.tree, mode); err != nil {
			op.release()
			return nil, fmt.Errorf("operation %s: %w: %v", op.id, ErrValidation, err)
		}
	}

	res := &Result{
		Tree:         op.tree,
		Mode:         mode,
		WithDefaults: s.opt.WithDefaults,
		Stats:        op.st,
	}
	res.Stats.Nodes = op.tree.Len()
	res.Stats.Elapsed = time.Since(start)
	op.tree = nil // ownership handed off

	s.log.Debug("materialize done",
		"operation", op.id,
		"mode", mode.String(),
		"selectors", res.Stats.Selectors,
		"records", res.Stats.Records,
		"nodes", res.Stats.Nodes,
		"elapsed", res.Stats.Elapsed)
	return res, nil
}

// resolve handles one selector: classify it, then either stream backend
// records into the composite tree or graft from the owning virtual source.
func (s *Session) resolve(ctx context.Context, op *operation, sel string, mode types.ViewMode) error {
	if src := s.classify(sel); src != nil {
		if mode == types.ViewConfigOnly {
			// Virtual sources carry state data only; nothing to do, and
			// the source tree is not even built.
			op.st.SkippedSelectors++
			s.log.Debug("selector skipped in config-only mode", "operation", op.id, "selector", sel)
			return nil
		}
		return s.graftSource(ctx, op, src, sel)
	}
	return s.streamBackend(ctx, op, sel)
}

// streamBackend feeds every record under sel through the upsert engine.
func (s *Session) streamBackend(ctx context.Context, op *operation, sel string) error {
	it, err := s.backend.Iterate(ctx, s.opt.Datastore, sel)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			// Model without data; the selector contributes nothing.
			return nil
		}
		return fmt.Errorf("%w: selector %q: %v", ErrBackend, sel, err)
	}
	defer it.Close()

	n := 0
	for it.Next() {
		rec := it.Record()
		op.mu.Lock()
		_, err := op.tree.Upsert(s.idx, rec)
		op.mu.Unlock()
		if err != nil {
			return fmt.Errorf("selector %q: record %q: %w", sel, rec.Path, err)
		}
		n++
	}
	if err := it.Err(); err != nil {
		if errors.Is(err, ErrNoData) {
			return nil
		}
		return fmt.Errorf("%w: selector %q: %v", ErrBackend, sel, err)
	}
	op.st.Records += n
	s.log.Debug("selector streamed", "operation", op.id, "selector", sel, "records", n)
	return nil
}

// graftSource grafts the subtree matching sel out of the source's tree,
// building and caching the tree on first use within this operation.
func (s *Session) graftSource(ctx context.Context, op *operation, src VirtualSource, sel string) error {
	tree, ok := op.srcs[src.Name()]
	if !ok {
		var err error
		tree, err = src.Build(ctx)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSourceBuild, src.Name(), err)
		}
		op.srcs[src.Name()] = tree
		op.st.SourceBuilds++
		s.log.Debug("virtual source built", "operation", op.id, "source", src.Name())
	}

	op.mu.Lock()
	n, err := op.tree.GraftFrom(tree, sel)
	op.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%w: %s: selector %q: %v", ErrSourceBuild, src.Name(), sel, err)
	}
	op.st.Grafts += n
	return nil
}
