// Package memstore is an in-memory implementation of the get.Backend
// record store, used by tests and by getctl's fixture mode. Records are
// held per datastore and served through prefix-matched iterators in
// insertion order, which is as arbitrary as a real store's.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/netconf-go/getkit/data"
	"github.com/netconf-go/getkit/get"
	"github.com/netconf-go/getkit/pkg/types"
)

// Store holds records per datastore. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	recs map[types.Datastore][]entry
}

type entry struct {
	rec   data.Record
	steps []data.Step
}

// New returns an empty store.
func New() *Store {
	return &Store{recs: make(map[types.Datastore][]entry)}
}

// Add stores one record in the given datastore. The path must parse; its
// schema validity is the engine's business, not the store's.
func (s *Store) Add(ds types.Datastore, rec data.Record) error {
	steps, err := data.ParsePath(rec.Path)
	if err != nil {
		return fmt.Errorf("memstore: %w", err)
	}
	s.mu.Lock()
	s.recs[ds] = append(s.recs[ds], entry{rec: rec, steps: steps})
	s.mu.Unlock()
	return nil
}

// AddAll stores records in order, stopping at the first bad path.
func (s *Store) AddAll(ds types.Datastore, recs []data.Record) error {
	for _, r := range recs {
		if err := s.Add(ds, r); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the record count for a datastore.
func (s *Store) Len(ds types.Datastore) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recs[ds])
}

// Iterate implements get.Backend. Returns get.ErrNoData when nothing in
// the datastore falls under the selector.
func (s *Store) Iterate(ctx context.Context, ds types.Datastore, selector string) (get.RecordIter, error) {
	selSteps, err := data.ParsePath(selector)
	if err != nil {
		return nil, fmt.Errorf("memstore: selector: %w", err)
	}

	s.mu.RLock()
	var matched []data.Record
	for _, e := range s.recs[ds] {
		if underSelector(e.steps, selSteps) {
			matched = append(matched, e.rec)
		}
	}
	s.mu.RUnlock()

	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", get.ErrNoData, selector, ds)
	}
	return &iter{ctx: ctx, recs: matched, pos: -1}, nil
}

// underSelector reports whether a record's path lies at or below the
// selector. Selector steps without predicates match any instance; the
// final step may be the wildcard "*".
func underSelector(rec, sel []data.Step) bool {
	if len(rec) < len(sel) {
		return false
	}
	for i, ss := range sel {
		rs := rec[i]
		if ss.Name != "*" && ss.Name != rs.Name {
			return false
		}
		if i == 0 && ss.Module != rs.Module {
			return false
		}
		for _, kv := range ss.Keys {
			have, ok := rs.Key(kv.Name)
			if !ok || have != kv.Value {
				return false
			}
		}
	}
	return true
}

type iter struct {
	ctx  context.Context
	recs []data.Record
	pos  int
	err  error
}

func (it *iter) Next() bool {
	if it.err != nil || it.pos+1 >= len(it.recs) {
		return false
	}
	if err := it.ctx.Err(); err != nil {
		it.err = err
		return false
	}
	it.pos++
	return true
}

func (it *iter) Record() data.Record { return it.recs[it.pos] }

func (it *iter) Err() error { return it.err }

func (it *iter) Close() error { return nil }
