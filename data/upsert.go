package data

import (
	"errors"
	"fmt"

	"github.com/netconf-go/getkit/pkg/types"
	"github.com/netconf-go/getkit/schema"
)

// ErrSchemaMismatch is returned when a record's path does not resolve
// against the schema index, including incomplete list keys.
var ErrSchemaMismatch = errors.New("record path does not match schema")

// Record is one backend datum: an absolute fully-keyed path, a scalar value
// for value-bearing kinds, and the backend's default flag.
type Record struct {
	Path    string `json:"path"`
	Value   string `json:"value,omitempty"`
	Default bool   `json:"default,omitempty"`
}

// Upsert applies one record to the tree, creating missing ancestors on
// demand, and returns the target node.
//
// Structure is idempotent: segments that already exist (matched by schema
// identity plus key values) are reused, never duplicated. Newly created
// nodes are tracked for the duration of the call and default-flag
// propagation walks only that set:
//
//   - A default record marks the target and then walks upward through the
//     ancestors created by this same call, marking each default. The walk
//     stops before any presence container or keyed list entry; their
//     existence is significant data and is never implied default.
//   - A default record that neither created its target nor changed its
//     value is a no-op: propagation does not run at all, so a repeat of an
//     earlier record cannot re-mark anything.
//   - A non-default record clears the default flag on every currently
//     default ancestor, all the way up. This downgrade is monotonic: later
//     default records never re-mark a cleared node, because the no-op gate
//     above and the created-set bound together keep the upward walk off
//     pre-existing nodes.
//
// Fails with ErrSchemaMismatch if the path does not resolve (wrapped with
// the offending segment) or ErrBadValue if the value does not fit the
// target kind.
func (t *Tree) Upsert(idx *schema.Index, rec Record) (*Node, error) {
	steps, err := ParsePath(rec.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	// Resolve the full schema chain up front so a bad path creates nothing.
	snodes, err := resolveSteps(idx, rec.Path, steps)
	if err != nil {
		return nil, err
	}
	target := snodes[len(snodes)-1]

	// A leaf-list instance's value may arrive either as the record value or
	// as a "[.='v']" predicate on the final step; normalize to one value.
	val := rec.Value
	if target.Kind == types.KindLeafList && val == "" {
		if v, ok := steps[len(steps)-1].Key("."); ok {
			val = v
		}
	}
	if err := checkValue(target, val); err != nil {
		return nil, err
	}

	created := make(map[*Node]bool)
	var cur *Node
	for i, step := range steps {
		sn := snodes[i]
		next := t.findChild(cur, sn, step, val)
		if next == nil {
			next = t.newNode(sn, step, created)
			if cur == nil {
				t.insertRoot(next)
			} else {
				cur.insertChild(next)
			}
			created[next] = true
		}
		cur = next
	}

	changed := created[cur]
	if target.Kind.HasValue() && cur.Value != val {
		cur.Value = val
		changed = true
	}
	// A default record whose target already existed with the same value is
	// a no-op upsert; marking would undo an earlier downgrade. Downgrades
	// themselves always run.
	if !rec.Default || changed {
		t.propagate(cur, rec.Default, created)
	}
	return cur, nil
}

// findChild locates an existing instance for step under parent (nil parent
// means the tree roots). Leaf-list instances are matched by value.
func (t *Tree) findChild(parent *Node, sn *schema.Node, step Step, val string) *Node {
	cands := t.roots
	if parent != nil {
		cands = parent.children
	}
	for _, c := range cands {
		if c.Schema != sn {
			continue
		}
		if sn.Kind == types.KindLeafList {
			if c.Value == val {
				return c
			}
			continue
		}
		if c.matchesStep(step) {
			return c
		}
	}
	return nil
}

// newNode builds a node for step. Keyed-list entries get their key leaves
// instantiated immediately, the way the path's predicates spell them;
// resolveSteps has already checked the predicates are complete and legal.
func (t *Tree) newNode(sn *schema.Node, step Step, created map[*Node]bool) *Node {
	n := &Node{Schema: sn}
	if sn.IsKeyedList() {
		for _, keyName := range sn.Keys {
			v, _ := step.Key(keyName)
			n.keys = append(n.keys, KeyVal{Name: keyName, Value: v})
		}
		for _, kv := range n.keys {
			key := &Node{Schema: sn.Child(kv.Name), Value: kv.Value}
			n.insertChild(key)
			created[key] = true
		}
	}
	return n
}

// propagate applies the default-flag rules after the target node has been
// upserted. created is the set of nodes instantiated by this same call;
// the default walk never leaves it.
func (t *Tree) propagate(target *Node, dflt bool, created map[*Node]bool) {
	if dflt {
		for n := target; n != nil; n = n.Parent {
			if n.isDefaultBoundary() {
				break
			}
			if n != target && !created[n] {
				break
			}
			n.Default = true
		}
		return
	}

	target.Default = false
	for n := target.Parent; n != nil && n.Default; n = n.Parent {
		n.Default = false
	}
}

// resolveSteps maps every step to its schema node, failing on the first
// segment that does not resolve to a data node.
func resolveSteps(idx *schema.Index, path string, steps []Step) ([]*schema.Node, error) {
	snodes := make([]*schema.Node, len(steps))
	var cur *schema.Node
	for i, step := range steps {
		if i == 0 {
			if step.Module == "" {
				return nil, fmt.Errorf("%w: %q: first segment must carry a module prefix", ErrSchemaMismatch, path)
			}
			m := idx.Module(step.Module)
			if m == nil {
				return nil, fmt.Errorf("%w: %q: unknown module %q", ErrSchemaMismatch, path, step.Module)
			}
			cur = m.Node(step.Name)
		} else {
			if step.Module != "" && step.Module != cur.Module {
				return nil, fmt.Errorf("%w: %q: cross-module segment %q", ErrSchemaMismatch, path, step.Name)
			}
			if cur.Kind.HasValue() {
				return nil, fmt.Errorf("%w: %q: %s %s has no children", ErrSchemaMismatch, path, cur.Kind, cur.PathString())
			}
			cur = cur.Child(step.Name)
		}
		if cur == nil {
			return nil, fmt.Errorf("%w: %q: segment %q does not resolve", ErrSchemaMismatch, path, step.Name)
		}
		if !cur.Kind.IsData() {
			return nil, fmt.Errorf("%w: %q: segment %q addresses a non-data node", ErrSchemaMismatch, path, step.Name)
		}
		// Record paths are fully keyed: every keyed list step must spell
		// out all its keys, or entries could not be told apart. Predicates
		// on anything else (leaf-list value predicates aside) are rejected
		// here, before any node exists, so a bad path creates nothing.
		switch {
		case cur.IsKeyedList():
			for _, k := range cur.Keys {
				if _, ok := step.Key(k); !ok {
					return nil, fmt.Errorf("%w: %q: list %s requires key %q", ErrSchemaMismatch, path, cur.PathString(), k)
				}
			}
		case cur.Kind == types.KindLeafList:
			// A "[.='v']" value predicate addresses the instance.
		default:
			if len(step.Keys) > 0 {
				return nil, fmt.Errorf("%w: %q: %s %s does not take predicates", ErrSchemaMismatch, path, cur.Kind, cur.PathString())
			}
		}
		snodes[i] = cur
	}
	return snodes, nil
}
