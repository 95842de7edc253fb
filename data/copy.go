package data

import (
	"fmt"

	"github.com/netconf-go/getkit/pkg/types"
)

// Clone returns a deep, independently-owned copy of the node and its
// subtree. The schema references are shared (they are immutable); Parent is
// nil until the copy is inserted somewhere.
func (n *Node) Clone() *Node {
	c := &Node{
		Schema:  n.Schema,
		Value:   n.Value,
		Default: n.Default,
	}
	if len(n.keys) > 0 {
		c.keys = make([]KeyVal, len(n.keys))
		copy(c.keys, n.keys)
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.Parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// Clone returns a deep copy of the whole tree.
func (t *Tree) Clone() *Tree {
	ct := NewTree()
	for _, r := range t.roots {
		ct.roots = append(ct.roots, r.Clone())
	}
	return ct
}

// GraftFrom copies every subtree of src matching selector into t, creating
// the matched nodes' ancestor chains as needed. The copies are deep and
// independently owned: src is never aliased or mutated, so a cached
// virtual-source tree stays pristine across selectors.
//
// Steps without predicates match every instance; the final step may be the
// wildcard "*" ("/mod:*" grafts all of a module's top-level nodes). Zero
// matches is not an error. Returns the number of subtrees grafted.
func (t *Tree) GraftFrom(src *Tree, selector string) (int, error) {
	steps, err := ParsePath(selector)
	if err != nil {
		return 0, fmt.Errorf("graft selector: %w", err)
	}

	var matches []*Node
	collectMatches(src.roots, steps, &matches)
	for _, m := range matches {
		t.graftNode(m)
	}
	return len(matches), nil
}

// collectMatches gathers every node whose ancestor-path matches steps.
func collectMatches(cands []*Node, steps []Step, out *[]*Node) {
	if len(steps) == 0 {
		return
	}
	for _, c := range cands {
		if !c.matchesStep(steps[0]) {
			continue
		}
		if len(steps) == 1 {
			*out = append(*out, c)
			continue
		}
		collectMatches(c.children, steps[1:], out)
	}
}

// graftNode splices a deep copy of src under t, recreating src's ancestor
// chain. Ancestors are copied shallowly (plus key leaves for list entries,
// which identify the entry); the matched node itself is copied deeply. If
// the node already exists in t the two subtrees are merged instead.
func (t *Tree) graftNode(src *Node) {
	var chain []*Node
	for n := src; n != nil; n = n.Parent {
		chain = append(chain, n)
	}
	// chain is leaf-first; walk it top-down.
	var parent *Node
	for i := len(chain) - 1; i > 0; i-- {
		parent = t.ensureAncestor(parent, chain[i])
	}

	cands := t.roots
	if parent != nil {
		cands = parent.children
	}
	for _, existing := range cands {
		if existing.sameIdentity(src) {
			mergeNode(existing, src)
			return
		}
	}
	c := src.Clone()
	if parent == nil {
		t.insertRoot(c)
	} else {
		parent.insertChild(c)
	}
}

// ensureAncestor finds or creates the instance of a under parent (nil
// parent means the roots), copying identity but not the full subtree.
func (t *Tree) ensureAncestor(parent, a *Node) *Node {
	cands := t.roots
	if parent != nil {
		cands = parent.children
	}
	for _, existing := range cands {
		if existing.sameIdentity(a) {
			return existing
		}
	}

	c := &Node{Schema: a.Schema, Default: a.Default}
	if len(a.keys) > 0 {
		c.keys = make([]KeyVal, len(a.keys))
		copy(c.keys, a.keys)
		for _, child := range a.children {
			if child.Schema.IsKey() {
				cc := child.Clone()
				c.insertChild(cc)
			}
		}
	}
	if parent == nil {
		t.insertRoot(c)
	} else {
		parent.insertChild(c)
	}
	return c
}

// mergeNode folds src's subtree into dst without creating duplicates.
// Existing nodes keep their value and default flag; only children missing
// from dst are copied over.
func mergeNode(dst, src *Node) {
	for _, sc := range src.children {
		var found *Node
		for _, dc := range dst.children {
			if dc.sameIdentity(sc) {
				found = dc
				break
			}
		}
		if found == nil {
			dst.insertChild(sc.Clone())
			continue
		}
		if found.Schema.Kind == types.KindContainer || found.Schema.Kind == types.KindList {
			mergeNode(found, sc)
		}
	}
}
