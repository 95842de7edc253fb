package data

import (
	"github.com/netconf-go/getkit/pkg/types"
	"github.com/netconf-go/getkit/schema"
)

// Node is one node of a data tree.
//
// Identity is structural: a container or non-keyed node is identified by its
// schema node; a list entry additionally by its key values; a leaf-list
// entry by its value. The schema reference is borrowed from the index, never
// owned. Children are owned; Parent is a non-owning back-reference.
type Node struct {
	// Schema describes the node's kind and position in the model.
	Schema *schema.Node

	// Parent is nil for top-level nodes.
	Parent *Node

	// Value is set for leaf, leaf-list, and anydata nodes.
	Value string

	// Default marks that the node's value (or, for interior nodes, the
	// entire subtree the node was instantiated for) equals the schema
	// defaults. Maintained by Upsert; see the propagation rules there.
	Default bool

	children []*Node
	keys     []KeyVal // list entries: key values in schema key order
}

// Children returns the node's children in tree order.
func (n *Node) Children() []*Node { return n.children }

// Keys returns a list entry's key values in schema key order, nil for
// non-list nodes.
func (n *Node) Keys() []KeyVal { return n.keys }

// Key returns the entry's value for the named list key.
func (n *Node) Key(name string) (string, bool) {
	for _, kv := range n.keys {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// Path returns the node's absolute, fully-keyed data path.
func (n *Node) Path() string {
	step := Step{Name: n.Schema.Name, Keys: n.keys}
	if n.Parent == nil {
		step.Module = n.Schema.Module
		return "/" + step.String()
	}
	if n.Schema.Kind == types.KindLeafList {
		step.Keys = []KeyVal{{Name: ".", Value: n.Value}}
	}
	return n.Parent.Path() + "/" + step.String()
}

// isDefaultBoundary reports whether default-flag propagation must stop at
// (and exclude) this node: presence containers and keyed list entries are
// hard boundaries, their existence is data in its own right.
func (n *Node) isDefaultBoundary() bool {
	if n.Schema.Kind == types.KindContainer && n.Schema.Presence {
		return true
	}
	return n.Schema.IsKeyedList()
}

// matchesStep reports whether the node is the instance addressed by step:
// same schema name and, for keyed lists, the same key values. A step with
// no predicates matches any entry of the list.
func (n *Node) matchesStep(step Step) bool {
	if step.Name != "*" && n.Schema.Name != step.Name {
		return false
	}
	if step.Module != "" && n.Schema.Module != step.Module {
		return false
	}
	if n.Schema.Kind == types.KindLeafList {
		if v, ok := step.Key("."); ok {
			return n.Value == v
		}
		return true
	}
	if len(step.Keys) == 0 {
		return true
	}
	for _, kv := range step.Keys {
		have, ok := n.Key(kv.Name)
		if !ok || have != kv.Value {
			return false
		}
	}
	return true
}

// sameIdentity reports whether two nodes denote the same instance: same
// schema node, same keys for list entries, same value for leaf-list entries.
func (n *Node) sameIdentity(o *Node) bool {
	if n.Schema != o.Schema {
		return false
	}
	switch {
	case n.Schema.IsKeyedList():
		for _, kv := range n.keys {
			have, ok := o.Key(kv.Name)
			if !ok || have != kv.Value {
				return false
			}
		}
		return true
	case n.Schema.Kind == types.KindLeafList:
		return n.Value == o.Value
	default:
		return true
	}
}

// insertChild places c under n keeping schema order: children of distinct
// schema nodes appear in schema order, instances of the same schema node in
// insertion order.
func (n *Node) insertChild(c *Node) {
	c.Parent = n
	at := len(n.children)
	for i, sib := range n.children {
		if sib.Schema.Position() > c.Schema.Position() {
			at = i
			break
		}
	}
	n.children = append(n.children, nil)
	copy(n.children[at+1:], n.children[at:])
	n.children[at] = c
}

// Tree is the composite forest one retrieval operation assembles. The roots
// are ordered by module name, then schema order.
type Tree struct {
	roots []*Node
}

// NewTree returns an empty tree.
func NewTree() *Tree { return &Tree{} }

// Roots returns the top-level nodes.
func (t *Tree) Roots() []*Node { return t.roots }

// Empty reports whether the tree has no nodes.
func (t *Tree) Empty() bool { return len(t.roots) == 0 }

// insertRoot places c among the roots keeping module then schema order.
func (t *Tree) insertRoot(c *Node) {
	c.Parent = nil
	at := len(t.roots)
	for i, sib := range t.roots {
		if rootAfter(sib, c) {
			at = i
			break
		}
	}
	t.roots = append(t.roots, nil)
	copy(t.roots[at+1:], t.roots[at:])
	t.roots[at] = c
}

// rootAfter reports whether existing root a sorts after new root b. Roots
// are kept in a deterministic order (module name, then schema position) so
// the final tree does not depend on record delivery order.
func rootAfter(a, b *Node) bool {
	if a.Schema.Module != b.Schema.Module {
		return a.Schema.Module > b.Schema.Module
	}
	return a.Schema.Position() > b.Schema.Position()
}

// Find returns the node at the given fully-keyed path, or nil. Steps
// without predicates match the first instance.
func (t *Tree) Find(path string) *Node {
	steps, err := ParsePath(path)
	if err != nil {
		return nil
	}
	var cur *Node
	cands := t.roots
	for _, step := range steps {
		var next *Node
		for _, c := range cands {
			if c.matchesStep(step) {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
		cands = cur.children
	}
	return cur
}

// Walk visits every node depth-first in tree order. Returning false from fn
// stops the walk.
func (t *Tree) Walk(fn func(*Node) bool) {
	for _, r := range t.roots {
		if !walkNode(r, fn) {
			return
		}
	}
}

func walkNode(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !walkNode(c, fn) {
			return false
		}
	}
	return true
}

// Len returns the total node count.
func (t *Tree) Len() int {
	count := 0
	t.Walk(func(*Node) bool { count++; return true })
	return count
}
