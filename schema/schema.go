package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/netconf-go/getkit/pkg/types"
)

// ErrNotFound is returned by lookups for paths that do not resolve to a
// schema node.
var ErrNotFound = errors.New("schema node not found")

// Node is one node of a module's schema tree. Nodes are immutable once
// their module is registered with an Index.
type Node struct {
	// Name is the node's name within its module.
	Name string

	// Module is the name of the defining module.
	Module string

	// Kind is what sort of data node this describes.
	Kind types.SchemaKind

	// Presence marks a presence container: one whose existence is itself
	// meaningful data. Only meaningful for KindContainer.
	Presence bool

	// Keys holds the key leaf names of a list, in schema order. A list
	// with no keys behaves like a plain interior node for default-flag
	// purposes.
	Keys []string

	// State is true for state (config false) data. State nodes are
	// excluded from configuration-only views. State-ness is inherited:
	// everything under a state node is state.
	State bool

	// Mandatory marks a leaf that must be present whenever its parent
	// exists. Model metadata; retrieval-side validation does not enforce
	// it (a selector may cut below the parent).
	Mandatory bool

	// Type is the scalar type name for value-bearing kinds. An empty
	// type means "string" (no coercion check).
	Type string

	// Default is the schema-declared default value, if any. The engine
	// never computes defaults from it; it is metadata for the reply layer.
	Default string

	// Parent is nil for top-level nodes.
	Parent *Node

	// Children are in schema order.
	Children []*Node

	pos int // index within parent (or module top level)
}

// Child returns the named child, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Position returns the node's index among its siblings in schema order.
func (n *Node) Position() int { return n.pos }

// IsKeyedList reports whether the node is a list with at least one key.
func (n *Node) IsKeyedList() bool {
	return n.Kind == types.KindList && len(n.Keys) > 0
}

// IsKey reports whether the node is a key leaf of its parent list.
func (n *Node) IsKey() bool {
	if n.Parent == nil || n.Parent.Kind != types.KindList {
		return false
	}
	for _, k := range n.Parent.Keys {
		if k == n.Name {
			return true
		}
	}
	return false
}

// PathString returns the node's absolute schema path, e.g. "/mod:a/b".
func (n *Node) PathString() string {
	if n.Parent == nil {
		return "/" + n.Module + ":" + n.Name
	}
	return n.Parent.PathString() + "/" + n.Name
}

// Module is one registered schema module: a name, some metadata, and an
// ordered set of top-level schema nodes.
type Module struct {
	Name      string
	Namespace string
	Revision  string

	nodes []*Node
	pos   int // registration order within the index
}

// Nodes returns the module's top-level schema nodes in schema order.
func (m *Module) Nodes() []*Node { return m.nodes }

// Node returns the named top-level node, or nil.
func (m *Module) Node(name string) *Node {
	for _, n := range m.nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Position returns the module's registration order within its index.
func (m *Module) Position() int { return m.pos }

// HasData reports whether the module defines at least one data node (as
// opposed to only RPCs and notifications). Modules without data are skipped
// when expanding the default wildcard selector set.
func (m *Module) HasData() bool {
	for _, n := range m.nodes {
		if n.Kind.IsData() {
			return true
		}
	}
	return false
}

// Index is the process-wide schema repository. Register every module before
// serving; lookups are read-only and safe for concurrent use afterwards.
type Index struct {
	modules map[string]*Module
	order   []*Module
}

// NewIndex returns an index holding the given modules, in order.
func NewIndex(mods ...*Module) (*Index, error) {
	ix := &Index{modules: make(map[string]*Module)}
	for _, m := range mods {
		if err := ix.Add(m); err != nil {
			return nil, err
		}
	}
	return ix, nil
}

// Add registers a module. Module names must be unique.
func (ix *Index) Add(m *Module) error {
	if m.Name == "" {
		return errors.New("module name must not be empty")
	}
	if _, dup := ix.modules[m.Name]; dup {
		return fmt.Errorf("module %q already registered", m.Name)
	}
	m.pos = len(ix.order)
	ix.modules[m.Name] = m
	ix.order = append(ix.order, m)
	return nil
}

// Module returns the named module, or nil.
func (ix *Index) Module(name string) *Module {
	return ix.modules[name]
}

// Modules returns all registered modules in registration order.
func (ix *Index) Modules() []*Module { return ix.order }

// Lookup resolves an absolute data path ("/mod:a/b/c") to its schema node.
// List-key predicates ("[name='x']") are ignored; only the structural path
// matters. Returns ErrNotFound (wrapped with the failing path) if any
// segment does not resolve.
func (ix *Index) Lookup(path string) (*Node, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrNotFound)
	}

	var cur *Node
	for i, seg := range segs {
		mod, name := splitSegment(seg)
		if i == 0 {
			if mod == "" {
				return nil, fmt.Errorf("%w: %q: first segment must carry a module prefix", ErrNotFound, path)
			}
			m := ix.Module(mod)
			if m == nil {
				return nil, fmt.Errorf("%w: module %q", ErrNotFound, mod)
			}
			cur = m.Node(name)
		} else {
			if mod != "" && mod != cur.Module {
				// Augments from foreign modules are out of scope.
				return nil, fmt.Errorf("%w: %q: cross-module segment %q", ErrNotFound, path, seg)
			}
			cur = cur.Child(name)
		}
		if cur == nil {
			return nil, fmt.Errorf("%w: %q (segment %q)", ErrNotFound, path, seg)
		}
		if !cur.Kind.IsData() {
			return nil, fmt.Errorf("%w: %q addresses non-data node %q", ErrNotFound, path, seg)
		}
	}
	return cur, nil
}

// splitPath splits an absolute data path into raw segments, dropping any
// key predicates. Predicate bodies may contain quoted '/' characters.
func splitPath(path string) ([]string, error) {
	if path == "" || path[0] != '/' {
		return nil, fmt.Errorf("%w: path %q is not absolute", ErrNotFound, path)
	}
	var segs []string
	var cur strings.Builder
	depth := 0
	var quote byte
	for i := 1; i < len(path); i++ {
		ch := path[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '[':
			depth++
		case ch == ']':
			depth--
		case ch == '/' && depth == 0:
			if cur.Len() == 0 {
				return nil, fmt.Errorf("%w: path %q has an empty segment", ErrNotFound, path)
			}
			segs = append(segs, cur.String())
			cur.Reset()
			continue
		}
		if depth == 0 && ch != '[' && ch != ']' {
			cur.WriteByte(ch)
		}
	}
	if cur.Len() > 0 {
		segs = append(segs, cur.String())
	}
	return segs, nil
}

// splitSegment splits "mod:name" into its parts; mod is "" when absent.
func splitSegment(seg string) (mod, name string) {
	if i := strings.IndexByte(seg, ':'); i >= 0 {
		return seg[:i], seg[i+1:]
	}
	return "", seg
}
