package schema

import (
	"fmt"

	"github.com/netconf-go/getkit/pkg/types"
)

// Builder assembles a Module programmatically. It is the test-and-embedded
// counterpart of the JSON loader in load.go.
//
// Nodes are addressed by their slash-separated path within the module
// (no module prefix, no predicates):
//
//	b := schema.NewModule("example", "urn:example", "2025-01-01")
//	b.Container("system", false)
//	b.Leaf("system/hostname", schema.LeafOpts{Default: "router"})
//	b.List("system/server", "name")
//	b.Leaf("system/server/name", schema.LeafOpts{})
//	mod, err := b.Build()
type Builder struct {
	mod *Module
	err error
}

// LeafOpts carries the optional attributes of a leaf or leaf-list.
type LeafOpts struct {
	Type      string // scalar type name; "" means string
	Default   string
	Mandatory bool
	State     bool // config false
}

// NewModule starts building a module.
func NewModule(name, namespace, revision string) *Builder {
	return &Builder{mod: &Module{Name: name, Namespace: namespace, Revision: revision}}
}

// Container adds a container node.
func (b *Builder) Container(path string, presence bool) *Builder {
	b.add(path, &Node{Kind: types.KindContainer, Presence: presence})
	return b
}

// StateContainer adds a config-false container node.
func (b *Builder) StateContainer(path string, presence bool) *Builder {
	b.add(path, &Node{Kind: types.KindContainer, Presence: presence, State: true})
	return b
}

// List adds a list node with the given key leaf names. The key leaves
// themselves must be added separately.
func (b *Builder) List(path string, keys ...string) *Builder {
	b.add(path, &Node{Kind: types.KindList, Keys: keys})
	return b
}

// Leaf adds a leaf node.
func (b *Builder) Leaf(path string, opts LeafOpts) *Builder {
	b.add(path, &Node{
		Kind:      types.KindLeaf,
		Type:      opts.Type,
		Default:   opts.Default,
		Mandatory: opts.Mandatory,
		State:     opts.State,
	})
	return b
}

// LeafList adds a leaf-list node.
func (b *Builder) LeafList(path string, opts LeafOpts) *Builder {
	b.add(path, &Node{Kind: types.KindLeafList, Type: opts.Type, State: opts.State})
	return b
}

// Anydata adds an anydata node.
func (b *Builder) Anydata(path string) *Builder {
	b.add(path, &Node{Kind: types.KindAnydata})
	return b
}

// RPC adds an RPC definition. RPCs are not addressable as data; they only
// affect whether the module counts as having data definitions.
func (b *Builder) RPC(name string) *Builder {
	b.add(name, &Node{Kind: types.KindRPC})
	return b
}

// Notification adds a notification definition.
func (b *Builder) Notification(name string) *Builder {
	b.add(name, &Node{Kind: types.KindNotification})
	return b
}

// Build finalizes the module. It fails if any path did not resolve, a list
// key leaf is missing, or a node was defined twice.
func (b *Builder) Build() (*Module, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := checkKeys(b.mod.nodes); err != nil {
		return nil, fmt.Errorf("module %s: %w", b.mod.Name, err)
	}
	return b.mod, nil
}

// add places a node at path, creating nothing implicitly: the parent must
// already have been added.
func (b *Builder) add(path string, n *Node) {
	if b.err != nil {
		return
	}
	parent, name, err := b.locateParent(path)
	if err != nil {
		b.err = err
		return
	}
	n.Name = name
	n.Module = b.mod.Name
	if parent == nil {
		if b.mod.Node(name) != nil {
			b.err = fmt.Errorf("module %s: node %q defined twice", b.mod.Name, path)
			return
		}
		n.pos = len(b.mod.nodes)
		b.mod.nodes = append(b.mod.nodes, n)
		return
	}
	if parent.Child(name) != nil {
		b.err = fmt.Errorf("module %s: node %q defined twice", b.mod.Name, path)
		return
	}
	// State-ness is inherited: anything under a config-false node is state.
	if parent.State {
		n.State = true
	}
	n.Parent = parent
	n.pos = len(parent.Children)
	parent.Children = append(parent.Children, n)
}

func (b *Builder) locateParent(path string) (*Node, string, error) {
	segs := splitModulePath(path)
	if len(segs) == 0 {
		return nil, "", fmt.Errorf("module %s: empty node path", b.mod.Name)
	}
	if len(segs) == 1 {
		return nil, segs[0], nil
	}
	cur := b.mod.Node(segs[0])
	if cur == nil {
		return nil, "", fmt.Errorf("module %s: %q: unknown node %q", b.mod.Name, path, segs[0])
	}
	for _, seg := range segs[1 : len(segs)-1] {
		cur = cur.Child(seg)
		if cur == nil {
			return nil, "", fmt.Errorf("module %s: %q: unknown node %q", b.mod.Name, path, seg)
		}
	}
	return cur, segs[len(segs)-1], nil
}

// checkKeys verifies every keyed list has a leaf child per declared key.
func checkKeys(nodes []*Node) error {
	for _, n := range nodes {
		if n.Kind == types.KindList {
			for _, k := range n.Keys {
				kc := n.Child(k)
				if kc == nil || kc.Kind != types.KindLeaf {
					return fmt.Errorf("list %q: key %q has no leaf definition", n.PathString(), k)
				}
			}
		}
		if err := checkKeys(n.Children); err != nil {
			return err
		}
	}
	return nil
}

func splitModulePath(path string) []string {
	var segs []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			if i > start {
				segs = append(segs, path[start:i])
			}
			start = i + 1
		}
	}
	if start < len(path) {
		segs = append(segs, path[start:])
	}
	return segs
}
