// Package validate checks a finished composite tree against the schema
// before it is handed to the reply layer. The inputs to materialization are
// already schema-checked, so a failure here points at an engine defect and
// is always fatal for the operation.
package validate

import (
	"fmt"

	"github.com/netconf-go/getkit/data"
	"github.com/netconf-go/getkit/pkg/types"
	"github.com/netconf-go/getkit/schema"
)

// Tree validates structure, keys, values, and view admission:
//
//   - every node's schema parent matches its structural parent's schema
//     (top-level nodes must have top-level schemas);
//   - keyed list entries carry all their key leaves, with values matching
//     the entry's identity;
//   - value-bearing kinds and only value-bearing kinds carry values
//     (empty-string leaf values are legal);
//   - a configuration-only tree contains no state nodes.
//
// Mandatory-presence is deliberately not enforced: a selector may
// legitimately cut below a mandatory leaf's parent, the way get-mode
// validation is relaxed in NETCONF servers.
func Tree(idx *schema.Index, t *data.Tree, mode types.ViewMode) error {
	for _, r := range t.Roots() {
		if r.Schema.Parent != nil {
			return fmt.Errorf("node %s: non-top-level schema at tree root", r.Path())
		}
		if idx.Module(r.Schema.Module) == nil {
			return fmt.Errorf("node %s: schema module %q is not registered", r.Path(), r.Schema.Module)
		}
		if err := validateNode(r, mode); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n *data.Node, mode types.ViewMode) error {
	sn := n.Schema
	if mode == types.ViewConfigOnly && sn.State {
		return fmt.Errorf("node %s: state data in a configuration-only tree", n.Path())
	}
	if !sn.Kind.HasValue() && n.Value != "" {
		return fmt.Errorf("node %s: %s carries a value", n.Path(), sn.Kind)
	}

	if sn.IsKeyedList() {
		if err := validateKeys(n); err != nil {
			return err
		}
	}

	for _, c := range n.Children() {
		if c.Parent != n {
			return fmt.Errorf("node %s: broken parent link", c.Path())
		}
		if c.Schema.Parent != sn {
			return fmt.Errorf("node %s: schema parent does not match structural parent", c.Path())
		}
		if err := validateNode(c, mode); err != nil {
			return err
		}
	}
	return nil
}

// validateKeys checks a list entry's key leaves against its identity.
func validateKeys(n *data.Node) error {
	for _, key := range n.Schema.Keys {
		want, ok := n.Key(key)
		if !ok {
			return fmt.Errorf("node %s: entry identity is missing key %q", n.Path(), key)
		}
		var leaf *data.Node
		for _, c := range n.Children() {
			if c.Schema.Name == key {
				leaf = c
				break
			}
		}
		if leaf == nil {
			return fmt.Errorf("node %s: key leaf %q is absent", n.Path(), key)
		}
		if leaf.Value != want {
			return fmt.Errorf("node %s: key leaf %q is %q, identity says %q", n.Path(), key, leaf.Value, want)
		}
	}
	return nil
}

