package data

import (
	"fmt"
	"io"
	"strings"

	"github.com/netconf-go/getkit/pkg/types"
)

// PrintOptions controls the text rendering of a tree.
type PrintOptions struct {
	// ShowDefaults appends a "[default]" marker to default-flagged nodes.
	ShowDefaults bool

	// MaxDepth limits recursion; 0 means unlimited.
	MaxDepth int
}

// Print writes an indented text rendering of the tree, one node per line:
//
//	example:system
//	  hostname = "r1" [default]
//	  server[name='a']
//	    name = "a"
//
// Useful for debugging and the getctl text output.
func (t *Tree) Print(w io.Writer, opts PrintOptions) error {
	for _, r := range t.roots {
		if err := printNode(w, r, 0, opts); err != nil {
			return err
		}
	}
	return nil
}

func printNode(w io.Writer, n *Node, depth int, opts PrintOptions) error {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	if depth == 0 {
		b.WriteString(n.Schema.Module)
		b.WriteByte(':')
	}
	b.WriteString(n.Schema.Name)
	for _, kv := range n.keys {
		fmt.Fprintf(&b, "[%s='%s']", kv.Name, kv.Value)
	}
	if n.Schema.Kind.HasValue() {
		fmt.Fprintf(&b, " = %q", n.Value)
	}
	if opts.ShowDefaults && n.Default {
		b.WriteString(" [default]")
	}
	if n.Schema.Kind == types.KindContainer && n.Schema.Presence && len(n.children) == 0 {
		b.WriteString(" (present)")
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := printNode(w, c, depth+1, opts); err != nil {
			return err
		}
	}
	return nil
}
