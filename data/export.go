package data

import (
	"github.com/ohler55/ojg/oj"

	"github.com/netconf-go/getkit/pkg/types"
)

// Export converts the tree to generic JSON-ready data, in the shape JSON
// encodings of YANG data use: top-level names are "module:name", containers
// become objects, lists arrays of objects, leaf-lists arrays of values.
func (t *Tree) Export() map[string]any {
	out := make(map[string]any)
	for _, r := range t.roots {
		exportInto(out, r, true)
	}
	return out
}

// ExportJSON renders the tree as indented JSON text.
func (t *Tree) ExportJSON() string {
	return oj.JSON(t.Export(), 2)
}

func exportInto(obj map[string]any, n *Node, top bool) {
	name := n.Schema.Name
	if top {
		name = n.Schema.Module + ":" + name
	}
	switch n.Schema.Kind {
	case types.KindLeaf, types.KindAnydata:
		obj[name] = n.Value
	case types.KindLeafList:
		arr, _ := obj[name].([]any)
		obj[name] = append(arr, any(n.Value))
	case types.KindList:
		arr, _ := obj[name].([]any)
		obj[name] = append(arr, exportObject(n))
	default:
		obj[name] = exportObject(n)
	}
}

func exportObject(n *Node) map[string]any {
	obj := make(map[string]any)
	for _, c := range n.children {
		exportInto(obj, c, false)
	}
	return obj
}
