package schema

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg/oj"

	"github.com/netconf-go/getkit/pkg/types"
)

// Load parses a JSON module definition. The format mirrors the Builder API:
//
//	{
//	  "module": "example",
//	  "namespace": "urn:example",
//	  "revision": "2025-01-01",
//	  "nodes": [
//	    {"name": "system", "kind": "container", "children": [
//	      {"name": "hostname", "kind": "leaf", "default": "router"},
//	      {"name": "ntp", "kind": "container", "presence": true},
//	      {"name": "server", "kind": "list", "keys": ["name"], "children": [
//	        {"name": "name", "kind": "leaf"},
//	        {"name": "address", "kind": "leaf", "mandatory": true}
//	      ]}
//	    ]}
//	  ]
//	}
//
// Recognized node attributes: name, kind, presence, keys, state, mandatory,
// type, default, children.
func Load(src []byte) (*Module, error) {
	v, err := oj.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse module definition: %w", err)
	}
	top, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("module definition must be a JSON object, got %T", v)
	}

	name, _ := top["module"].(string)
	if name == "" {
		return nil, fmt.Errorf("module definition has no \"module\" name")
	}
	ns, _ := top["namespace"].(string)
	rev, _ := top["revision"].(string)
	mod := &Module{Name: name, Namespace: ns, Revision: rev}

	nodes, _ := top["nodes"].([]any)
	for _, raw := range nodes {
		n, err := decodeNode(raw, mod.Name, nil, len(mod.nodes))
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", name, err)
		}
		mod.nodes = append(mod.nodes, n)
	}
	if err := checkKeys(mod.nodes); err != nil {
		return nil, fmt.Errorf("module %s: %w", name, err)
	}
	return mod, nil
}

// LoadFile reads and parses a JSON module definition file.
func LoadFile(path string) (*Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module definition: %w", err)
	}
	mod, err := Load(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mod, nil
}

func decodeNode(raw any, module string, parent *Node, pos int) (*Node, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("node definition must be an object, got %T", raw)
	}
	name, _ := obj["name"].(string)
	if name == "" {
		return nil, fmt.Errorf("node definition has no name")
	}
	kindStr, _ := obj["kind"].(string)
	kind, err := types.ParseSchemaKind(kindStr)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", name, err)
	}

	n := &Node{
		Name:   name,
		Module: module,
		Kind:   kind,
		Parent: parent,
		pos:    pos,
	}
	n.Presence, _ = obj["presence"].(bool)
	n.State, _ = obj["state"].(bool)
	n.Mandatory, _ = obj["mandatory"].(bool)
	n.Type, _ = obj["type"].(string)
	n.Default, _ = obj["default"].(string)
	if parent != nil && parent.State {
		n.State = true
	}
	if keys, ok := obj["keys"].([]any); ok {
		for _, k := range keys {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("node %q: list key must be a string, got %T", name, k)
			}
			n.Keys = append(n.Keys, ks)
		}
	}

	children, _ := obj["children"].([]any)
	for i, c := range children {
		child, err := decodeNode(c, module, n, i)
		if err != nil {
			return nil, err
		}
		if n.Child(child.Name) != nil {
			return nil, fmt.Errorf("node %q: child %q defined twice", name, child.Name)
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}
