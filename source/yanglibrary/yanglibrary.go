// Package yanglibrary is the virtual source exposing the schema index
// itself as ietf-yang-library modules-state data, the way a NETCONF server
// reports which models it implements.
package yanglibrary

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/netconf-go/getkit/data"
	"github.com/netconf-go/getkit/schema"
)

// ModuleName is the module this source owns.
const ModuleName = "ietf-yang-library"

// Source serves "/ietf-yang-library:" selectors from the schema index.
type Source struct {
	idx *schema.Index
}

// New creates the source, registering the ietf-yang-library schema with the
// index if it is not there yet.
func New(idx *schema.Index) (*Source, error) {
	if idx.Module(ModuleName) == nil {
		mod, err := buildSchema()
		if err != nil {
			return nil, err
		}
		if err := idx.Add(mod); err != nil {
			return nil, err
		}
	}
	return &Source{idx: idx}, nil
}

// Name implements get.VirtualSource.
func (s *Source) Name() string { return ModuleName }

// Prefix implements get.VirtualSource.
func (s *Source) Prefix() string { return "/" + ModuleName + ":" }

// Build renders the current module set as a modules-state tree.
func (s *Source) Build(ctx context.Context) (*data.Tree, error) {
	t := data.NewTree()
	put := func(path, value string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := t.Upsert(s.idx, data.Record{Path: path, Value: value})
		return err
	}

	if err := put("/ietf-yang-library:modules-state/module-set-id", s.moduleSetID()); err != nil {
		return nil, err
	}
	for _, m := range s.idx.Modules() {
		entry := fmt.Sprintf("/ietf-yang-library:modules-state/module[name='%s'][revision='%s']",
			m.Name, m.Revision)
		if err := put(entry+"/name", m.Name); err != nil {
			return nil, err
		}
		if err := put(entry+"/revision", m.Revision); err != nil {
			return nil, err
		}
		if err := put(entry+"/namespace", m.Namespace); err != nil {
			return nil, err
		}
		if err := put(entry+"/conformance-type", "implement"); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// moduleSetID is a stable digest of the module set; it changes whenever the
// set of (name, revision) pairs changes.
func (s *Source) moduleSetID() string {
	h := fnv.New64a()
	for _, m := range s.idx.Modules() {
		h.Write([]byte(m.Name))
		h.Write([]byte{0})
		h.Write([]byte(m.Revision))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum64())
}

func buildSchema() (*schema.Module, error) {
	b := schema.NewModule(ModuleName, "urn:ietf:params:xml:ns:yang:ietf-yang-library", "2016-06-21")
	b.StateContainer("modules-state", false)
	b.Leaf("modules-state/module-set-id", schema.LeafOpts{})
	b.List("modules-state/module", "name", "revision")
	b.Leaf("modules-state/module/name", schema.LeafOpts{})
	b.Leaf("modules-state/module/revision", schema.LeafOpts{})
	b.Leaf("modules-state/module/namespace", schema.LeafOpts{})
	b.Leaf("modules-state/module/conformance-type", schema.LeafOpts{})
	return b.Build()
}
