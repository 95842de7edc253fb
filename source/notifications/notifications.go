// Package notifications is the virtual source exposing the server's
// notification stream capabilities as nc-notifications state data.
package notifications

import (
	"context"
	"fmt"

	"github.com/netconf-go/getkit/data"
	"github.com/netconf-go/getkit/schema"
)

// ModuleName is the module this source owns.
const ModuleName = "nc-notifications"

// Stream describes one advertised notification stream.
type Stream struct {
	Name          string
	Description   string
	ReplaySupport bool
}

// DefaultStream is the base NETCONF stream every server advertises.
var DefaultStream = Stream{
	Name:        "NETCONF",
	Description: "default NETCONF event stream",
}

// Source serves "/nc-notifications:" selectors from a fixed stream list.
type Source struct {
	idx     *schema.Index
	streams []Stream
}

// New creates the source, registering the nc-notifications schema with the
// index if needed. With no streams given, only DefaultStream is advertised.
func New(idx *schema.Index, streams ...Stream) (*Source, error) {
	if idx.Module(ModuleName) == nil {
		mod, err := buildSchema()
		if err != nil {
			return nil, err
		}
		if err := idx.Add(mod); err != nil {
			return nil, err
		}
	}
	if len(streams) == 0 {
		streams = []Stream{DefaultStream}
	}
	return &Source{idx: idx, streams: streams}, nil
}

// Name implements get.VirtualSource.
func (s *Source) Name() string { return ModuleName }

// Prefix implements get.VirtualSource.
func (s *Source) Prefix() string { return "/" + ModuleName + ":" }

// Build renders the stream list.
func (s *Source) Build(ctx context.Context) (*data.Tree, error) {
	t := data.NewTree()
	for _, st := range s.streams {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry := fmt.Sprintf("/nc-notifications:netconf/streams/stream[name='%s']", st.Name)
		replay := "false"
		if st.ReplaySupport {
			replay = "true"
		}
		fields := [][2]string{
			{entry + "/name", st.Name},
			{entry + "/description", st.Description},
			{entry + "/replaySupport", replay},
		}
		for _, kv := range fields {
			if _, err := t.Upsert(s.idx, data.Record{Path: kv[0], Value: kv[1]}); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func buildSchema() (*schema.Module, error) {
	b := schema.NewModule(ModuleName, "urn:ietf:params:xml:ns:netmod:notification", "2008-07-14")
	b.StateContainer("netconf", false)
	b.Container("netconf/streams", false)
	b.List("netconf/streams/stream", "name")
	b.Leaf("netconf/streams/stream/name", schema.LeafOpts{})
	b.Leaf("netconf/streams/stream/description", schema.LeafOpts{})
	b.Leaf("netconf/streams/stream/replaySupport", schema.LeafOpts{Type: "boolean"})
	return b.Build()
}
