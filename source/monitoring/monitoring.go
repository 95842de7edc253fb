// Package monitoring is the virtual source exposing server session and RPC
// counters as ietf-netconf-monitoring state data. A Collector accumulates
// the counters; the Source renders a snapshot of them on every build.
package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/netconf-go/getkit/data"
	"github.com/netconf-go/getkit/schema"
)

// ModuleName is the module this source owns.
const ModuleName = "ietf-netconf-monitoring"

// Collector accumulates monitoring counters. Safe for concurrent use.
type Collector struct {
	mu        sync.Mutex
	started   time.Time
	nextID    uint32
	sessions  map[string]*SessionInfo
	inRPCs    uint64
	inBadRPCs uint64
	rpcErrors uint64
}

// SessionInfo is one tracked session. Handle is the collector's opaque
// identifier; ID is the numeric session-id reported in the tree.
type SessionInfo struct {
	Handle    string
	ID        uint32
	Username  string
	Transport string
	LoginTime time.Time

	inRPCs    uint64
	inBadRPCs uint64
	rpcErrors uint64
}

// NewCollector returns a collector with its start time set to now.
func NewCollector() *Collector {
	return &Collector{
		started:  time.Now().UTC(),
		nextID:   1,
		sessions: make(map[string]*SessionInfo),
	}
}

// SessionStart registers a session and returns its info.
func (c *Collector) SessionStart(username, transport string) *SessionInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	si := &SessionInfo{
		Handle:    ulid.Make().String(),
		ID:        c.nextID,
		Username:  username,
		Transport: transport,
		LoginTime: time.Now().UTC(),
	}
	c.nextID++
	c.sessions[si.Handle] = si
	return si
}

// SessionEnd forgets a session. Its RPC counts stay in the global totals.
func (c *Collector) SessionEnd(handle string) {
	c.mu.Lock()
	delete(c.sessions, handle)
	c.mu.Unlock()
}

// CountRPC records one received RPC for a session. bad marks an RPC that
// could not be parsed; failed marks one that produced an error reply.
func (c *Collector) CountRPC(handle string, bad, failed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inRPCs++
	if bad {
		c.inBadRPCs++
	}
	if failed {
		c.rpcErrors++
	}
	if si := c.sessions[handle]; si != nil {
		si.inRPCs++
		if bad {
			si.inBadRPCs++
		}
		if failed {
			si.rpcErrors++
		}
	}
}

// Source serves "/ietf-netconf-monitoring:" selectors from a Collector.
type Source struct {
	idx *schema.Index
	col *Collector
}

// New creates the source, registering the monitoring schema with the index
// if it is not there yet.
func New(idx *schema.Index, col *Collector) (*Source, error) {
	if col == nil {
		return nil, fmt.Errorf("monitoring source requires a collector")
	}
	if idx.Module(ModuleName) == nil {
		mod, err := buildSchema()
		if err != nil {
			return nil, err
		}
		if err := idx.Add(mod); err != nil {
			return nil, err
		}
	}
	return &Source{idx: idx, col: col}, nil
}

// Name implements get.VirtualSource.
func (s *Source) Name() string { return ModuleName }

// Prefix implements get.VirtualSource.
func (s *Source) Prefix() string { return "/" + ModuleName + ":" }

// Build renders a consistent snapshot of the collector's counters.
func (s *Source) Build(ctx context.Context) (*data.Tree, error) {
	s.col.mu.Lock()
	started := s.col.started
	inRPCs, inBad, rpcErrs := s.col.inRPCs, s.col.inBadRPCs, s.col.rpcErrors
	sessions := make([]SessionInfo, 0, len(s.col.sessions))
	for _, si := range s.col.sessions {
		cp := *si
		sessions = append(sessions, cp)
	}
	s.col.mu.Unlock()

	t := data.NewTree()
	put := func(path, value string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := t.Upsert(s.idx, data.Record{Path: path, Value: value})
		return err
	}

	const root = "/ietf-netconf-monitoring:netconf-state"
	stats := [][2]string{
		{root + "/statistics/netconf-start-time", started.Format(time.RFC3339)},
		{root + "/statistics/in-rpcs", fmt.Sprintf("%d", inRPCs)},
		{root + "/statistics/in-bad-rpcs", fmt.Sprintf("%d", inBad)},
		{root + "/statistics/out-rpc-errors", fmt.Sprintf("%d", rpcErrs)},
	}
	for _, kv := range stats {
		if err := put(kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	for _, si := range sessions {
		entry := fmt.Sprintf("%s/sessions/session[session-id='%d']", root, si.ID)
		fields := [][2]string{
			{entry + "/transport", si.Transport},
			{entry + "/username", si.Username},
			{entry + "/login-time", si.LoginTime.Format(time.RFC3339)},
			{entry + "/in-rpcs", fmt.Sprintf("%d", si.inRPCs)},
			{entry + "/in-bad-rpcs", fmt.Sprintf("%d", si.inBadRPCs)},
			{entry + "/out-rpc-errors", fmt.Sprintf("%d", si.rpcErrors)},
		}
		for _, kv := range fields {
			if err := put(kv[0], kv[1]); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func buildSchema() (*schema.Module, error) {
	b := schema.NewModule(ModuleName, "urn:ietf:params:xml:ns:yang:ietf-netconf-monitoring", "2010-10-04")
	b.StateContainer("netconf-state", false)
	b.Container("netconf-state/statistics", false)
	b.Leaf("netconf-state/statistics/netconf-start-time", schema.LeafOpts{})
	b.Leaf("netconf-state/statistics/in-rpcs", schema.LeafOpts{Type: "uint64"})
	b.Leaf("netconf-state/statistics/in-bad-rpcs", schema.LeafOpts{Type: "uint64"})
	b.Leaf("netconf-state/statistics/out-rpc-errors", schema.LeafOpts{Type: "uint64"})
	b.Container("netconf-state/sessions", false)
	b.List("netconf-state/sessions/session", "session-id")
	b.Leaf("netconf-state/sessions/session/session-id", schema.LeafOpts{Type: "uint32"})
	b.Leaf("netconf-state/sessions/session/transport", schema.LeafOpts{})
	b.Leaf("netconf-state/sessions/session/username", schema.LeafOpts{})
	b.Leaf("netconf-state/sessions/session/login-time", schema.LeafOpts{})
	b.Leaf("netconf-state/sessions/session/in-rpcs", schema.LeafOpts{Type: "uint64"})
	b.Leaf("netconf-state/sessions/session/in-bad-rpcs", schema.LeafOpts{Type: "uint64"})
	b.Leaf("netconf-state/sessions/session/out-rpc-errors", schema.LeafOpts{Type: "uint64"})
	return b.Build()
}
