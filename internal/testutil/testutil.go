// Package testutil provides the shared schema fixtures the engine tests
// build trees against.
package testutil

import (
	"testing"

	"github.com/netconf-go/getkit/schema"
)

// ExampleModule defines the "example" module used across tests:
//
//	container system
//	  leaf hostname              (default "router")
//	  container ntp              (presence)
//	    leaf enabled             (boolean, default "true")
//	    list peer [address]
//	      leaf address
//	      leaf prefer            (boolean)
//	  list server [name]
//	    leaf name
//	    leaf address
//	    leaf port                (uint16)
//	  leaf-list dns
//	container routing
//	  leaf router-id
func ExampleModule(t *testing.T) *schema.Module {
	t.Helper()
	b := schema.NewModule("example", "urn:example:config", "2025-01-01")
	b.Container("system", false)
	b.Leaf("system/hostname", schema.LeafOpts{Default: "router"})
	b.Container("system/ntp", true)
	b.Leaf("system/ntp/enabled", schema.LeafOpts{Type: "boolean", Default: "true"})
	b.List("system/ntp/peer", "address")
	b.Leaf("system/ntp/peer/address", schema.LeafOpts{})
	b.Leaf("system/ntp/peer/prefer", schema.LeafOpts{Type: "boolean", Default: "false"})
	b.List("system/server", "name")
	b.Leaf("system/server/name", schema.LeafOpts{})
	b.Leaf("system/server/address", schema.LeafOpts{Mandatory: true})
	b.Leaf("system/server/port", schema.LeafOpts{Type: "uint16", Default: "830"})
	b.LeafList("system/dns", schema.LeafOpts{})
	b.Container("routing", false)
	b.Leaf("routing/router-id", schema.LeafOpts{})
	mod, err := b.Build()
	if err != nil {
		t.Fatalf("build example module: %v", err)
	}
	return mod
}

// StatsModule defines the state-only "stats" module:
//
//	container counters (config false)
//	  leaf in  (uint64)
//	  leaf out (uint64)
func StatsModule(t *testing.T) *schema.Module {
	t.Helper()
	b := schema.NewModule("stats", "urn:example:stats", "2025-01-01")
	b.StateContainer("counters", false)
	b.Leaf("counters/in", schema.LeafOpts{Type: "uint64"})
	b.Leaf("counters/out", schema.LeafOpts{Type: "uint64"})
	mod, err := b.Build()
	if err != nil {
		t.Fatalf("build stats module: %v", err)
	}
	return mod
}

// OpsModule defines a module with only RPC and notification definitions,
// which must not contribute a default selector.
func OpsModule(t *testing.T) *schema.Module {
	t.Helper()
	b := schema.NewModule("ops", "urn:example:ops", "2025-01-01")
	b.RPC("reboot")
	b.Notification("started")
	mod, err := b.Build()
	if err != nil {
		t.Fatalf("build ops module: %v", err)
	}
	return mod
}

// NewIndex returns an index holding the example and stats modules.
func NewIndex(t *testing.T) *schema.Index {
	t.Helper()
	idx, err := schema.NewIndex(ExampleModule(t), StatsModule(t))
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	return idx
}
