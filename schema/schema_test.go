package schema

import (
	"errors"
	"testing"

	"github.com/netconf-go/getkit/pkg/types"
)

func buildExample(t *testing.T) *Module {
	t.Helper()
	b := NewModule("example", "urn:example", "2025-01-01")
	b.Container("system", false)
	b.Leaf("system/hostname", LeafOpts{Default: "router"})
	b.Container("system/ntp", true)
	b.Leaf("system/ntp/enabled", LeafOpts{Type: "boolean", Default: "true"})
	b.List("system/server", "name")
	b.Leaf("system/server/name", LeafOpts{})
	b.Leaf("system/server/address", LeafOpts{})
	b.LeafList("system/dns", LeafOpts{})
	b.StateContainer("status", false)
	b.Leaf("status/uptime", LeafOpts{Type: "uint64"})
	mod, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return mod
}

func TestBuilderShapes(t *testing.T) {
	mod := buildExample(t)

	system := mod.Node("system")
	if system == nil {
		t.Fatal("system should exist")
	}
	if system.Kind != types.KindContainer || system.Presence {
		t.Errorf("system should be a plain container")
	}
	ntp := system.Child("ntp")
	if ntp == nil || !ntp.Presence {
		t.Error("ntp should be a presence container")
	}
	server := system.Child("server")
	if server == nil || !server.IsKeyedList() {
		t.Error("server should be a keyed list")
	}
	if !server.Child("name").IsKey() {
		t.Error("name should be a key leaf")
	}
	if server.Child("address").IsKey() {
		t.Error("address is not a key leaf")
	}
}

func TestBuilderStateInheritance(t *testing.T) {
	mod := buildExample(t)
	up := mod.Node("status").Child("uptime")
	if !up.State {
		t.Error("children of a state container are state")
	}
	if mod.Node("system").Child("hostname").State {
		t.Error("hostname is config data")
	}
}

func TestBuilderErrors(t *testing.T) {
	b := NewModule("m", "urn:m", "")
	b.Leaf("nosuch/leaf", LeafOpts{})
	if _, err := b.Build(); err == nil {
		t.Error("unknown parent should fail")
	}

	b = NewModule("m", "urn:m", "")
	b.Container("c", false)
	b.Container("c", false)
	if _, err := b.Build(); err == nil {
		t.Error("duplicate definition should fail")
	}

	b = NewModule("m", "urn:m", "")
	b.List("l", "k")
	if _, err := b.Build(); err == nil {
		t.Error("missing key leaf should fail")
	}
}

func TestIndexLookup(t *testing.T) {
	idx, err := NewIndex(buildExample(t))
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	n, err := idx.Lookup("/example:system/server[name='a']/address")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if n.Name != "address" || n.Parent.Name != "server" {
		t.Errorf("wrong node: %s", n.PathString())
	}

	for _, path := range []string{
		"/nosuch:system",
		"/example:nosuch",
		"/example:system/nosuch",
		"relative",
		"",
	} {
		if _, err := idx.Lookup(path); !errors.Is(err, ErrNotFound) {
			t.Errorf("Lookup(%q) should fail with ErrNotFound, got %v", path, err)
		}
	}
}

func TestIndexDuplicateModule(t *testing.T) {
	idx, err := NewIndex(buildExample(t))
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}
	if err := idx.Add(buildExample(t)); err == nil {
		t.Error("duplicate module registration should fail")
	}
}

func TestModuleHasData(t *testing.T) {
	withData := buildExample(t)
	if !withData.HasData() {
		t.Error("example defines data nodes")
	}

	b := NewModule("ops", "urn:ops", "")
	b.RPC("reboot")
	b.Notification("started")
	opsOnly, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if opsOnly.HasData() {
		t.Error("an RPC/notification-only module has no data")
	}
}

func TestPathString(t *testing.T) {
	mod := buildExample(t)
	n := mod.Node("system").Child("server").Child("address")
	if got := n.PathString(); got != "/example:system/server/address" {
		t.Errorf("PathString = %q", got)
	}
}
