package data

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/netconf-go/getkit/internal/testutil"
	"github.com/netconf-go/getkit/schema"
)

func TestUpsertCreatesChain(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := NewTree()

	n, err := tree.Upsert(idx, Record{Path: "/example:system/hostname", Value: "r1"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if n.Value != "r1" {
		t.Errorf("target value should be r1, got %q", n.Value)
	}
	if n.Parent == nil || n.Parent.Schema.Name != "system" {
		t.Fatal("hostname should hang under system")
	}
	if len(tree.Roots()) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree.Roots()))
	}
}

func TestUpsertIdempotent(t *testing.T) {
	idx := testutil.NewIndex(t)
	rec := Record{Path: "/example:system/server[name='a']/address", Value: "10.0.0.1"}

	once := NewTree()
	if _, err := once.Upsert(idx, rec); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	twice := NewTree()
	for i := 0; i < 2; i++ {
		if _, err := twice.Upsert(idx, rec); err != nil {
			t.Fatalf("Upsert %d failed: %v", i, err)
		}
	}
	if !Equal(once, twice) {
		t.Error("applying the same record twice should equal applying it once")
	}
	if once.Len() != twice.Len() {
		t.Errorf("node counts differ: %d vs %d", once.Len(), twice.Len())
	}
}

func TestUpsertListKeysInstantiated(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := NewTree()

	entry, err := tree.Upsert(idx, Record{Path: "/example:system/server[name='a']"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if v, ok := entry.Key("name"); !ok || v != "a" {
		t.Fatalf("entry identity should carry name='a', got %q", v)
	}
	key := tree.Find("/example:system/server[name='a']/name")
	if key == nil {
		t.Fatal("key leaf should be instantiated with the entry")
	}
	if key.Value != "a" {
		t.Errorf("key leaf value should be 'a', got %q", key.Value)
	}
	if key.Default {
		t.Error("key leaves are explicit data, never default")
	}
}

func TestUpsertMissingListKey(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := NewTree()
	_, err := tree.Upsert(idx, Record{Path: "/example:system/server/address", Value: "x"})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("unkeyed list step should be a schema mismatch, got %v", err)
	}
}

func TestUpsertSchemaMismatch(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := NewTree()
	for _, path := range []string{
		"/nosuch:thing",
		"/example:nosuch",
		"/example:system/nosuch",
		"/example:system/hostname/below",
		"/example:system/ntp[x='1']",
		"/example:system/hostname[k='v']",
	} {
		if _, err := tree.Upsert(idx, Record{Path: path}); !errors.Is(err, ErrSchemaMismatch) {
			t.Errorf("Upsert(%q) should fail with ErrSchemaMismatch, got %v", path, err)
		}
	}
	if !tree.Empty() {
		t.Error("failed upserts must not leave partial chains behind")
	}
}

func TestUpsertBadValue(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := NewTree()
	_, err := tree.Upsert(idx, Record{Path: "/example:system/server[name='a']/port", Value: "70000"})
	if !errors.Is(err, ErrBadValue) {
		t.Errorf("out-of-range uint16 should fail with ErrBadValue, got %v", err)
	}
	_, err = tree.Upsert(idx, Record{Path: "/example:system/ntp/enabled", Value: "yes"})
	if !errors.Is(err, ErrBadValue) {
		t.Errorf("non-boolean should fail with ErrBadValue, got %v", err)
	}
	_, err = tree.Upsert(idx, Record{Path: "/example:system", Value: "v"})
	if !errors.Is(err, ErrBadValue) {
		t.Errorf("value on a container should fail with ErrBadValue, got %v", err)
	}
}

func TestDefaultPropagatesUpCreatedChain(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := NewTree()

	if _, err := tree.Upsert(idx, Record{Path: "/example:system/hostname", Value: "router", Default: true}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	host := tree.Find("/example:system/hostname")
	if !host.Default {
		t.Error("hostname should be default")
	}
	system := tree.Find("/example:system")
	if !system.Default {
		t.Error("system was created by the same default record, should be default")
	}
}

func TestNonDefaultClearsAncestors(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := NewTree()

	// A default record instantiates /a, then a non-default sibling arrives.
	if _, err := tree.Upsert(idx, Record{Path: "/example:system/hostname", Value: "router", Default: true}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if _, err := tree.Upsert(idx, Record{Path: "/example:routing/router-id", Value: "1.1.1.1"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if _, err := tree.Upsert(idx, Record{Path: "/example:system/dns", Value: "10.0.0.1"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if tree.Find("/example:system").Default {
		t.Error("system should have been cleared by the non-default dns record")
	}
	if !tree.Find("/example:system/hostname").Default {
		t.Error("hostname keeps its own default flag")
	}
}

func TestRepeatedDefaultRecordStaysCleared(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := NewTree()

	sys := Record{Path: "/example:system", Default: true}
	host := Record{Path: "/example:system/hostname", Value: "x"}

	// The repeat of sys is a no-op upsert: the node exists and nothing
	// changes, so it must not undo the downgrade host caused.
	for _, r := range []Record{sys, host, sys} {
		if _, err := tree.Upsert(idx, r); err != nil {
			t.Fatalf("Upsert(%q) failed: %v", r.Path, err)
		}
	}
	if tree.Find("/example:system").Default {
		t.Error("a repeated default record must not re-mark a cleared node")
	}
	if tree.Find("/example:system/hostname").Default {
		t.Error("hostname is explicit")
	}
}

func TestDefaultContainerRecordOrderIndependence(t *testing.T) {
	idx := testutil.NewIndex(t)
	recs := []Record{
		{Path: "/example:system", Default: true},
		{Path: "/example:system/hostname", Value: "x"},
	}
	fwd := buildFrom(t, idx, recs)
	rev := buildFrom(t, idx, []Record{recs[1], recs[0]})
	if !Equal(fwd, rev) {
		t.Fatal("final tree must not depend on record delivery order")
	}
	if fwd.Find("/example:system").Default {
		t.Error("system holds explicit data and must end non-default")
	}
}

func TestDefaultRecordWithChangedValueStillMarks(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := NewTree()

	if _, err := tree.Upsert(idx, Record{Path: "/example:system/hostname", Value: "x"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if _, err := tree.Upsert(idx, Record{Path: "/example:system/hostname", Value: "router", Default: true}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	host := tree.Find("/example:system/hostname")
	if host.Value != "router" || !host.Default {
		t.Errorf("a value change carries the record's default flag: %q default=%v", host.Value, host.Default)
	}
	if tree.Find("/example:system").Default {
		t.Error("system pre-existed the default record; the walk must not reach it")
	}
}

func TestDefaultDowngradeIsMonotonic(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := NewTree()

	if _, err := tree.Upsert(idx, Record{Path: "/example:system/dns", Value: "10.0.0.1"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if tree.Find("/example:system").Default {
		t.Fatal("system should start non-default")
	}
	// A later default record under the same ancestor must not re-mark it.
	if _, err := tree.Upsert(idx, Record{Path: "/example:system/hostname", Value: "router", Default: true}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if tree.Find("/example:system").Default {
		t.Error("system was cleared earlier; default propagation must not reach a pre-existing node")
	}
	if !tree.Find("/example:system/hostname").Default {
		t.Error("hostname itself is default")
	}
}

func TestPresenceContainerIsPropagationBoundary(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := NewTree()

	// system and ntp are both created by this call; ntp is a presence
	// container, so the upward walk stops before it.
	if _, err := tree.Upsert(idx, Record{Path: "/example:system/ntp/enabled", Value: "true", Default: true}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !tree.Find("/example:system/ntp/enabled").Default {
		t.Error("enabled should be default")
	}
	if tree.Find("/example:system/ntp").Default {
		t.Error("presence container must never be marked default by propagation")
	}
	if tree.Find("/example:system").Default {
		t.Error("the walk stops at ntp; system must stay untouched")
	}
}

func TestKeyedListEntryIsPropagationBoundary(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := NewTree()

	if _, err := tree.Upsert(idx, Record{Path: "/example:system/ntp/peer[address='p1']/prefer", Value: "false", Default: true}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !tree.Find("/example:system/ntp/peer[address='p1']/prefer").Default {
		t.Error("prefer should be default")
	}
	if tree.Find("/example:system/ntp/peer[address='p1']").Default {
		t.Error("keyed list entry must never be marked default by propagation")
	}
}

func TestSharedAncestorScenario(t *testing.T) {
	// Records [("/a/b","5",false), ("/a/c","1",true)] sharing new container
	// /a: the final tree has /a non-default, b non-default, c default.
	idx := testutil.NewIndex(t)
	tree := NewTree()

	if _, err := tree.Upsert(idx, Record{Path: "/example:system/hostname", Value: "5"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if _, err := tree.Upsert(idx, Record{Path: "/example:system/dns", Value: "1", Default: true}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if tree.Find("/example:system").Default {
		t.Error("shared ancestor must stay non-default")
	}
	if tree.Find("/example:system/hostname").Default {
		t.Error("hostname is explicit")
	}
	if !tree.Find("/example:system/dns").Default {
		t.Error("dns is default")
	}
}

func TestOrderIndependence(t *testing.T) {
	idx := testutil.NewIndex(t)
	recs := []Record{
		{Path: "/example:system/hostname", Value: "router", Default: true},
		{Path: "/example:system/dns", Value: "10.0.0.1"},
		{Path: "/example:system/dns", Value: "10.0.0.2"},
		{Path: "/example:system/server[name='a']/address", Value: "10.1.1.1"},
		{Path: "/example:system/server[name='a']/port", Value: "830", Default: true},
		{Path: "/example:system/server[name='b']/address", Value: "10.1.1.2"},
		{Path: "/example:system/ntp"},
		{Path: "/example:system/ntp/enabled", Value: "true", Default: true},
		{Path: "/example:routing/router-id", Value: "1.1.1.1"},
	}

	want := buildFrom(t, idx, recs)
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]Record, len(recs))
		copy(shuffled, recs)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := buildFrom(t, idx, shuffled)
		if !Equal(want, got) {
			t.Fatalf("trial %d: tree differs from reference order", trial)
		}
	}
}

func buildFrom(t *testing.T, idx *schema.Index, recs []Record) *Tree {
	t.Helper()
	tree := NewTree()
	for _, r := range recs {
		if _, err := tree.Upsert(idx, r); err != nil {
			t.Fatalf("Upsert(%q) failed: %v", r.Path, err)
		}
	}
	return tree
}
