package data

import (
	"testing"

	"github.com/netconf-go/getkit/internal/testutil"
)

func TestCloneIsDeep(t *testing.T) {
	idx := testutil.NewIndex(t)
	tree := buildFrom(t, idx, []Record{
		{Path: "/example:system/server[name='a']/address", Value: "10.0.0.1"},
	})

	clone := tree.Clone()
	if !Equal(tree, clone) {
		t.Fatal("clone should equal the original")
	}
	clone.Find("/example:system/server[name='a']/address").Value = "changed"
	if tree.Find("/example:system/server[name='a']/address").Value != "10.0.0.1" {
		t.Error("mutating the clone leaked into the original")
	}
}

func TestGraftWholeModule(t *testing.T) {
	idx := testutil.NewIndex(t)
	src := buildFrom(t, idx, []Record{
		{Path: "/stats:counters/in", Value: "10"},
		{Path: "/stats:counters/out", Value: "20"},
	})

	dst := NewTree()
	n, err := dst.GraftFrom(src, "/stats:*")
	if err != nil {
		t.Fatalf("GraftFrom failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 grafted subtree, got %d", n)
	}
	if got := dst.Find("/stats:counters/in"); got == nil || got.Value != "10" {
		t.Fatalf("grafted leaf missing: %+v", got)
	}
}

func TestGraftSubtreeCreatesAncestors(t *testing.T) {
	idx := testutil.NewIndex(t)
	src := buildFrom(t, idx, []Record{
		{Path: "/example:system/server[name='a']/address", Value: "10.0.0.1"},
		{Path: "/example:system/hostname", Value: "r1"},
	})

	dst := NewTree()
	if _, err := dst.GraftFrom(src, "/example:system/server[name='a']/address"); err != nil {
		t.Fatalf("GraftFrom failed: %v", err)
	}
	if dst.Find("/example:system/server[name='a']/address") == nil {
		t.Fatal("grafted node missing")
	}
	// Ancestors come along, with list-entry key leaves; siblings do not.
	if dst.Find("/example:system/server[name='a']/name") == nil {
		t.Error("ancestor list entry should carry its key leaf")
	}
	if dst.Find("/example:system/hostname") != nil {
		t.Error("sibling outside the selector must not be grafted")
	}
}

func TestGraftDoesNotAliasSource(t *testing.T) {
	idx := testutil.NewIndex(t)
	src := buildFrom(t, idx, []Record{
		{Path: "/stats:counters/in", Value: "10"},
	})

	dst := NewTree()
	if _, err := dst.GraftFrom(src, "/stats:counters"); err != nil {
		t.Fatalf("GraftFrom failed: %v", err)
	}
	dst.Find("/stats:counters/in").Value = "99"
	if src.Find("/stats:counters/in").Value != "10" {
		t.Error("graft must deep-copy; the source tree was mutated")
	}
}

func TestGraftMergesWithoutDuplicates(t *testing.T) {
	idx := testutil.NewIndex(t)
	src := buildFrom(t, idx, []Record{
		{Path: "/stats:counters/in", Value: "10"},
		{Path: "/stats:counters/out", Value: "20"},
	})

	dst := NewTree()
	if _, err := dst.GraftFrom(src, "/stats:counters/in"); err != nil {
		t.Fatalf("GraftFrom failed: %v", err)
	}
	if _, err := dst.GraftFrom(src, "/stats:counters"); err != nil {
		t.Fatalf("GraftFrom failed: %v", err)
	}

	counters := dst.Find("/stats:counters")
	if len(counters.Children()) != 2 {
		t.Fatalf("expected in and out, got %d children", len(counters.Children()))
	}
	seen := map[string]int{}
	for _, c := range counters.Children() {
		seen[c.Schema.Name]++
	}
	if seen["in"] != 1 || seen["out"] != 1 {
		t.Errorf("duplicate or missing children after merge: %v", seen)
	}
}

func TestGraftAllListEntries(t *testing.T) {
	idx := testutil.NewIndex(t)
	src := buildFrom(t, idx, []Record{
		{Path: "/example:system/server[name='a']/address", Value: "10.0.0.1"},
		{Path: "/example:system/server[name='b']/address", Value: "10.0.0.2"},
	})

	dst := NewTree()
	n, err := dst.GraftFrom(src, "/example:system/server")
	if err != nil {
		t.Fatalf("GraftFrom failed: %v", err)
	}
	if n != 2 {
		t.Errorf("a predicate-less step should match every entry, got %d", n)
	}
	if dst.Find("/example:system/server[name='a']") == nil ||
		dst.Find("/example:system/server[name='b']") == nil {
		t.Error("both entries should be grafted")
	}
}

func TestGraftNoMatchIsNoop(t *testing.T) {
	idx := testutil.NewIndex(t)
	src := buildFrom(t, idx, []Record{
		{Path: "/stats:counters/in", Value: "10"},
	})
	dst := NewTree()
	n, err := dst.GraftFrom(src, "/stats:counters/nosuch")
	if err != nil {
		t.Fatalf("GraftFrom failed: %v", err)
	}
	if n != 0 || !dst.Empty() {
		t.Errorf("no match should contribute nothing, got %d grafts", n)
	}
}
