package notifications

import (
	"context"
	"testing"

	"github.com/netconf-go/getkit/get/validate"
	"github.com/netconf-go/getkit/internal/testutil"
	"github.com/netconf-go/getkit/pkg/types"
)

func TestDefaultStream(t *testing.T) {
	idx := testutil.NewIndex(t)
	src, err := New(idx)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if idx.Module(ModuleName) == nil {
		t.Error("New should register the notifications schema")
	}

	tree, err := src.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := validate.Tree(idx, tree, types.ViewFull); err != nil {
		t.Fatalf("built tree does not validate: %v", err)
	}

	entry := "/nc-notifications:netconf/streams/stream[name='NETCONF']"
	if n := tree.Find(entry + "/name"); n == nil || n.Value != "NETCONF" {
		t.Errorf("default stream missing: %+v", n)
	}
	if n := tree.Find(entry + "/replaySupport"); n == nil || n.Value != "false" {
		t.Errorf("default stream should not advertise replay: %+v", n)
	}
}

func TestCustomStreams(t *testing.T) {
	idx := testutil.NewIndex(t)
	src, err := New(idx,
		DefaultStream,
		Stream{Name: "alarms", Description: "alarm events", ReplaySupport: true},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tree, err := src.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	streams := tree.Find("/nc-notifications:netconf/streams")
	if got := len(streams.Children()); got != 2 {
		t.Fatalf("expected 2 streams, got %d", got)
	}
	alarms := "/nc-notifications:netconf/streams/stream[name='alarms']"
	if n := tree.Find(alarms + "/replaySupport"); n == nil || n.Value != "true" {
		t.Errorf("alarms stream should advertise replay: %+v", n)
	}
	if n := tree.Find(alarms + "/description"); n == nil || n.Value != "alarm events" {
		t.Errorf("alarms description wrong: %+v", n)
	}
}

func TestBuildCancelled(t *testing.T) {
	idx := testutil.NewIndex(t)
	src, err := New(idx)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Build(ctx); err == nil {
		t.Error("Build should honor a cancelled context")
	}
}
