package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeeper/pkg/adapters/lifecycle"
	"github.com/aretw0/notekeeper/pkg/core"
)

func TestSource_ForwardsCollectionEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coll := core.NewCollection(core.CollectionConfig{})
	src := lifecycle.NewSource(coll.Subscribe(ctx))
	require.NoError(t, src.Start(ctx))

	require.NoError(t, coll.Add(core.Note{ID: "a"}))
	coll.ToggleArchived("a")

	var got []string
	for len(got) < 2 {
		select {
		case e := <-src.Events():
			got = append(got, e.String())
		case <-time.After(time.Second):
			t.Fatalf("timed out, got %v", got)
		}
	}
	assert.Equal(t, []string{"CREATE a", "MODIFY a"}, got)
}

func TestSource_FiltersTypes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 3)
	in <- core.Event{Type: core.EventCreate, ID: "a"}
	in <- core.Event{Type: core.EventReset}
	in <- core.Event{Type: core.EventDelete, ID: "a"}
	close(in)

	src := lifecycle.NewSource(in, core.EventReset)
	require.NoError(t, src.Start(ctx))

	var got []string
	for e := range src.Events() {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{"RESET"}, got)
}

func TestSource_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := lifecycle.NewSource(make(chan core.Event))
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
}
