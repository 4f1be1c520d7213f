package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeeper/pkg/core"
)

func note(id, title, body string, archived bool) core.Note {
	return core.Note{
		ID:        id,
		Title:     title,
		Body:      body,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Archived:  archived,
	}
}

func ids(notes []core.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestCollection_AddPrepends(t *testing.T) {
	c := core.NewCollection(core.CollectionConfig{})

	require.NoError(t, c.Add(note("a", "first", "x", false)))
	require.NoError(t, c.Add(note("b", "second", "y", false)))

	assert.Equal(t, []string{"b", "a"}, ids(c.Notes()))
}

func TestCollection_AddDuplicateRejected(t *testing.T) {
	c := core.NewCollection(core.CollectionConfig{})
	n := note("a", "first", "x", false)

	require.NoError(t, c.Add(n))
	err := c.Add(n)

	assert.ErrorIs(t, err, core.ErrDuplicateID)
	assert.Equal(t, 1, c.Len())
}

func TestCollection_RemoveAbsentIsNoop(t *testing.T) {
	c := core.NewCollection(core.CollectionConfig{})
	require.NoError(t, c.Add(note("a", "first", "x", false)))
	require.NoError(t, c.Add(note("b", "second", "y", true)))
	before := c.Notes()

	changed := c.Remove("missing")

	assert.False(t, changed)
	assert.Equal(t, before, c.Notes())
}

func TestCollection_Remove(t *testing.T) {
	c := core.NewCollection(core.CollectionConfig{})
	require.NoError(t, c.Add(note("a", "1", "x", false)))
	require.NoError(t, c.Add(note("b", "2", "x", false)))
	require.NoError(t, c.Add(note("c", "3", "x", false)))

	snapshot := c.Notes()
	assert.True(t, c.Remove("b"))

	assert.Equal(t, []string{"c", "a"}, ids(c.Notes()))
	// Earlier snapshots are not affected by later mutations.
	assert.Equal(t, []string{"c", "b", "a"}, ids(snapshot))
}

func TestCollection_ToggleArchivedTwiceRestores(t *testing.T) {
	c := core.NewCollection(core.CollectionConfig{})
	require.NoError(t, c.Add(note("a", "1", "x", false)))
	require.NoError(t, c.Add(note("b", "2", "x", true)))
	order := ids(c.Notes())

	require.True(t, c.ToggleArchived("a"))
	n, _ := c.Get("a")
	assert.True(t, n.Archived)
	assert.Equal(t, order, ids(c.Notes()))

	require.True(t, c.ToggleArchived("a"))
	n, _ = c.Get("a")
	assert.False(t, n.Archived)
	assert.Equal(t, order, ids(c.Notes()))

	assert.False(t, c.ToggleArchived("missing"))
}

func TestCollection_SetArchived(t *testing.T) {
	c := core.NewCollection(core.CollectionConfig{})
	require.NoError(t, c.Add(note("a", "1", "x", false)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := c.Subscribe(ctx)

	require.True(t, c.SetArchived("a", true))
	require.True(t, c.SetArchived("a", true))
	n, _ := c.Get("a")
	assert.True(t, n.Archived)

	// Only the first call changed anything.
	assert.Equal(t, core.EventModify, (<-events).Type)
	assert.Len(t, events, 0)

	assert.False(t, c.SetArchived("missing", true))
}

func TestCollection_ReplaceAllDropsDuplicates(t *testing.T) {
	c := core.NewCollection(core.CollectionConfig{})
	require.NoError(t, c.Add(note("old", "old", "x", false)))

	c.ReplaceAll([]core.Note{
		note("a", "first", "x", false),
		note("b", "second", "x", true),
		note("a", "again", "x", true),
	})

	assert.Equal(t, []string{"a", "b"}, ids(c.Notes()))
	n, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "first", n.Title)
}

func TestCollection_Query(t *testing.T) {
	c := core.NewCollection(core.CollectionConfig{})
	assert.Equal(t, "", c.Query())

	c.SetQuery("milk")
	assert.Equal(t, "milk", c.Query())
}

func TestCollection_Subscribe(t *testing.T) {
	c := core.NewCollection(core.CollectionConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := c.Subscribe(ctx)

	require.NoError(t, c.Add(note("a", "1", "x", false)))
	c.ToggleArchived("a")
	c.SetQuery("q")
	c.Remove("a")
	c.ReplaceAll(nil)

	want := []core.EventType{core.EventCreate, core.EventModify, core.EventQuery, core.EventDelete, core.EventReset}
	for _, w := range want {
		select {
		case e := <-events:
			assert.Equal(t, w, e.Type)
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for %s", w)
		}
	}

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestCollection_SubscriberNeverBlocksMutations(t *testing.T) {
	c := core.NewCollection(core.CollectionConfig{EventBuffer: 2})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = c.Subscribe(ctx) // never read

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			c.SetQuery("q")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("mutations blocked on a slow subscriber")
	}

	state := c.State().(core.CollectionState)
	assert.Equal(t, 8, state.DroppedEvents)
	assert.Equal(t, 2, state.EventBuffer)
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "DELETE a", core.Event{Type: core.EventDelete, ID: "a"}.String())
	assert.Equal(t, "RESET", core.Event{Type: core.EventReset}.String())
}
