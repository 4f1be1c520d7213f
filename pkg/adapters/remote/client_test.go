package remote_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeeper/internal/mockapi"
	"github.com/aretw0/notekeeper/pkg/adapters/memory"
	"github.com/aretw0/notekeeper/pkg/adapters/remote"
	"github.com/aretw0/notekeeper/pkg/core"
)

func newAPI(t *testing.T, notes ...core.Note) (*remote.Client, *memory.Store) {
	t.Helper()
	store, err := memory.NewStore(memory.Config{Seed: notes})
	require.NoError(t, err)
	srv := httptest.NewServer(mockapi.NewServer(store, nil))
	t.Cleanup(srv.Close)
	return remote.NewClient(remote.Config{BaseURL: srv.URL + "/", HTTPClient: srv.Client()}), store
}

// faulty answers every request with the given status and raw body.
func faulty(t *testing.T, status int, body string) (*remote.Client, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.EscapedPath())
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return remote.NewClient(remote.Config{BaseURL: srv.URL}), &seen
}

func TestClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newAPI(t, core.Note{ID: "seed", Title: "Seed", Body: "s"})

	n, err := c.Create(ctx, "Title", "Body")
	require.NoError(t, err)
	assert.Equal(t, "Title", n.Title)

	active, err := c.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, n.ID, active[0].ID)

	require.NoError(t, c.SetArchived(ctx, n.ID, true))
	archived, err := c.ListArchived(ctx)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, n.ID, archived[0].ID)

	require.NoError(t, c.SetArchived(ctx, n.ID, false))
	got, err := c.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, got.Archived)
	assert.True(t, n.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, c.Remove(ctx, n.ID))
	_, err = c.Get(ctx, n.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestClient_NotFound(t *testing.T) {
	ctx := context.Background()
	c, _ := newAPI(t)

	err := c.Remove(ctx, "missing")
	require.ErrorIs(t, err, core.ErrNotFound)
	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "note not found", apiErr.Error())
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"envelope message", http.StatusInternalServerError, `{"status":"fail","message":"server error"}`, "server error"},
		{"status text fallback", http.StatusBadGateway, `{"status":"error"}`, "Bad Gateway"},
		{"invalid json", http.StatusServiceUnavailable, `<html>down</html>`, "Service Unavailable"},
		{"unknown status", 599, ``, "API error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := faulty(t, tt.status, tt.body)
			_, err := c.ListActive(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.NotErrorIs(t, err, core.ErrNetwork)
		})
	}
}

func TestClient_SuccessWithoutData(t *testing.T) {
	c, _ := faulty(t, http.StatusOK, `not json`)
	notes, err := c.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestClient_Paths(t *testing.T) {
	ctx := context.Background()
	c, seen := faulty(t, http.StatusOK, `{"status":"success"}`)

	_, _ = c.ListActive(ctx)
	_, _ = c.ListArchived(ctx)
	_, _ = c.Get(ctx, "a/b c")
	_, _ = c.Create(ctx, "t", "b")
	_ = c.Remove(ctx, "x")
	_ = c.SetArchived(ctx, "x", true)
	_ = c.SetArchived(ctx, "x", false)

	assert.Equal(t, []string{
		"GET /notes",
		"GET /notes/archived",
		"GET /notes/a%2Fb%20c",
		"POST /notes",
		"DELETE /notes/x",
		"POST /notes/x/archive",
		"POST /notes/x/unarchive",
	}, *seen)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := remote.NewClient(remote.Config{BaseURL: url})
	_, err := c.ListActive(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNetwork)

	var netErr *core.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "GET /notes", netErr.Op)
}

// Create fails with HTTP 500: the error message surfaces, nothing changes.
func TestController_RemoteCreateFailure(t *testing.T) {
	ctx := context.Background()
	store, err := memory.NewStore(memory.Config{Seed: []core.Note{
		{ID: "a", Title: "A", Body: "a"},
		{ID: "b", Title: "B", Body: "b", Archived: true},
	}})
	require.NoError(t, err)
	api := mockapi.NewServer(store, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/notes" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"status":"error","message":"server error"}`))
			return
		}
		api.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	c := remote.NewClient(remote.Config{BaseURL: srv.URL})
	ctrl := core.NewController(c, core.ControllerConfig{})
	require.NoError(t, ctrl.Refresh(ctx))
	ctrl.SetDraft("C", "c")
	before := ctrl.Collection().Notes()
	require.Len(t, before, 2)

	_, err = ctrl.Create(ctx, "C", "c")
	require.Error(t, err)
	assert.Equal(t, "server error", ctrl.LastError())
	assert.False(t, ctrl.Loading())
	assert.Equal(t, before, ctrl.Collection().Notes())
	assert.Equal(t, core.Draft{Title: "C", Body: "c"}, ctrl.Draft())

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestController_RemoteResync(t *testing.T) {
	ctx := context.Background()
	c, store := newAPI(t, core.Note{ID: "x", Title: "X", Body: "x"})
	ctrl := core.NewController(c, core.ControllerConfig{})
	require.NoError(t, ctrl.Refresh(ctx))

	require.NoError(t, ctrl.ToggleArchive(ctx, "x"))
	p := ctrl.Projection()
	assert.Empty(t, p.Active)
	require.Len(t, p.Archived, 1)
	assert.True(t, p.Archived[0].Archived)

	// Another client removes the note; the next action surfaces the 404.
	require.NoError(t, store.Remove(ctx, "x"))
	err := ctrl.ToggleArchive(ctx, "x")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "note not found", ctrl.LastError())
}

func TestClient_State(t *testing.T) {
	c := remote.NewClient(remote.Config{BaseURL: "http://example.test/v2/", UserAgent: "notekeeper/test"})
	st, ok := c.State().(remote.ClientState)
	require.True(t, ok)
	assert.Equal(t, "http://example.test/v2", st.BaseURL)
	assert.Equal(t, "notekeeper/test", st.UserAgent)
	assert.Equal(t, "remote", c.ComponentType())
}
