package memory_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeeper/pkg/adapters/memory"
	"github.com/aretw0/notekeeper/pkg/core"
)

// TestConcurrency_OverlappingActions runs creates, toggles, deletes, searches
// and refreshes against one controller at the same time. Whatever the
// interleaving, the collection never holds duplicate ids, no action reports a
// duplicate id and loading settles. In local mode the collection matches the
// store without a final refresh.
func TestConcurrency_OverlappingActions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	seed := make([]core.Note, 0, 20)
	for i := 0; i < 20; i++ {
		seed = append(seed, core.Note{ID: fmt.Sprintf("seed-%d", i), Title: "Seed", Body: "b"})
	}
	store, err := memory.NewStore(memory.Config{Seed: seed})
	require.NoError(t, err)

	for _, mode := range []core.Mode{core.ModeLocal, core.ModeRemote} {
		t.Run(mode.String(), func(t *testing.T) {
			ctrl := core.NewController(store, core.ControllerConfig{Mode: mode})
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			require.NoError(t, ctrl.Refresh(ctx))

			var (
				wg         sync.WaitGroup
				mu         sync.Mutex
				duplicates []string
			)
			check := func(action string, err error) {
				if errors.Is(err, core.ErrDuplicateID) {
					mu.Lock()
					duplicates = append(duplicates, action)
					mu.Unlock()
				}
			}
			for w := 0; w < 4; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					r := rand.New(rand.NewSource(int64(w)))
					for i := 0; i < 50; i++ {
						id := fmt.Sprintf("seed-%d", r.Intn(20))
						switch r.Intn(5) {
						case 0:
							_, err := ctrl.Create(ctx, fmt.Sprintf("w%d-%d", w, i), "body")
							check("create", err)
						case 1:
							check("archive", ctrl.ToggleArchive(ctx, id))
						case 2:
							check("delete", ctrl.Delete(ctx, id))
						case 3:
							ctrl.Search(fmt.Sprintf("w%d", r.Intn(4)))
							_ = ctrl.Projection()
						default:
							check("refresh", ctrl.Refresh(ctx))
						}
					}
				}(w)
			}
			wg.Wait()

			assert.False(t, ctrl.Loading())
			assert.Empty(t, duplicates)

			seen := map[string]bool{}
			for _, n := range ctrl.Collection().Notes() {
				assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
				seen[n.ID] = true
			}

			if mode == core.ModeLocal {
				assert.Equal(t, archivedByID(t, store), archivedByIDOf(ctrl.Collection().Notes()))
			}

			require.NoError(t, ctrl.Refresh(context.Background()))
			assert.Equal(t, archivedByID(t, store), archivedByIDOf(ctrl.Collection().Notes()))
		})
	}
}

// archivedByID maps every stored note to its archived flag.
func archivedByID(t *testing.T, store *memory.Store) map[string]bool {
	t.Helper()
	ctx := context.Background()
	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	archived, err := store.ListArchived(ctx)
	require.NoError(t, err)

	out := archivedByIDOf(active)
	for _, n := range archived {
		out[n.ID] = true
	}
	return out
}

func archivedByIDOf(notes []core.Note) map[string]bool {
	out := make(map[string]bool, len(notes))
	for _, n := range notes {
		out[n.ID] = n.Archived
	}
	return out
}
