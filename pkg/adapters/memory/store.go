package memory

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/notekeeper/pkg/core"
)

// Config holds the configuration for the in-memory store.
type Config struct {
	Seed   []core.Note
	Logger *slog.Logger
}

// Store implements core.Store in process. It stands in for the remote API
// with the same semantics: unknown ids fail with core.ErrNotFound and new
// notes are prepended.
type Store struct {
	mu      sync.RWMutex
	notes   []core.Note
	logger  *slog.Logger
	reloads int
	lastSet *time.Time
}

// NewStore creates a store holding a copy of cfg.Seed.
// Seed notes with a repeated id fail with core.ErrDuplicateID.
func NewStore(cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Store{logger: logger}
	if err := s.Replace(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Replace swaps the whole content of the store.
func (s *Store) Replace(notes []core.Note) error {
	if err := checkUnique(notes); err != nil {
		return err
	}
	next := make([]core.Note, len(notes))
	copy(next, notes)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = next
	now := time.Now()
	s.lastSet = &now
	s.reloads++
	return nil
}

// Insert prepends an existing note, keeping its id and timestamp.
func (s *Store) Insert(n core.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(n.ID) >= 0 {
		return core.ErrDuplicateID
	}
	s.notes = append([]core.Note{n}, s.notes...)
	return nil
}

// ListActive implements core.Store.
func (s *Store) ListActive(ctx context.Context) ([]core.Note, error) {
	return s.list(ctx, false)
}

// ListArchived implements core.Store.
func (s *Store) ListArchived(ctx context.Context) ([]core.Note, error) {
	return s.list(ctx, true)
}

func (s *Store) list(ctx context.Context, archived bool) ([]core.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if n.Archived == archived {
			out = append(out, n)
		}
	}
	return out, nil
}

// Get implements core.Store.
func (s *Store) Get(ctx context.Context, id string) (core.Note, error) {
	if err := ctx.Err(); err != nil {
		return core.Note{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.Note{}, core.ErrNotFound
	}
	return s.notes[i], nil
}

// Create implements core.Store.
func (s *Store) Create(ctx context.Context, title, body string) (core.Note, error) {
	if err := ctx.Err(); err != nil {
		return core.Note{}, err
	}
	n, err := core.NewNote(title, body)
	if err != nil {
		return core.Note{}, err
	}
	if err := s.Insert(n); err != nil {
		return core.Note{}, err
	}
	s.logger.Debug("note stored", "id", n.ID)
	return n, nil
}

// Remove implements core.Store.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.ErrNotFound
	}
	s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
	return nil
}

// SetArchived implements core.Store.
func (s *Store) SetArchived(ctx context.Context, id string, archived bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.ErrNotFound
	}
	s.notes[i].Archived = archived
	return nil
}

var _ core.Store = (*Store)(nil)

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func checkUnique(notes []core.Note) error {
	seen := make(map[string]struct{}, len(notes))
	for _, n := range notes {
		if _, ok := seen[n.ID]; ok {
			return core.ErrDuplicateID
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}
