package core

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
)

// DefaultEventBuffer is the per-subscriber buffer used when none is configured.
const DefaultEventBuffer = 100

// CollectionConfig holds the configuration for a Collection.
type CollectionConfig struct {
	Logger      *slog.Logger
	EventBuffer int // Zero means DefaultEventBuffer.
}

// Collection owns the authoritative, ordered list of notes known to the client
// together with the current search query.
//
// The list never holds two notes with the same ID. Every mutation runs to
// completion under the collection lock and is then announced to subscribers.
type Collection struct {
	mu      sync.RWMutex
	notes   []Note
	query   string
	logger  *slog.Logger
	bufSize int

	subs    map[int]chan Event
	nextSub int
	dropped int
}

// NewCollection creates an empty collection.
func NewCollection(cfg CollectionConfig) *Collection {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	size := cfg.EventBuffer
	if size <= 0 {
		size = DefaultEventBuffer
	}
	return &Collection{
		logger:  logger,
		bufSize: size,
		subs:    make(map[int]chan Event),
	}
}

// Add prepends a note. A note whose ID is already present is rejected.
func (c *Collection) Add(n Note) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(n.ID) >= 0 {
		return ErrDuplicateID
	}
	c.notes = append([]Note{n}, c.notes...)
	c.emit(EventCreate, n.ID)
	return nil
}

// Remove drops the note with the given ID. It reports whether anything changed;
// an unknown ID is not an error.
func (c *Collection) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.notes = append(c.notes[:i:i], c.notes[i+1:]...)
	c.emit(EventDelete, id)
	return true
}

// ToggleArchived flips the archived flag of the note with the given ID.
// It reports whether a note was found.
func (c *Collection) ToggleArchived(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.notes[i].Archived = !c.notes[i].Archived
	c.emit(EventModify, id)
	return true
}

// SetArchived sets the archived flag of the note with the given ID.
// It reports whether a note was found. Setting the current value emits nothing.
func (c *Collection) SetArchived(id string, archived bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	if c.notes[i].Archived != archived {
		c.notes[i].Archived = archived
		c.emit(EventModify, id)
	}
	return true
}

// SetQuery replaces the current search query. Empty means no filter.
func (c *Collection) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = query
	c.emit(EventQuery, "")
}

// Query returns the current search query.
func (c *Collection) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// ReplaceAll resynchronizes the collection with server truth.
// If the input repeats an ID, the first occurrence wins.
func (c *Collection) ReplaceAll(notes []Note) {
	next := make([]Note, 0, len(notes))
	seen := make(map[string]struct{}, len(notes))
	for _, n := range notes {
		if _, ok := seen[n.ID]; ok {
			c.logger.Warn("dropping duplicate note during resync", "id", n.ID)
			continue
		}
		seen[n.ID] = struct{}{}
		next = append(next, n)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = next
	c.emit(EventReset, "")
}

// Get returns the note with the given ID.
func (c *Collection) Get(id string) (Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return Note{}, false
	}
	return c.notes[i], true
}

// Notes returns a copy of the list in collection order.
func (c *Collection) Notes() []Note {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// Len returns the number of notes.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.notes)
}

// Subscribe registers for change notifications until ctx is done, at which
// point the returned channel is closed. Delivery never blocks a mutation:
// when the subscriber falls behind by more than the buffer, events are dropped.
func (c *Collection) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, c.bufSize)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		c.unsubscribe(id)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		c.logger.Error("subscriber cleanup failed", "error", err)
		c.unsubscribe(id)
	}))

	return ch
}

func (c *Collection) unsubscribe(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ch, ok := c.subs[id]; ok {
		delete(c.subs, id)
		close(ch)
	}
}

// emit must be called with c.mu held.
func (c *Collection) emit(t EventType, id string) {
	e := Event{Type: t, ID: id, Timestamp: time.Now().Unix()}
	for _, ch := range c.subs {
		select {
		case ch <- e:
		default:
			c.dropped++
			c.logger.Warn("subscriber buffer full, dropping event", "event", e.String())
		}
	}
}

// indexOf must be called with c.mu held.
func (c *Collection) indexOf(id string) int {
	for i := range c.notes {
		if c.notes[i].ID == id {
			return i
		}
	}
	return -1
}
