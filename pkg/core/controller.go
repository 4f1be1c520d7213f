package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

// Mode selects how the Controller keeps the collection in sync with its store.
type Mode int

const (
	// ModeRemote confirms every mutation with the store and then resynchronizes
	// the whole collection from it.
	ModeRemote Mode = iota
	// ModeLocal applies the equivalent mutation to the collection once the store
	// acknowledges it. Unknown ids are silent no-ops.
	ModeLocal
)

// resyncAttempts bounds how often a resync re-reads the store when a
// concurrent mutation overlapped its listing. Past that it leaves the
// collection as the mutations left it.
const resyncAttempts = 3

func (m Mode) String() string {
	if m == ModeLocal {
		return "local"
	}
	return "remote"
}

// ControllerConfig holds the configuration for a Controller.
type ControllerConfig struct {
	Collection     *Collection // Created when nil.
	Logger         *slog.Logger
	MaxTitleLength int // Zero means DefaultMaxTitleLength.
	Mode           Mode
}

// Draft holds the pending values of the create-note form.
type Draft struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Status is a snapshot of what the presentation layer needs to render.
type Status struct {
	Loading         bool   `json:"loading"`
	LastError       string `json:"lastError,omitempty"`
	ViewingArchived bool   `json:"viewingArchived"`
	Query           string `json:"query,omitempty"`
	Active          int    `json:"active"`
	Archived        int    `json:"archived"`
}

// Controller orchestrates user actions against a Store and a Collection.
//
// Every action follows the same shape: enter loading, call the store, sync the
// collection on success, record the error message on failure, leave loading.
// A failed action never leaves a partial mutation behind.
//
// In ModeLocal the store call and the collection write of a mutation happen
// under one lock, so overlapping mutations reach both in the same order. A
// resync only applies a listing if no mutation was in flight and no collection
// write landed while it was reading the store.
type Controller struct {
	store    Store
	coll     *Collection
	logger   *slog.Logger
	maxTitle int
	mode     Mode

	mu           sync.Mutex
	inflight     int
	lastErr      string
	viewArchived bool
	draft        Draft

	writeMu sync.Mutex // serializes local-mode mutations
	syncMu  sync.Mutex // guards gen, pending and every controller write to coll
	gen     uint64
	pending int
}

// NewController creates a new Controller.
func NewController(store Store, cfg ControllerConfig) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	coll := cfg.Collection
	if coll == nil {
		coll = NewCollection(CollectionConfig{Logger: logger})
	}
	max := cfg.MaxTitleLength
	if max <= 0 {
		max = DefaultMaxTitleLength
	}
	return &Controller{
		store:    store,
		coll:     coll,
		logger:   logger,
		maxTitle: max,
		mode:     cfg.Mode,
	}
}

// Refresh reloads active and archived notes from the store.
func (c *Controller) Refresh(ctx context.Context) error {
	c.begin()
	return c.finish("refresh", c.resync(ctx))
}

// Create validates the form values and stores a new note.
// On success the draft is cleared and the view switches back to active notes.
func (c *Controller) Create(ctx context.Context, title, body string) (Note, error) {
	title, body, err := ValidateDraft(title, body, c.maxTitle)
	if err != nil {
		return Note{}, c.reject("create", err)
	}

	c.begin()
	unlock := c.lockWrites()
	n, err := c.store.Create(ctx, title, body)
	if err == nil {
		if c.mode == ModeLocal {
			err = c.add(n)
		} else {
			err = c.resync(ctx)
		}
	}
	unlock()
	if err != nil {
		return Note{}, c.finish("create", err)
	}

	c.mu.Lock()
	c.draft = Draft{}
	c.viewArchived = false
	c.mu.Unlock()

	c.logger.Debug("note created", "id", n.ID)
	return n, c.finish("create", nil)
}

// Delete removes a note. An id the collection does not know is ignored.
func (c *Controller) Delete(ctx context.Context, id string) error {
	unlock := c.lockWrites()
	defer unlock()

	if _, ok := c.coll.Get(id); !ok {
		c.logger.Debug("delete ignored, unknown id", "id", id)
		return nil
	}

	c.begin()
	err := c.tolerate(c.store.Remove(ctx, id))
	if err == nil {
		if c.mode == ModeLocal {
			c.apply(func() { c.coll.Remove(id) })
		} else {
			err = c.resync(ctx)
		}
	}
	return c.finish("delete", err)
}

// ToggleArchive moves a note in or out of the archive.
// An id the collection does not know is ignored.
func (c *Controller) ToggleArchive(ctx context.Context, id string) error {
	unlock := c.lockWrites()
	defer unlock()

	n, ok := c.coll.Get(id)
	if !ok {
		c.logger.Debug("toggle ignored, unknown id", "id", id)
		return nil
	}

	c.begin()
	archived := !n.Archived
	err := c.tolerate(c.store.SetArchived(ctx, id, archived))
	if err == nil {
		if c.mode == ModeLocal {
			c.apply(func() { c.coll.SetArchived(id, archived) })
		} else {
			err = c.resync(ctx)
		}
	}
	return c.finish("archive", err)
}

// Get fetches a single note from the store.
func (c *Controller) Get(ctx context.Context, id string) (Note, error) {
	c.begin()
	n, err := c.store.Get(ctx, id)
	return n, c.finish("get", err)
}

// Search replaces the query used by Projection.
func (c *Controller) Search(query string) {
	c.coll.SetQuery(query)
}

// Projection returns the current view of the collection.
func (c *Controller) Projection() Projection {
	return Project(c.coll.Notes(), c.coll.Query())
}

// ShowArchived selects which partition Visible returns.
func (c *Controller) ShowArchived(show bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewArchived = show
}

// ViewingArchived reports whether the archived partition is selected.
func (c *Controller) ViewingArchived() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewArchived
}

// Visible returns the partition currently selected for display.
func (c *Controller) Visible() []Note {
	p := c.Projection()
	if c.ViewingArchived() {
		return p.Archived
	}
	return p.Active
}

// SetDraft records the pending form values.
func (c *Controller) SetDraft(title, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = Draft{Title: title, Body: body}
}

// Draft returns the pending form values.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// TitleRemaining returns the characters left for title under the configured maximum.
func (c *Controller) TitleRemaining(title string) int {
	return TitleRemaining(title, c.maxTitle)
}

// Loading reports whether any action is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// LastError returns the message of the most recent failed action.
// It is cleared by the next successful one.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Status returns a snapshot for rendering.
func (c *Controller) Status() Status {
	p := c.Projection()
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Loading:         c.inflight > 0,
		LastError:       c.lastErr,
		ViewingArchived: c.viewArchived,
		Query:           c.coll.Query(),
		Active:          len(p.Active),
		Archived:        len(p.Archived),
	}
}

// Subscribe forwards to the collection's change notifications.
func (c *Controller) Subscribe(ctx context.Context) <-chan Event {
	return c.coll.Subscribe(ctx)
}

// Collection exposes the underlying collection.
func (c *Controller) Collection() *Collection { return c.coll }

// Store returns the backing store.
func (c *Controller) Store() Store { return c.store }

// Mode returns the sync mode.
func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) resync(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		c.syncMu.Lock()
		gen := c.gen
		c.syncMu.Unlock()

		notes, err := c.fetch(ctx)
		if err != nil {
			return err
		}

		c.syncMu.Lock()
		if c.gen == gen && c.pending == 0 {
			c.coll.ReplaceAll(notes)
			c.gen++
			c.syncMu.Unlock()
			return nil
		}
		c.syncMu.Unlock()

		if attempt == resyncAttempts {
			c.logger.Debug("resync superseded by concurrent writes", "attempts", attempt)
			return nil
		}
	}
}

func (c *Controller) fetch(ctx context.Context) ([]Note, error) {
	active, err := c.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	archived, err := c.store.ListArchived(ctx)
	if err != nil {
		return nil, err
	}

	notes := make([]Note, 0, len(active)+len(archived))
	for _, n := range active {
		n.Archived = false
		notes = append(notes, n)
	}
	for _, n := range archived {
		n.Archived = true
		notes = append(notes, n)
	}
	return notes, nil
}

// add inserts a note the store just created. A collection that already holds
// the id, as after a resync from inside the store call, counts as success.
func (c *Controller) add(n Note) error {
	var err error
	c.apply(func() { err = c.coll.Add(n) })
	if errors.Is(err, ErrDuplicateID) {
		if _, ok := c.coll.Get(n.ID); ok {
			c.logger.Debug("created note already synced", "id", n.ID)
			return nil
		}
	}
	return err
}

// apply runs a collection write and marks any resync in progress as stale.
func (c *Controller) apply(fn func()) {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()
	fn()
	c.gen++
}

// lockWrites serializes mutations in local mode and is a no-op otherwise.
// While held, resyncs discard what they read from the store.
func (c *Controller) lockWrites() func() {
	if c.mode != ModeLocal {
		return func() {}
	}
	c.writeMu.Lock()
	c.syncMu.Lock()
	c.pending++
	c.syncMu.Unlock()

	return func() {
		c.syncMu.Lock()
		c.pending--
		c.gen++
		c.syncMu.Unlock()
		c.writeMu.Unlock()
	}
}

// tolerate swallows ErrNotFound in local mode, where a missing note is a no-op.
func (c *Controller) tolerate(err error) error {
	if err != nil && c.mode == ModeLocal && errors.Is(err, ErrNotFound) {
		c.logger.Debug("store does not know the note, ignoring", "error", err)
		return nil
	}
	return err
}

func (c *Controller) begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight++
}

func (c *Controller) finish(action string, err error) error {
	c.mu.Lock()
	c.inflight--
	if err != nil {
		c.lastErr = err.Error()
	} else {
		c.lastErr = ""
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("action failed", "action", action, "error", err)
	}
	return err
}

// reject records an error raised before the action reached the store.
func (c *Controller) reject(action string, err error) error {
	c.mu.Lock()
	c.lastErr = err.Error()
	c.mu.Unlock()

	c.logger.Debug("action rejected", "action", action, "error", err)
	return err
}
