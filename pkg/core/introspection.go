package core

import (
	"github.com/aretw0/introspection"
)

// CollectionState exposes internal state for observability.
type CollectionState struct {
	Notes         int    `json:"notes"`
	Archived      int    `json:"archived"`
	Query         string `json:"query,omitempty"`
	Subscribers   int    `json:"subscribers"`
	EventBuffer   int    `json:"event_buffer_size"`
	DroppedEvents int    `json:"dropped_events"`
}

// State implements introspection.Introspectable.
func (c *Collection) State() any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	archived := 0
	for _, n := range c.notes {
		if n.Archived {
			archived++
		}
	}
	return CollectionState{
		Notes:         len(c.notes),
		Archived:      archived,
		Query:         c.query,
		Subscribers:   len(c.subs),
		EventBuffer:   c.bufSize,
		DroppedEvents: c.dropped,
	}
}

// ComponentType implements introspection.Component.
func (c *Collection) ComponentType() string {
	return "collection"
}

// ControllerState exposes internal state for observability.
type ControllerState struct {
	Mode           string `json:"mode"`
	StoreType      string `json:"store_type"`
	MaxTitleLength int    `json:"max_title_length"`
	InFlight       int    `json:"in_flight"`
	LastError      string `json:"last_error,omitempty"`
	ViewArchived   bool   `json:"view_archived"`
}

// State implements introspection.Introspectable.
func (c *Controller) State() any {
	c.mu.Lock()
	defer c.mu.Unlock()

	storeType := "unknown"
	if c.store != nil {
		storeType = "store"
		// Try to get component type if store implements introspection.Component
		if comp, ok := c.store.(introspection.Component); ok {
			storeType = comp.ComponentType()
		}
	}

	return ControllerState{
		Mode:           c.mode.String(),
		StoreType:      storeType,
		MaxTitleLength: c.maxTitle,
		InFlight:       c.inflight,
		LastError:      c.lastErr,
		ViewArchived:   c.viewArchived,
	}
}

// ComponentType implements introspection.Component.
func (c *Controller) ComponentType() string {
	return "controller"
}

var _ introspection.Introspectable = (*Collection)(nil)
var _ introspection.Component = (*Collection)(nil)
var _ introspection.Introspectable = (*Controller)(nil)
var _ introspection.Component = (*Controller)(nil)
