package memory

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Notes      int        `json:"notes"`
	Archived   int        `json:"archived"`
	Reloads    int        `json:"reloads"`
	LastReload *time.Time `json:"last_reload,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	archived := 0
	for _, n := range s.notes {
		if n.Archived {
			archived++
		}
	}
	return StoreState{
		Notes:      len(s.notes),
		Archived:   archived,
		Reloads:    s.reloads,
		LastReload: s.lastSet,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
