// Package lifecycle exposes note change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notekeeper/pkg/core"
)

type noteSource struct {
	events <-chan core.Event
	allow  map[core.EventType]bool
	out    chan lifecycle.Event
}

// NewSource wraps a note event channel, such as the one returned by
// Controller.Subscribe or memory.WatchSeed. When types are given only events
// of those types are forwarded.
func NewSource(events <-chan core.Event, types ...core.EventType) lifecycle.Source {
	var allow map[core.EventType]bool
	if len(types) > 0 {
		allow = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			allow[t] = true
		}
	}
	return &noteSource{
		events: events,
		allow:  allow,
		out:    make(chan lifecycle.Event),
	}
}

func (s *noteSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until ctx is done or the input channel closes,
// then closes the output channel.
func (s *noteSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.forward)
	return nil
}

func (s *noteSource) forward(ctx context.Context) error {
	defer close(s.out)
	for {
		var e core.Event
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case e, ok = <-s.events:
			if !ok {
				return nil
			}
		}
		if s.allow != nil && !s.allow[e.Type] {
			continue
		}
		select {
		case s.out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}
