// Package notekeeper is the composition root for the note-keeping client.
//
// It wires the client-side note collection (pkg/core) to a store adapter:
// an in-memory store seeded from YAML, or the hosted notes REST API.
//
// The Controller is the entry point for every user action. It validates
// input, calls the store, keeps the Collection in sync and records loading
// and error state for the presentation layer. Projection derives the
// active/archived view for the current search query without side effects.
//
// Usage:
//
//	ctrl, err := notekeeper.New(
//		notekeeper.WithAdapter("remote"),
//		notekeeper.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	if err := ctrl.Refresh(ctx); err != nil {
//		return err
//	}
//	ctrl.Search("groceries")
//	view := ctrl.Projection()
package notekeeper
