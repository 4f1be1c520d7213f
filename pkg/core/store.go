package core

import "context"

// Store defines the contract for the source of truth behind a collection.
// Adhering to this interface keeps the core independent of where notes live
// (a remote REST API, an in-process seed list).
//
// A Store owns no client-side state: every call is a plain request/response.
type Store interface {
	// ListActive returns the notes that are not archived.
	ListActive(ctx context.Context) ([]Note, error)

	// ListArchived returns the archived notes.
	ListArchived(ctx context.Context) ([]Note, error)

	// Get retrieves a note by its ID.
	Get(ctx context.Context, id string) (Note, error)

	// Create stores a new note. The store assigns ID and CreatedAt.
	Create(ctx context.Context, title, body string) (Note, error)

	// Remove deletes a note by its ID.
	Remove(ctx context.Context, id string) error

	// SetArchived moves a note in or out of the archive.
	SetArchived(ctx context.Context, id string, archived bool) error
}
