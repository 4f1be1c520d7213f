package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// idPrefix marks ids generated on the client side.
const idPrefix = "notes-"

// Note is the central entity of the domain.
// It is a titled text record with a creation time and an archived flag.
// It is agnostic to where it lives (remote API, in-memory seed).
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Body      string    `json:"body" yaml:"body"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Archived  bool      `json:"archived" yaml:"archived"`
}

// NewID returns a fresh note identifier.
// UUIDv7 is time-ordered with random bits, so no coordination is needed
// between a single client and its local store.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate note id: %w", err)
	}
	return idPrefix + id.String(), nil
}

// NewNote builds an active note stamped with the current time.
// Title and body are taken as given; validation happens in ValidateDraft.
func NewNote(title, body string) (Note, error) {
	id, err := NewID()
	if err != nil {
		return Note{}, err
	}
	return Note{
		ID:        id,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}, nil
}
