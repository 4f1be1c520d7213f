package core

import (
	"errors"
	"net/http"
)

// Common errors.
var (
	ErrNotFound    = errors.New("note not found")
	ErrDuplicateID = errors.New("duplicate note id")
	ErrValidation  = errors.New("validation failed")
	ErrNetwork     = errors.New("network error")
)

// ValidationError reports input rejected before any store is contacted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is makes ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NetworkError reports a transport failure: the request got no response.
// Its message is the transport cause, unchanged.
type NetworkError struct {
	Op  string // e.g. "GET /notes"
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return ErrNetwork.Error()
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is makes NetworkError match ErrNetwork.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// APIError reports a response with a non-success HTTP status.
// Message is the envelope message, or the status text when the envelope had none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// Is makes a 404 APIError match ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
