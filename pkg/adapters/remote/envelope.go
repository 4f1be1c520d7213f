package remote

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/aretw0/notekeeper/pkg/core"
)

// Envelope is the wrapper the notes API puts around every response.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Envelope status values used by the API.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// decodeEnvelope parses a response body. A body that is not a JSON envelope
// yields the zero Envelope so that the HTTP status still decides the outcome.
func decodeEnvelope(body []byte) Envelope {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}
	}
	return env
}

// hasData reports whether the envelope carries a non-null payload.
func (e Envelope) hasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// apiError builds the error for a non-success status: the envelope message,
// else the status text, else a generic fallback.
func apiError(code int, env Envelope) *core.APIError {
	msg := env.Message
	if msg == "" {
		msg = http.StatusText(code)
	}
	if msg == "" {
		msg = "API error"
	}
	return &core.APIError{StatusCode: code, Message: msg}
}
