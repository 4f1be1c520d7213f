package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aretw0/notekeeper/pkg/core"
)

// DefaultBaseURL is the hosted notes API.
const DefaultBaseURL = "https://notes-api.dicoding.dev/v2"

// Config holds the configuration for the remote client.
type Config struct {
	BaseURL    string // Empty means DefaultBaseURL.
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// Client implements core.Store over the notes REST API.
// It holds no note state; every call is one HTTP round trip.
type Client struct {
	baseURL   string
	http      *http.Client
	logger    *slog.Logger
	userAgent string
}

// NewClient creates a new remote client.
func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		baseURL:   strings.TrimRight(base, "/"),
		http:      hc,
		logger:    logger,
		userAgent: cfg.UserAgent,
	}
}

// ListActive implements core.Store.
func (c *Client) ListActive(ctx context.Context) ([]core.Note, error) {
	var notes []core.Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// ListArchived implements core.Store.
func (c *Client) ListArchived(ctx context.Context) ([]core.Note, error) {
	var notes []core.Note
	if err := c.do(ctx, http.MethodGet, "/notes/archived", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Get implements core.Store.
func (c *Client) Get(ctx context.Context, id string) (core.Note, error) {
	var n core.Note
	if err := c.do(ctx, http.MethodGet, notePath(id), nil, &n); err != nil {
		return core.Note{}, err
	}
	return n, nil
}

type createRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Create implements core.Store.
func (c *Client) Create(ctx context.Context, title, body string) (core.Note, error) {
	var n core.Note
	if err := c.do(ctx, http.MethodPost, "/notes", createRequest{Title: title, Body: body}, &n); err != nil {
		return core.Note{}, err
	}
	return n, nil
}

// Remove implements core.Store.
func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, notePath(id), nil, nil)
}

// SetArchived implements core.Store.
func (c *Client) SetArchived(ctx context.Context, id string, archived bool) error {
	action := "/unarchive"
	if archived {
		action = "/archive"
	}
	return c.do(ctx, http.MethodPost, notePath(id)+action, nil, nil)
}

var _ core.Store = (*Client)(nil)

func notePath(id string) string {
	return "/notes/" + url.PathEscape(id)
}

// do performs one request and unwraps the envelope into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &core.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &core.NetworkError{Op: op, Err: err}
	}
	c.logger.Debug("api call", "op", op, "status", resp.StatusCode)

	env := decodeEnvelope(raw)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, env)
	}
	if out == nil || !env.hasData() {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s: %w", op, err)
	}
	return nil
}
