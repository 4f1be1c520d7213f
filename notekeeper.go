package notekeeper

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/notekeeper/internal/platform"
	"github.com/aretw0/notekeeper/pkg/core"
)

// --- Types ---

// Note is a public alias for the core note.
type Note = core.Note

// Controller is a public alias for the core controller.
type Controller = core.Controller

// Projection is a public alias for the core projection.
type Projection = core.Projection

// --- Configuration ---

// Option defines a functional option for configuring notekeeper.
type Option = platform.Option

// WithAdapter selects the store by name: "memory" (default) or "remote".
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithBaseURL sets the API root used by the remote adapter.
func WithBaseURL(url string) Option {
	return platform.WithBaseURL(url)
}

// WithHTTPClient sets the HTTP client used by the remote adapter.
func WithHTTPClient(c *http.Client) Option {
	return platform.WithHTTPClient(c)
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithMaxTitleLength bounds note titles at creation.
func WithMaxTitleLength(n int) Option {
	return platform.WithMaxTitleLength(n)
}

// WithEventBuffer sets the per-subscriber event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithSeed sets the initial notes of the memory adapter.
func WithSeed(notes []Note) Option {
	return platform.WithSeed(notes)
}

// WithSeedFiles loads the initial notes of the memory adapter from YAML files.
func WithSeedFiles(pattern string) Option {
	return platform.WithSeedFiles(pattern)
}

// WithStore injects a custom core.Store.
func WithStore(s core.Store) Option {
	return platform.WithStore(s)
}

// WithLocalMode applies mutations locally instead of resynchronizing.
func WithLocalMode(local bool) Option {
	return platform.WithLocalMode(local)
}

// --- Constructor ---

// New builds a Controller. The collection starts empty until Refresh.
func New(opts ...Option) (*Controller, error) {
	opts = append([]Option{platform.WithUserAgent(UserAgent())}, opts...)
	return platform.New(opts...)
}
