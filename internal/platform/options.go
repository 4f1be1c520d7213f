package platform

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/notekeeper/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterMemory = "memory"
	AdapterRemote = "remote"
)

// options holds the internal configuration for a notekeeper controller.
type options struct {
	store       core.Store
	localMode   bool
	logger      *slog.Logger
	adapter     string
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	maxTitle    int
	eventBuffer int
	seed        []core.Note
	seedFiles   string
}

// Option defines a functional option for configuring notekeeper.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: AdapterMemory,
	}
}

func apply(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAdapter selects the store by name: "memory" (default) or "remote".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithBaseURL sets the API root used by the remote adapter.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithHTTPClient sets the HTTP client used by the remote adapter.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent by the remote adapter.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxTitleLength bounds note titles at creation. Zero means 50.
func WithMaxTitleLength(n int) Option {
	return func(o *options) {
		o.maxTitle = n
	}
}

// WithEventBuffer sets the per-subscriber event buffer. Zero means 100.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithSeed sets the initial notes of the memory adapter.
// It takes precedence over WithSeedFiles and the embedded seed.
func WithSeed(notes []core.Note) Option {
	return func(o *options) {
		o.seed = notes
	}
}

// WithSeedFiles loads the initial notes of the memory adapter from the YAML
// files matching pattern. "**" is supported.
func WithSeedFiles(pattern string) Option {
	return func(o *options) {
		o.seedFiles = pattern
	}
}

// WithStore injects a custom store. The adapter setting is then ignored.
// The controller confirms mutations and resynchronizes unless WithLocalMode(true).
func WithStore(s core.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithLocalMode makes an injected store behave like the memory adapter:
// mutations are applied locally once the store acknowledges them.
func WithLocalMode(local bool) Option {
	return func(o *options) {
		o.localMode = local
	}
}
