package platform

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/notekeeper/pkg/adapters/memory"
	"github.com/aretw0/notekeeper/pkg/adapters/remote"
	"github.com/aretw0/notekeeper/pkg/core"
)

// New builds a Controller wired to the configured store.
//
//	ctrl, err := notekeeper.New(notekeeper.WithAdapter("remote"))
//
// The collection starts empty; call Refresh to load it.
func New(opts ...Option) (*core.Controller, error) {
	o := apply(opts)
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	store, mode, err := openStore(o, logger)
	if err != nil {
		return nil, err
	}

	coll := core.NewCollection(core.CollectionConfig{
		Logger:      logger,
		EventBuffer: o.eventBuffer,
	})
	logger.Debug("controller ready", "adapter", o.adapter, "mode", mode.String())

	return core.NewController(store, core.ControllerConfig{
		Collection:     coll,
		Logger:         logger,
		MaxTitleLength: o.maxTitle,
		Mode:           mode,
	}), nil
}

// NewMemoryStore builds the store the memory adapter would use, honoring the
// seed options.
func NewMemoryStore(opts ...Option) (*memory.Store, error) {
	o := apply(opts)
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return newMemoryStore(o, logger)
}

func openStore(o *options, logger *slog.Logger) (core.Store, core.Mode, error) {
	if o.store != nil {
		if o.localMode {
			return o.store, core.ModeLocal, nil
		}
		return o.store, core.ModeRemote, nil
	}

	switch o.adapter {
	case AdapterMemory:
		s, err := newMemoryStore(o, logger)
		if err != nil {
			return nil, 0, err
		}
		return s, core.ModeLocal, nil
	case AdapterRemote:
		return remote.NewClient(remote.Config{
			BaseURL:    o.baseURL,
			HTTPClient: o.httpClient,
			Logger:     logger,
			UserAgent:  o.userAgent,
		}), core.ModeRemote, nil
	default:
		return nil, 0, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

func newMemoryStore(o *options, logger *slog.Logger) (*memory.Store, error) {
	seed := o.seed
	switch {
	case seed != nil:
	case o.seedFiles != "":
		notes, err := memory.LoadSeedFiles(o.seedFiles)
		if err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		if len(notes) == 0 {
			logger.Warn("seed pattern matched no notes", "pattern", o.seedFiles)
		}
		seed = notes
	default:
		seed = memory.DefaultSeed()
	}

	return memory.NewStore(memory.Config{Seed: seed, Logger: logger})
}
