package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	"github.com/aretw0/notekeeper/internal/mockapi"
	"github.com/aretw0/notekeeper/internal/platform"
	"github.com/aretw0/notekeeper/pkg/adapters/memory"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notes API from an in-memory store",
	Long: `Serve exposes the same REST contract as the hosted notes API, backed by
the memory adapter. With --seed the seed files are watched and reloaded.
Point another notekeeper at it with --adapter remote --api http://<addr>.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := lifecycle.NewSignalContext(context.Background())
		defer ctx.Cancel()
		logger := slog.Default()

		opts, err := options()
		if err != nil {
			fatal("Error reading configuration", err)
		}
		store, err := platform.NewMemoryStore(opts...)
		if err != nil {
			fatal("Error loading seed", err)
		}

		if pattern := seedPattern(); pattern != "" {
			reloads, err := memory.WatchSeed(ctx, store, pattern, logger)
			if err != nil {
				fatal("Error watching seed", err)
			}
			lifecycle.Go(ctx, func(ctx context.Context) error {
				for e := range reloads {
					logger.Info("store reset from seed", "event", e.String())
				}
				return nil
			})
		}

		srv := &http.Server{
			Addr:              serveAddr,
			Handler:           mockapi.NewServer(store, logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		lifecycle.Go(ctx, func(ctx context.Context) error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}, lifecycle.WithErrorHandler(func(err error) {
			logger.Error("shutdown failed", "error", err)
		}))

		logger.Info("serving notes API", "addr", serveAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Error serving", err)
		}
	},
}

// seedPattern is the seed glob in effect: the flag, else the environment.
func seedPattern() string {
	if rootCmd.PersistentFlags().Changed("seed") {
		return seedGlob
	}
	return os.Getenv(platform.EnvSeed)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "Listen address")
}
