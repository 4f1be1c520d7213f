package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	lcsource "github.com/aretw0/notekeeper/pkg/adapters/lifecycle"
	"github.com/aretw0/notekeeper/pkg/adapters/memory"
	"github.com/aretw0/notekeeper/pkg/core"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print collection changes as they happen",
	Long: `Watch loads the collection and prints every change event until interrupted.
With the memory adapter and --seed, edits to the seed files reload the notes.
With --interval the collection is refreshed from the store periodically.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := lifecycle.NewSignalContext(context.Background())
		defer ctx.Cancel()
		logger := slog.Default()

		ctrl := openController(ctx)
		src := lcsource.NewSource(ctrl.Subscribe(ctx))
		if err := src.Start(ctx); err != nil {
			fatal("Error starting watcher", err)
		}

		if mem, ok := ctrl.Store().(*memory.Store); ok {
			if pattern := seedPattern(); pattern != "" {
				reloads, err := memory.WatchSeed(ctx, mem, pattern, logger)
				if err != nil {
					fatal("Error watching seed", err)
				}
				lifecycle.Go(ctx, func(ctx context.Context) error {
					for range reloads {
						refresh(ctx, ctrl, logger)
					}
					return nil
				})
			}
		}

		if watchInterval > 0 {
			lifecycle.Go(ctx, func(ctx context.Context) error {
				ticker := time.NewTicker(watchInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return nil
					case <-ticker.C:
						refresh(ctx, ctrl, logger)
					}
				}
			})
		}

		logger.Info("watching notes", "mode", ctrl.Mode().String())
		for e := range src.Events() {
			ev, ok := e.(core.Event)
			if !ok {
				continue
			}
			if jsonOut {
				printJSON(map[string]any{
					"type":      ev.Type,
					"id":        ev.ID,
					"timestamp": ev.Timestamp,
					"status":    ctrl.Status(),
				})
				continue
			}
			st := ctrl.Status()
			fmt.Printf("%s %s %s\n",
				dateStyle.Render(time.Unix(ev.Timestamp, 0).Format(time.TimeOnly)),
				headerStyle.Render(string(ev.Type)),
				idStyle.Render(fmt.Sprintf("%s active=%d archived=%d", ev.ID, st.Active, st.Archived)),
			)
		}
	},
}

func refresh(ctx context.Context, ctrl *core.Controller, logger *slog.Logger) {
	if err := ctrl.Refresh(ctx); err != nil && ctx.Err() == nil {
		logger.Warn("refresh failed", "error", err)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Refresh from the store at this interval (0 disables)")
}
