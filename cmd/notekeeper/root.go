package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeeper"
	"github.com/aretw0/notekeeper/internal/platform"
	"github.com/aretw0/notekeeper/pkg/core"
)

var (
	verbose  bool
	jsonOut  bool
	adapter  string
	apiRoot  string
	seedGlob string
	maxTitle int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notekeeper",
	Short: "A note-keeping client for the notes REST API",
	Long: `Notekeeper lists, searches, creates, archives and deletes notes.
It talks to the hosted notes API or to an in-memory store seeded from YAML.
Changes made with the memory adapter live only as long as the process;
run "notekeeper serve" and point --api at it to keep them between commands.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		wd, err := os.Getwd()
		if err != nil {
			return
		}
		path, err := platform.LoadEnv(wd)
		if err != nil {
			logger.Warn("ignoring env file", "error", err)
		} else if path != "" {
			logger.Debug("loaded env file", "path", path)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", platform.AdapterMemory, "Store adapter (memory, remote)")
	rootCmd.PersistentFlags().StringVar(&apiRoot, "api", "", "API root for the remote adapter")
	rootCmd.PersistentFlags().StringVar(&seedGlob, "seed", "", "YAML seed files for the memory adapter (supports **)")
	rootCmd.PersistentFlags().IntVar(&maxTitle, "max-title", core.DefaultMaxTitleLength, "Maximum title length")
}

// options merges the environment with the flags; flags set explicitly win.
func options() ([]notekeeper.Option, error) {
	opts, err := platform.FromEnv()
	if err != nil {
		return nil, err
	}
	opts = append(opts, notekeeper.WithLogger(slog.Default()))

	flags := rootCmd.PersistentFlags()
	if flags.Changed("adapter") {
		opts = append(opts, notekeeper.WithAdapter(adapter))
	}
	if flags.Changed("api") {
		opts = append(opts, notekeeper.WithBaseURL(apiRoot))
	}
	if flags.Changed("seed") {
		opts = append(opts, notekeeper.WithSeedFiles(seedGlob))
	}
	if flags.Changed("max-title") {
		opts = append(opts, notekeeper.WithMaxTitleLength(maxTitle))
	}
	return opts, nil
}

// openController builds the controller and loads the collection.
func openController(ctx context.Context) *core.Controller {
	opts, err := options()
	if err != nil {
		fatal("Error reading configuration", err)
	}
	ctrl, err := notekeeper.New(opts...)
	if err != nil {
		fatal("Error initializing notekeeper", err)
	}
	if err := ctrl.Refresh(ctx); err != nil {
		fatal("Error loading notes", err)
	}
	return ctrl
}
