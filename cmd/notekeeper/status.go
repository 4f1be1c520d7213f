package main

import (
	"context"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Dump the internal state of the controller, collection and store",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctrl := openController(context.Background())

		out := map[string]any{
			"status":     ctrl.Status(),
			"controller": ctrl.State(),
			"collection": ctrl.Collection().State(),
		}
		if s, ok := ctrl.Store().(introspection.Introspectable); ok {
			out["store"] = s.State()
		}
		printJSON(out)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
