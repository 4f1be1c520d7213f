package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeeper/pkg/core"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		ctx := context.Background()
		ctrl := openController(ctx)

		if _, ok := ctrl.Collection().Get(id); !ok {
			fatal("Error deleting note", core.ErrNotFound)
		}
		if err := ctrl.Delete(ctx, id); err != nil {
			fatal("Error deleting note", err)
		}

		if jsonOut {
			printJSON(ctrl.Status())
			return
		}
		printOK("Note deleted: %s", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
