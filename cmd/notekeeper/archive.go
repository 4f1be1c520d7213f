package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeeper/pkg/core"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Move a note into the archive, or back out of it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		ctx := context.Background()
		ctrl := openController(ctx)

		if _, ok := ctrl.Collection().Get(id); !ok {
			fatal("Error archiving note", core.ErrNotFound)
		}
		if err := ctrl.ToggleArchive(ctx, id); err != nil {
			fatal("Error archiving note", err)
		}

		n, _ := ctrl.Collection().Get(id)
		if jsonOut {
			printJSON(n)
			return
		}
		if n.Archived {
			printOK("Note archived: %s", id)
		} else {
			printOK("Note unarchived: %s", id)
		}
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
}
