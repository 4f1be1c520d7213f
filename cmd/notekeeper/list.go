package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var listArchived bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List active notes, or archived ones with --archived",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctrl := openController(context.Background())
		ctrl.ShowArchived(listArchived)
		notes := ctrl.Visible()

		if jsonOut {
			printJSON(notes)
			return
		}

		empty := ctrl.Projection().EmptyMessage("")
		if empty == "" {
			empty = "Nothing here yet"
		}
		header := "Notes"
		if listArchived {
			header = "Archived"
		}
		printNotes(os.Stdout, header, notes, empty)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "Show archived notes")
}
