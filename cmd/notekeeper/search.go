package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search titles and bodies, case-insensitively",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := args[0]
		ctrl := openController(context.Background())
		ctrl.Search(query)
		p := ctrl.Projection()

		if jsonOut {
			printJSON(p)
			return
		}

		if p.IsEmpty {
			fmt.Println(emptyStyle.Render(p.EmptyMessage(query)))
			return
		}
		printNotes(os.Stdout, "Active", p.Active, "No active matches")
		fmt.Println()
		printNotes(os.Stdout, "Archived", p.Archived, "No archived matches")
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
