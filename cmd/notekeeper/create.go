package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	createTitle string
	createBody  string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Long: `Create validates the title and body, then stores a new note.
Both are trimmed; the title must fit in --max-title characters.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		ctrl := openController(ctx)

		n, err := ctrl.Create(ctx, createTitle, createBody)
		if err != nil {
			fatal("Error creating note", err)
		}

		if jsonOut {
			printJSON(n)
			return
		}
		printOK("Note created: %s", n.ID)
		fmt.Println(renderCard(n))
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Note title")
	createCmd.Flags().StringVarP(&createBody, "body", "b", "", "Note body")
}
