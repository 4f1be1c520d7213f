package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a single note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		ctrl := openController(ctx)

		n, err := ctrl.Get(ctx, args[0])
		if err != nil {
			fatal("Error reading note", err)
		}

		if jsonOut {
			printJSON(n)
			return
		}
		fmt.Println(renderCard(n))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
