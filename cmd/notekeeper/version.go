package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeeper"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notekeeper",
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOut {
			printJSON(map[string]string{"version": notekeeper.Version})
			return
		}
		fmt.Printf("notekeeper version %s\n", notekeeper.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
