package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of anthology-mirror",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("anthology-mirror %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
