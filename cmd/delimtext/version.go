package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imran273/delimtext"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of delimtext",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("delimtext version %s\n", delimtext.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
