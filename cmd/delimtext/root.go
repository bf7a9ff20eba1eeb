package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "delimtext",
	Short: "delimtext converts and formats delimited text files",
	Long: `delimtext re-delimits text files between dialects (CSV, TSV, MySQL
LOAD DATA, Hive text tables, or custom YAML profiles), applying the escaping
and enclosing rules each dialect requires. Inputs and outputs ending in .gz,
.zst, or .zstd are (de)compressed transparently.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
