package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imran273/delimtext"
)

var quoteOpts struct {
	escape   string
	enclose  string
	triggers string
	required bool
}

var quoteCmd = &cobra.Command{
	Use:   "quote [value...]",
	Short: "Escape and enclose individual field values",
	Long: `Quote applies the field formatting rules to each argument (or to each
line of stdin when no arguments are given) and prints the result. Empty
escape or enclose sequences disable the respective step.`,
	RunE: runQuote,
}

func init() {
	f := quoteCmd.Flags()
	f.StringVar(&quoteOpts.escape, "escape", `\`, "escape sequence (empty disables)")
	f.StringVar(&quoteOpts.enclose, "enclose", `"`, "enclosing sequence (empty disables)")
	f.StringVar(&quoteOpts.triggers, "triggers", ",\r\n", "characters that force enclosing")
	f.BoolVar(&quoteOpts.required, "required", false, "always enclose")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		for _, arg := range args {
			fmt.Fprintln(out, delimtext.Format(arg, quoteOpts.escape, quoteOpts.enclose, quoteOpts.triggers, quoteOpts.required))
		}
		return nil
	}

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fmt.Fprintln(out, delimtext.Format(sc.Text(), quoteOpts.escape, quoteOpts.enclose, quoteOpts.triggers, quoteOpts.required))
	}
	return sc.Err()
}
