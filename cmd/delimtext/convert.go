package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/imran273/delimtext"
	"github.com/imran273/delimtext/internal/fileio"
)

var convertOpts struct {
	in          string
	out         string
	from        string
	to          string
	fromProfile string
	toProfile   string
	required    bool
	crlf        bool
	null        string
	fields      int
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Re-delimit a file from one dialect to another",
	Long: `Convert reads records in the source dialect and writes them in the
target dialect, re-applying escaping and enclosing as needed. Dialects are
named presets (see --from/--to) or YAML profile files.`,
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringVar(&convertOpts.in, "in", "-", "input path (- for stdin)")
	f.StringVar(&convertOpts.out, "out", "-", "output path (- for stdout)")
	f.StringVar(&convertOpts.from, "from", "csv", "source dialect name")
	f.StringVar(&convertOpts.to, "to", "csv", "target dialect name")
	f.StringVar(&convertOpts.fromProfile, "from-profile", "", "source dialect YAML profile (overrides --from)")
	f.StringVar(&convertOpts.toProfile, "to-profile", "", "target dialect YAML profile (overrides --to)")
	f.BoolVar(&convertOpts.required, "enclose-required", false, "enclose every output field")
	f.BoolVar(&convertOpts.crlf, "crlf", false, "terminate output records with \\r\\n")
	f.StringVar(&convertOpts.null, "null", "", "output text for the target dialect's null marker")
	f.IntVar(&convertOpts.fields, "fields", 0, "expected fields per record (0 = width of first record)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	from, err := resolveDialect(convertOpts.from, convertOpts.fromProfile)
	if err != nil {
		return err
	}
	to, err := resolveDialect(convertOpts.to, convertOpts.toProfile)
	if err != nil {
		return err
	}
	if convertOpts.required {
		to.EncloseRequired = true
	}
	if convertOpts.crlf {
		to.CRLF = true
	}
	if convertOpts.null != "" {
		to.Null = convertOpts.null
	}

	src, err := fileio.Open(convertOpts.in)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := fileio.Create(convertOpts.out)
	if err != nil {
		return err
	}

	if err := convert(src, dst, from, to, convertOpts.fields); err != nil {
		dst.Close()
		return err
	}
	// Close finalizes compressed output streams; its error matters.
	return dst.Close()
}

func convert(src io.Reader, dst io.Writer, from, to delimtext.Delimiters, fields int) error {
	p := delimtext.NewParser(src)
	p.Dialect = from
	p.ReuseRecord = true
	p.FieldsPerRecord = fields

	w := delimtext.NewWriter(dst)
	w.Dialect = to

	records := 0
	for {
		record, err := p.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, delimtext.ErrFieldCount) {
				return fmt.Errorf("record %d: %w", records+1, err)
			}
			return err
		}
		if err := w.Write(record); err != nil {
			return err
		}
		records++
	}
	return w.Flush()
}
