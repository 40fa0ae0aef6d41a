package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/scrollchart/backend"
	"git.sr.ht/~whereswaldon/scrollchart/config"
)

const (
	checkCmdUse   = "check <file>"
	checkCmdShort = "Parse a data file and summarize it"
	checkCmdLong  = `Parse a data file the way the viewer does and print its sections, rows
and columns. Cells that cannot be parsed are logged and counted.`
)

// ErrSkippedCells is returned by check --strict when some cells were not
// numbers.
var ErrSkippedCells = errors.New("data file has cells that could not be parsed")

func newCheckCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   checkCmdUse,
		Short: checkCmdShort,
		Long:  checkCmdLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runCheck(cmd.OutOrStdout(), cfg, args[0], strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any cell is skipped")
	return cmd
}

func runCheck(w io.Writer, cfg *config.Config, path string, strict bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat data file: %w", err)
	}

	log := cfg.Logging.NewLogger(os.Stderr)
	table, err := backend.ParseTable(f, cfg.TableOptions(), log)
	if err != nil {
		color.New(color.FgRed).Fprintf(w, "%s: %v\n", path, err)
		return err
	}

	color.New(color.FgGreen).Fprintf(w, "%s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
	fmt.Fprintf(w, "  Sections: %s\n", humanize.Comma(int64(table.Sections())))
	fmt.Fprintf(w, "  Rows:     %s\n", humanize.Comma(int64(table.Rows())))
	for _, col := range table.Columns {
		fmt.Fprintf(w, "  - %s (%s) %s\n", col.Name, col.Kind, config.FormatColor(col.Color))
	}
	if lo, hi, ok := table.LineRange(); ok {
		fmt.Fprintf(w, "  Line range: %.4g to %.4g\n", lo, hi)
	}
	if tallest := table.BarMax(); tallest > 0 {
		fmt.Fprintf(w, "  Tallest bar: %.4g\n", tallest)
	}

	if table.Skipped == 0 {
		return nil
	}
	color.New(color.FgYellow).Fprintf(w, "  Skipped cells: %s\n", humanize.Comma(int64(table.Skipped)))
	if strict {
		return ErrSkippedCells
	}
	return nil
}
