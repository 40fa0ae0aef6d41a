// Command scrollchart-demo-data writes a random table for scrollchart.
//
//	scrollchart-demo-data > demo.csv
//	scrollchart-demo-data -follow 500ms -output demo.csv & scrollchart demo.csv
package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// header names the columns the viewer charts as a line and a bar.
var header = []string{"section", "item", "value (line)", "amount (bar)"}

type options struct {
	sections int
	maxItems int
	seed     uint64
	output   string
	follow   time.Duration
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:   "scrollchart-demo-data",
		Short: "Write a random demo table as CSV",
		Long: `scrollchart-demo-data writes sections of random items as CSV. Every
item has a bar value in [0,1) and, in even sections, a line value in
[0.2,0.7). Odd sections leave the line empty, which shows as a gap.

With -follow a new item is appended at every interval until interrupted,
so a viewer watching the output file keeps redrawing.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			return run(opts)
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&opts.sections, "sections", 10, "number of sections to write")
	flags.IntVar(&opts.maxItems, "max-items", 30, "largest number of items in a section")
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed, 0 picks one from the clock")
	flags.StringVarP(&opts.output, "output", "o", "-", "output file for the CSV data")
	flags.DurationVar(&opts.follow, "follow", 0, "keep appending an item at this interval")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// generator produces the rows of the demo table.
type generator struct {
	rng      *rand.Rand
	maxItems int
	section  int
	item     int
	size     int
}

func newGenerator(seed uint64, maxItems int) *generator {
	g := &generator{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		maxItems: max(maxItems, 1),
	}
	g.size = g.sectionSize()
	return g
}

func (g *generator) sectionSize() int {
	return g.rng.IntN(g.maxItems) + 1
}

// next returns the next record and moves on to a new section after the last
// item of the current one.
func (g *generator) next() []string {
	rec := []string{
		"Section " + strconv.Itoa(g.section),
		fmt.Sprintf("%d - %d", g.section, g.item),
		"",
		strconv.FormatFloat(g.rng.Float64(), 'f', 3, 64),
	}
	if g.section%2 == 0 {
		rec[2] = strconv.FormatFloat(.5*g.rng.Float64()+.2, 'f', 3, 64)
	}
	g.item++
	if g.item == g.size {
		g.section++
		g.item = 0
		g.size = g.sectionSize()
	}
	return rec
}

// writeSections writes whole sections until n sections are complete.
func (g *generator) writeSections(w *csv.Writer, n int) error {
	for g.section < n {
		if err := w.Write(g.next()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func run(opts options) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	var output io.WriteCloser = os.Stdout
	if opts.output != "-" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("open output file %q: %w", opts.output, err)
		}
		output = f
	}
	defer output.Close()

	buf := bufio.NewWriter(output)
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return err
	}
	g := newGenerator(seed, opts.maxItems)
	if err := g.writeSections(w, opts.sections); err != nil {
		return fmt.Errorf("write demo data: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	log.Info("wrote demo data", "sections", opts.sections, "seed", seed, "output", opts.output)
	if opts.follow <= 0 {
		return nil
	}

	ticker := time.NewTicker(opts.follow)
	defer ticker.Stop()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	for {
		select {
		case <-sigChan:
			return nil
		case <-ticker.C:
			if err := w.Write(g.next()); err != nil {
				return err
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return err
			}
			if err := buf.Flush(); err != nil {
				return fmt.Errorf("append demo data: %w", err)
			}
		}
	}
}
