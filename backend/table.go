package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/scrollchart/chart"
)

var (
	ErrNoHeader      = errors.New("backend: missing header row")
	ErrNoDataColumns = errors.New("backend: header has no (line) or (bar) columns")
)

// Column kinds are declared by a suffix on the header cell, as in
// "temperature (line)".
const (
	lineSuffix = "(line)"
	barSuffix  = "(bar)"
)

// Leading columns of every record, before the data columns.
const (
	sectionField = iota
	textField
	firstDataField
)

type ColumnKind uint8

const (
	KindLine ColumnKind = iota
	KindBar
)

func (k ColumnKind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBar:
		return "bar"
	default:
		return "unknown"
	}
}

// Column is a data column of a table.
type Column struct {
	Name  string
	Kind  ColumnKind
	Color color.NRGBA
	field int
}

// TableOptions controls how table columns become chart data sets.
type TableOptions struct {
	Smoothed  bool
	LineWidth float32
	// FillAlpha, when non zero, fills the area below each line with the
	// line color at this alpha.
	FillAlpha     uint8
	ShowLineFocus bool
	ShowBarFocus  bool
	// AxisDivisions is the number of intervals between axis lines. Zero
	// hides the axis.
	AxisDivisions int
	// Palette colors the data columns in order. Nil means Palette(n).
	Palette []color.NRGBA
}

func DefaultTableOptions() TableOptions {
	return TableOptions{
		Smoothed:      true,
		LineWidth:     1,
		ShowLineFocus: true,
		AxisDivisions: 4,
	}
}

type row struct {
	text   string
	values []float64
	ok     []bool
}

type section struct {
	title string
	rows  []row
}

// Table is an immutable chart.DataSource parsed from CSV.
//
// The first column names the section of each record; consecutive records
// with the same value form one section. The second column holds the focus
// text of the item. Every later column whose header ends in "(line)" or
// "(bar)" is data; other columns are ignored. Line columns are scaled
// together between their smallest and largest value. Bar columns stack into
// a single bar per item, scaled by the tallest stack.
type Table struct {
	Columns []Column
	// Skipped counts cells that could not be parsed and were treated as
	// holes.
	Skipped int

	sections         []section
	lineMin, lineMax float64
	barMax           float64
	hasLines         bool
	hasBars          bool
	sets             []chart.DataSet
	axis             chart.Axis
	hasAxis          bool
}

var _ chart.DataSource = (*Table)(nil)

// ParseTable reads a whole table from r.
func ParseTable(r io.Reader, opts TableOptions, log *slog.Logger) (*Table, error) {
	if log == nil {
		log = slog.Default()
	}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	} else if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := &Table{lineMin: math.Inf(1), lineMax: math.Inf(-1)}
	if err := t.parseHeader(header, opts); err != nil {
		return nil, err
	}

	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("read record %d: %w", line, err)
		}
		t.insert(rec, line, log)
	}
	t.build(opts)
	return t, nil
}

func (t *Table) parseHeader(header []string, opts TableOptions) error {
	for i := firstDataField; i < len(header); i++ {
		heading := strings.TrimSpace(header[i])
		lower := strings.ToLower(heading)
		col := Column{field: i}
		switch {
		case strings.HasSuffix(lower, lineSuffix):
			col.Kind = KindLine
			col.Name = strings.TrimSpace(heading[:len(heading)-len(lineSuffix)])
		case strings.HasSuffix(lower, barSuffix):
			col.Kind = KindBar
			col.Name = strings.TrimSpace(heading[:len(heading)-len(barSuffix)])
		default:
			continue
		}
		t.Columns = append(t.Columns, col)
	}
	if len(t.Columns) == 0 {
		return ErrNoDataColumns
	}
	palette := opts.Palette
	if len(palette) == 0 {
		palette = Palette(len(t.Columns))
	}
	for i := range t.Columns {
		t.Columns[i].Color = palette[i%len(palette)]
	}
	return nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (t *Table) insert(rec []string, line int, log *slog.Logger) {
	title := field(rec, sectionField)
	if n := len(t.sections); n == 0 || t.sections[n-1].title != title {
		t.sections = append(t.sections, section{title: title})
	}
	r := row{
		text:   field(rec, textField),
		values: make([]float64, len(t.Columns)),
		ok:     make([]bool, len(t.Columns)),
	}
	var stack float64
	for i, col := range t.Columns {
		cell := field(rec, col.field)
		if cell == "" {
			// Empty cells are holes.
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = errors.New("not a finite number")
		}
		if err == nil && col.Kind == KindBar && v < 0 {
			err = errors.New("negative bar value")
		}
		if err != nil {
			log.Warn("backend: skipping cell", "record", line, "column", col.Name, "value", cell, "err", err)
			t.Skipped++
			continue
		}
		r.values[i], r.ok[i] = v, true
		switch col.Kind {
		case KindLine:
			t.hasLines = true
			t.lineMin = min(t.lineMin, v)
			t.lineMax = max(t.lineMax, v)
		case KindBar:
			t.hasBars = true
			stack += v
		}
	}
	t.barMax = max(t.barMax, stack)
	last := &t.sections[len(t.sections)-1]
	last.rows = append(last.rows, r)
}

func (t *Table) row(index chart.Index) *row {
	return &t.sections[index.Section].rows[index.Item]
}

// lineRatio maps a line value onto the chart band.
func (t *Table) lineRatio(v float64) float32 {
	if t.lineMax <= t.lineMin {
		return .5
	}
	return float32((v - t.lineMin) / (t.lineMax - t.lineMin))
}

func (t *Table) build(opts TableOptions) {
	var barCols []int
	for i, col := range t.Columns {
		if col.Kind == KindBar {
			barCols = append(barCols, i)
		}
	}
	if len(barCols) > 0 {
		bars := chart.NewBarDataSet(chart.BarValuesFunc(func(index chart.Index) ([]chart.BarSegment, bool) {
			r := t.row(index)
			var segments []chart.BarSegment
			for _, i := range barCols {
				if !r.ok[i] || t.barMax == 0 {
					continue
				}
				segments = append(segments, chart.BarSegment{
					Fraction: float32(r.values[i] / t.barMax),
					Color:    t.Columns[i].Color,
				})
			}
			return segments, len(segments) > 0
		}))
		bars.ShowFocus = opts.ShowBarFocus
		t.sets = append(t.sets, bars)
	}

	for i, col := range t.Columns {
		if col.Kind != KindLine {
			continue
		}
		line := chart.NewLineDataSet(chart.LineValuesFunc(func(index chart.Index) (float32, bool) {
			r := t.row(index)
			if !r.ok[i] {
				return 0, false
			}
			return t.lineRatio(r.values[i]), true
		}))
		line.LineColor = col.Color
		line.LineWidth = opts.LineWidth
		line.Smoothed = opts.Smoothed
		line.ShowFocus = opts.ShowLineFocus
		if opts.FillAlpha != 0 {
			fill := col.Color
			fill.A = opts.FillAlpha
			line.FillColor = &fill
		}
		t.sets = append(t.sets, line)
	}

	if opts.AxisDivisions > 0 && (t.hasLines || t.hasBars) {
		t.hasAxis = true
		t.axis = chart.EvenAxis(opts.AxisDivisions, t.axisLabel)
	}
}

// axisLabel labels a band fraction with the line value it stands for, or the
// bar value when there are no lines.
func (t *Table) axisLabel(fraction float32) string {
	f := float64(fraction)
	var v float64
	switch {
	case t.hasLines && t.lineMax > t.lineMin:
		v = t.lineMin + f*(t.lineMax-t.lineMin)
	case t.hasLines:
		v = t.lineMin
	default:
		v = f * t.barMax
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// Rows returns the number of records in the table.
func (t *Table) Rows() int {
	var n int
	for _, s := range t.sections {
		n += len(s.rows)
	}
	return n
}

// LineRange returns the smallest and largest line value.
func (t *Table) LineRange() (lo, hi float64, ok bool) {
	return t.lineMin, t.lineMax, t.hasLines
}

// BarMax returns the height of the tallest bar stack.
func (t *Table) BarMax() float64 { return t.barMax }

func (t *Table) Sections() int { return len(t.sections) }

func (t *Table) Items(s int) int { return len(t.sections[s].rows) }

func (t *Table) SectionTitle(s int) (string, bool) {
	title := t.sections[s].title
	return title, title != ""
}

func (t *Table) ItemText(index chart.Index) (string, bool) {
	text := t.row(index).text
	return text, text != ""
}

func (t *Table) DataSets() []chart.DataSet { return t.sets }

func (t *Table) Axis() (chart.Axis, bool) { return t.axis, t.hasAxis }
