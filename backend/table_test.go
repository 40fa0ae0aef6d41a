package backend

import (
	"image/color"
	"io"
	"log/slog"
	"strings"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/scrollchart/chart"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

const sample = `section, item, load (line), idle (bar), busy (bar), note
Mon, Mon 1, 10, 1, 3, x
Mon, Mon 2, 20, 2, 2, y
Mon,,, , ,
Tue, Tue 1, 30, 4, 4, z
`

func parse(t *testing.T, data string, opts TableOptions) *Table {
	t.Helper()
	table, err := ParseTable(strings.NewReader(data), opts, quiet)
	require.NoError(t, err)
	return table
}

func TestParseTableStructure(t *testing.T) {
	table := parse(t, sample, DefaultTableOptions())

	require.Len(t, table.Columns, 3)
	assert.Equal(t, Column{Name: "load", Kind: KindLine, Color: table.Columns[0].Color, field: 2}, table.Columns[0])
	assert.Equal(t, "idle", table.Columns[1].Name)
	assert.Equal(t, KindBar, table.Columns[2].Kind)

	assert.Equal(t, 2, table.Sections())
	assert.Equal(t, 3, table.Items(0))
	assert.Equal(t, 1, table.Items(1))
	assert.Equal(t, 4, table.Rows())

	title, ok := table.SectionTitle(1)
	assert.True(t, ok)
	assert.Equal(t, "Tue", title)

	text, ok := table.ItemText(chart.Index{Section: 0, Item: 1})
	assert.True(t, ok)
	assert.Equal(t, "Mon 2", text)
	_, ok = table.ItemText(chart.Index{Section: 0, Item: 2})
	assert.False(t, ok)

	lo, hi, ok := table.LineRange()
	require.True(t, ok)
	assert.Equal(t, 10.0, lo)
	assert.Equal(t, 30.0, hi)
	assert.Equal(t, 8.0, table.BarMax())
}

func TestParseTableDataSets(t *testing.T) {
	opts := DefaultTableOptions()
	opts.FillAlpha = 0x40
	opts.Smoothed = false
	table := parse(t, sample, opts)

	sets := table.DataSets()
	require.Len(t, sets, 2)
	bars, ok := sets[0].(*chart.BarDataSet)
	require.True(t, ok, "bars are drawn below lines")
	line, ok := sets[1].(*chart.LineDataSet)
	require.True(t, ok)

	assert.False(t, line.Smoothed)
	require.NotNil(t, line.FillColor)
	assert.Equal(t, uint8(0x40), line.FillColor.A)
	assert.Equal(t, table.Columns[0].Color, line.LineColor)

	for _, tc := range []struct {
		index chart.Index
		ratio float32
		ok    bool
	}{
		{index: chart.Index{Section: 0, Item: 0}, ratio: 0, ok: true},
		{index: chart.Index{Section: 0, Item: 1}, ratio: .5, ok: true},
		{index: chart.Index{Section: 0, Item: 2}, ok: false},
		{index: chart.Index{Section: 1, Item: 0}, ratio: 1, ok: true},
	} {
		ratio, ok := line.Values.ValueAt(tc.index)
		assert.Equal(t, tc.ok, ok, "%v", tc.index)
		assert.InDelta(t, tc.ratio, ratio, 1e-6, "%v", tc.index)
	}

	segments, ok := bars.Values.BarAt(chart.Index{Section: 0, Item: 0})
	require.True(t, ok)
	require.Len(t, segments, 2)
	assert.InDelta(t, .125, segments[0].Fraction, 1e-6)
	assert.InDelta(t, .375, segments[1].Fraction, 1e-6)
	assert.Equal(t, table.Columns[1].Color, segments[0].Color)

	_, ok = bars.Values.BarAt(chart.Index{Section: 0, Item: 2})
	assert.False(t, ok)

	axis, ok := table.Axis()
	require.True(t, ok)
	require.Len(t, axis.Items, 5)
	assert.Equal(t, "10", axis.Items[0].Label)
	assert.Equal(t, "20", axis.Items[2].Label)
	assert.Equal(t, "30", axis.Items[4].Label)
}

func TestParseTableBadCells(t *testing.T) {
	data := "s,i,a (line),b (bar)\nx,1,oops,-1\nx,2,NaN,2\nx,3,4,\n"
	table := parse(t, data, DefaultTableOptions())
	assert.Equal(t, 3, table.Skipped)
	assert.Equal(t, 3, table.Items(0))

	lo, hi, ok := table.LineRange()
	require.True(t, ok)
	assert.Equal(t, 4.0, lo)
	assert.Equal(t, 4.0, hi)
	line := table.DataSets()[1].(*chart.LineDataSet)
	ratio, ok := line.Values.ValueAt(chart.Index{Item: 2})
	assert.True(t, ok)
	assert.Equal(t, float32(.5), ratio, "a flat line sits mid band")
}

func TestParseTableErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
		want error
	}{
		{name: "empty", data: "", want: ErrNoHeader},
		{name: "no data columns", data: "s,i,notes\nx,1,hello\n", want: ErrNoDataColumns},
		{name: "only leading columns", data: "s,i\n", want: ErrNoDataColumns},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTable(strings.NewReader(tc.data), DefaultTableOptions(), quiet)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := ParseTable(strings.NewReader("s,i,a (line)\nx,\"1,2\n"), DefaultTableOptions(), quiet)
	assert.Error(t, err)
}

func TestParseTableOptions(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	opts := DefaultTableOptions()
	opts.Palette = []color.NRGBA{red}
	opts.AxisDivisions = 0
	opts.ShowBarFocus = true
	table := parse(t, sample, opts)

	for _, col := range table.Columns {
		assert.Equal(t, red, col.Color)
	}
	_, ok := table.Axis()
	assert.False(t, ok)
	assert.True(t, table.DataSets()[0].FocusShown())
}

func TestTableLaysOut(t *testing.T) {
	table := parse(t, sample, DefaultTableOptions())
	snap := chart.BuildSnapshot(table, chart.DefaultStyle(), f32.Pt(320, 200))
	assert.Equal(t, 2, snap.Layout.Sections())
	require.Len(t, snap.Hints, 2)
	assert.Len(t, snap.Hints[1].(*chart.LineHint).Runs, 1)
}

func TestPalette(t *testing.T) {
	p := Palette(8)
	require.Len(t, p, 8)
	seen := map[color.NRGBA]bool{}
	for _, c := range p {
		assert.Equal(t, uint8(0xff), c.A)
		seen[c] = true
	}
	assert.Len(t, seen, 8)
	assert.Equal(t, p[:3], Palette(3))
}
