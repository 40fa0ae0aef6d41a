package chart

import (
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/scrollchart/geom"
)

func runItems(r Run) []int {
	var items []int
	for _, p := range r.Points {
		items = append(items, p.Index.Item)
	}
	return items
}

// twentyPoints lays out one section of 20 items whose centers sit at
// x = 5 + 10*item.
func twentyPoints(t *testing.T) *LineHint {
	t.Helper()
	ds := NewLineDataSet(LineValuesFunc(func(Index) (float32, bool) { return .5, true }))
	src := &testSource{sizes: []int{20}, sets: []DataSet{ds}}
	return BuildHint(ds, NewLayout(src, bareStyle(10), f32.Pt(100, 100))).(*LineHint)
}

func TestVisibleRunsTrimmed(t *testing.T) {
	h := twentyPoints(t)
	for _, tc := range []struct {
		name   string
		x0, x1 float32
		want   []int
	}{
		{name: "middle", x0: 52, x1: 78, want: []int{3, 4, 5, 6, 7, 8, 9}},
		{name: "start", x0: 0, x1: 12, want: []int{0, 1, 2}},
		{name: "end", x0: 190, x1: 300, want: []int{17, 18, 19}},
		{name: "between points", x0: 56, x1: 58, want: []int{4, 5, 6, 7}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			runs := h.VisibleRuns(geom.XYWH(tc.x0, 0, tc.x1-tc.x0, 100))
			require.Len(t, runs, 1)
			assert.Equal(t, tc.want, runItems(runs[0]))
		})
	}

	assert.Empty(t, h.VisibleRuns(geom.XYWH(300, 0, 100, 100)))
	// Trimming does not touch the cached run.
	assert.Len(t, h.Runs[0].Points, 20)
}

func TestVisibleRunsAcrossGap(t *testing.T) {
	ds := NewLineDataSet(sectionValues(.5, 0, 1, 2, 6, 7, 8))
	src := &testSource{sizes: []int{1, 1, 1, 1, 1, 1, 1, 1, 1}, sets: []DataSet{ds}}
	h := BuildHint(ds, NewLayout(src, bareStyle(10), f32.Pt(100, 100))).(*LineHint)
	require.Len(t, h.Runs, 2)

	// Section centers are at 5, 15, ..., 85.
	runs := h.VisibleRuns(geom.XYWH(40, 0, 20, 100))
	assert.Empty(t, runs)

	runs = h.VisibleRuns(geom.XYWH(20, 0, 50, 100))
	require.Len(t, runs, 2)
	assert.Equal(t, []int{0, 1, 2}, runSections(runs[0]))
	assert.Equal(t, []int{6, 7, 8}, runSections(runs[1]))

	runs = h.VisibleRuns(geom.XYWH(70, 0, 30, 100))
	require.Len(t, runs, 1)
	assert.Equal(t, []int{6, 7, 8}, runSections(runs[0]))
}

func TestLinePointAt(t *testing.T) {
	ds := NewLineDataSet(sectionValues(.25, 0, 1, 5))
	src := &testSource{sizes: []int{1, 1, 1, 1, 1, 1}, sets: []DataSet{ds}}
	l := NewLayout(src, bareStyle(10), f32.Pt(100, 100))
	h := BuildHint(ds, l).(*LineHint)

	pt, ok := h.PointAt(Index{Section: 5})
	require.True(t, ok)
	assert.InDelta(t, 55, pt.X, epsilon)
	assert.InDelta(t, 75, pt.Y, epsilon)

	_, ok = h.PointAt(Index{Section: 3})
	assert.False(t, ok)
}

func TestVisibleBars(t *testing.T) {
	ds := NewBarDataSet(BarValuesFunc(func(Index) ([]BarSegment, bool) {
		return []BarSegment{{Fraction: .2, Color: red}, {Fraction: .2, Color: blue}}, true
	}))
	src := &testSource{sizes: []int{10}, sets: []DataSet{ds}}
	h := BuildHint(ds, NewLayout(src, bareStyle(10), f32.Pt(100, 100))).(*BarHint)
	require.Len(t, h.Rects, 20)

	bars := h.VisibleBars(geom.XYWH(25, 0, 20, 100))
	var items []int
	for _, b := range bars {
		items = append(items, b.Index.Item)
	}
	// Items 2, 3 and 4 span [20,30], [30,40] and [40,50].
	assert.Equal(t, []int{2, 2, 3, 3, 4, 4}, items)

	assert.Empty(t, h.VisibleBars(geom.XYWH(200, 0, 10, 100)))
}
