package chart

import (
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSections(r Run) []int {
	var sections []int
	for _, p := range r.Points {
		sections = append(sections, p.Index.Section)
	}
	return sections
}

func TestLineHintRuns(t *testing.T) {
	for _, tc := range []struct {
		name    string
		present []int
		want    [][]int
	}{
		{name: "single missing section", present: []int{0, 1, 3, 4}, want: [][]int{{0, 1, 3, 4}}},
		{name: "two missing sections", present: []int{0, 1, 4, 5}, want: [][]int{{0, 1}, {4, 5}}},
		{name: "isolated point", present: []int{0, 5}, want: [][]int{{0}, {5}}},
		{name: "no values", present: nil, want: nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ds := NewLineDataSet(sectionValues(.5, tc.present...))
			src := &testSource{sizes: []int{1, 1, 1, 1, 1, 1}, sets: []DataSet{ds}}
			l := NewLayout(src, bareStyle(10), f32.Pt(100, 100))

			h := BuildHint(ds, l).(*LineHint)
			var got [][]int
			for _, r := range h.Runs {
				got = append(got, runSections(r))
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLineHintEmptySectionsCount(t *testing.T) {
	// Sections 2 and 3 have no items at all, so 1 and 4 are three apart.
	ds := NewLineDataSet(sectionValues(.5, 0, 1, 4))
	src := &testSource{sizes: []int{1, 1, 0, 0, 1}, sets: []DataSet{ds}}
	l := NewLayout(src, bareStyle(10), f32.Pt(100, 100))

	h := BuildHint(ds, l).(*LineHint)
	require.Len(t, h.Runs, 2)
}

func TestLineHintPoints(t *testing.T) {
	values := LineValuesFunc(func(index Index) (float32, bool) {
		if index.Item == 2 {
			return 0, false
		}
		return float32(index.Item) / 4, true
	})
	ds := NewLineDataSet(values)
	src := &testSource{sizes: []int{5}, sets: []DataSet{ds}}
	l := NewLayout(src, bareStyle(10), f32.Pt(100, 100))

	h := BuildHint(ds, l).(*LineHint)
	// A hole inside a section does not break the run.
	require.Len(t, h.Runs, 1)
	points := h.Runs[0].Points
	require.Len(t, points, 4)

	for _, p := range points {
		frame := l.ItemFrame(p.Index)
		ratio, _ := values(p.Index)
		assert.InDelta(t, frame.MidX(), p.Point.X, epsilon)
		assert.InDelta(t, frame.Max.Y-frame.Dy()*ratio, p.Point.Y, epsilon)
	}
	assert.InDelta(t, 100, h.Bottom, epsilon)

	assert.Nil(t, points[0].Control)
	for _, p := range points[1:] {
		assert.NotNil(t, p.Control)
	}
}

func TestLineHintUnsmoothed(t *testing.T) {
	ds := NewLineDataSet(sectionValues(.5, 0, 1, 2))
	ds.Smoothed = false
	src := &testSource{sizes: []int{1, 1, 1}, sets: []DataSet{ds}}
	h := BuildHint(ds, NewLayout(src, bareStyle(10), f32.Pt(100, 100))).(*LineHint)

	require.Len(t, h.Runs, 1)
	for _, p := range h.Runs[0].Points {
		assert.Nil(t, p.Control)
	}
}

func TestLineHintRatiosNotClamped(t *testing.T) {
	ds := NewLineDataSet(LineValuesFunc(func(Index) (float32, bool) { return 1.5, true }))
	src := &testSource{sizes: []int{1}, sets: []DataSet{ds}}
	h := BuildHint(ds, NewLayout(src, bareStyle(10), f32.Pt(100, 100))).(*LineHint)

	assert.InDelta(t, -50, h.Runs[0].Points[0].Point.Y, epsilon)
}

func TestBarHintStacking(t *testing.T) {
	segments := []BarSegment{{Fraction: .3, Color: red}, {Fraction: .5, Color: blue}}
	ds := NewBarDataSet(BarValuesFunc(func(Index) ([]BarSegment, bool) { return segments, true }))
	src := &testSource{sizes: []int{1}, sets: []DataSet{ds}}
	l := NewLayout(src, bareStyle(10), f32.Pt(100, 100))

	h := BuildHint(ds, l).(*BarHint)
	require.Len(t, h.Rects, 2)

	// Segments stack upward in input order from the bottom of the item.
	first, second := h.Rects[0], h.Rects[1]
	assert.Equal(t, red, first.Color)
	assert.InDelta(t, 70, first.Rect.Min.Y, epsilon)
	assert.InDelta(t, 100, first.Rect.Max.Y, epsilon)
	assert.Equal(t, blue, second.Color)
	assert.InDelta(t, 20, second.Rect.Min.Y, epsilon)
	assert.InDelta(t, 70, second.Rect.Max.Y, epsilon)

	frame := l.ItemFrame(Index{})
	for _, r := range h.Rects {
		assert.Equal(t, frame.Min.X, r.Rect.Min.X)
		assert.Equal(t, frame.Max.X, r.Rect.Max.X)
	}

	bar, ok := h.BarAt(Index{})
	require.True(t, ok)
	assert.InDelta(t, 20, bar.Min.Y, epsilon)
	assert.InDelta(t, 100, bar.Max.Y, epsilon)
}

func TestBarHintOrderAndHoles(t *testing.T) {
	ds := NewBarDataSet(BarValuesFunc(func(index Index) ([]BarSegment, bool) {
		switch index.Item {
		case 1:
			return nil, false
		case 2:
			return []BarSegment{{Fraction: 0, Color: red}, {Fraction: .25, Color: blue}}, true
		}
		return []BarSegment{{Fraction: .5, Color: red}}, true
	}))
	src := &testSource{sizes: []int{3, 2}, sets: []DataSet{ds}}
	h := BuildHint(ds, NewLayout(src, bareStyle(10), f32.Pt(100, 100))).(*BarHint)

	var got []Index
	for i, r := range h.Rects {
		got = append(got, r.Index)
		if i > 0 {
			assert.LessOrEqual(t, h.Rects[i-1].Rect.Min.X, r.Rect.Min.X)
		}
	}
	assert.Equal(t, []Index{{0, 0}, {0, 2}, {1, 0}}, got)

	_, ok := h.BarAt(Index{Section: 0, Item: 1})
	assert.False(t, ok)
}

func TestBarHintEmptyBar(t *testing.T) {
	ds := NewBarDataSet(BarValuesFunc(func(index Index) ([]BarSegment, bool) {
		if index.Item == 1 {
			return []BarSegment{{Fraction: 0, Color: red}, {Fraction: 0, Color: blue}}, true
		}
		return []BarSegment{{Fraction: .5, Color: red}}, true
	}))
	src := &testSource{sizes: []int{3}, sets: []DataSet{ds}}
	l := NewLayout(src, bareStyle(10), f32.Pt(100, 100))
	h := BuildHint(ds, l).(*BarHint)
	require.Len(t, h.Rects, 3)

	target := Index{Item: 1}
	bar, ok := h.BarAt(target)
	require.True(t, ok, "an all zero item still has a bar to focus")
	frame := l.ItemFrame(target)
	assert.Equal(t, frame.Min.X, bar.Min.X)
	assert.Equal(t, frame.Max.X, bar.Max.X)
	assert.InDelta(t, frame.Max.Y, bar.Min.Y, epsilon)
	assert.InDelta(t, frame.Max.Y, bar.Max.Y, epsilon)
	assert.True(t, bar.Empty())
}

func TestBuildHints(t *testing.T) {
	line := NewLineDataSet(sectionValues(1, 0))
	line.ShowFocus = false
	bar := NewBarDataSet(BarValuesFunc(func(Index) ([]BarSegment, bool) { return nil, false }))
	src := &testSource{sizes: []int{1}, sets: []DataSet{line, bar}}

	hints := BuildHints(src.DataSets(), NewLayout(src, bareStyle(10), f32.Pt(100, 100)))
	require.Len(t, hints, 2)
	assert.IsType(t, &LineHint{}, hints[0])
	assert.IsType(t, &BarHint{}, hints[1])
	assert.False(t, hints[0].FocusShown())
	assert.True(t, hints[1].FocusShown())
}
