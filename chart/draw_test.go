package chart

import (
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/scrollchart/geom"
)

func drawSource() *testSource {
	axis := EvenAxis(1, func(f float32) string {
		if f == 0 {
			return "low"
		}
		return "high"
	})
	line := NewLineDataSet(LineValuesFunc(func(index Index) (float32, bool) {
		return float32(index.Item) / 3, true
	}))
	line.LineColor = blue
	bar := NewBarDataSet(BarValuesFunc(func(Index) ([]BarSegment, bool) {
		return []BarSegment{{Fraction: .5, Color: red}}, true
	}))
	return &testSource{
		sizes:  []int{3},
		titles: map[int]string{0: "S"},
		texts:  true,
		sets:   []DataSet{line, bar},
		axis:   &axis,
	}
}

func TestSnapshotDrawOrder(t *testing.T) {
	size := f32.Pt(400, 200)
	snap := BuildSnapshot(drawSource(), DefaultStyle(), size)
	bounds := geom.Rect{Max: size}

	var rec Recorder
	snap.Draw(&rec, bounds, bounds)

	assert.Equal(t, []OpKind{
		// Axis lines, then the background line.
		OpStrokePath, OpStrokePath,
		OpStrokePath,
		// Separator and title.
		OpStrokePath, OpDrawText,
		// Line and its focus.
		OpStrokePath, OpFillEllipse,
		// Bars and their focus.
		OpFillRect, OpFillRect, OpFillRect, OpStrokePath,
		// Needle, bubble and label.
		OpFillPath, OpFillPath, OpDrawText,
		// Axis labels.
		OpFillRect, OpDrawText, OpFillRect, OpDrawText,
	}, rec.Kinds())

	assert.Equal(t, "S", rec.Ops[4].Text)
	assert.Equal(t, "0/0", rec.Ops[13].Text)
	assert.Equal(t, "low", rec.Ops[15].Text)
	assert.Equal(t, "high", rec.Ops[17].Text)

	// The line is smoothed.
	line := rec.Ops[5].Path.Segments
	require.Len(t, line, 3)
	assert.Equal(t, SegMoveTo, line[0].Op)
	assert.Equal(t, SegCubeTo, line[1].Op)
}

func TestSnapshotDrawWithoutDecorations(t *testing.T) {
	src := drawSource()
	fill := blue
	src.sets[0].(*LineDataSet).FillColor = &fill
	st := DefaultStyle()
	st.ShowFocus = false
	st.ShowAxis = false
	st.ShowSectionSeparator = false
	st.ShowSectionTitles = false

	size := f32.Pt(400, 200)
	snap := BuildSnapshot(src, st, size)
	bounds := geom.Rect{Max: size}
	var rec Recorder
	snap.Draw(&rec, bounds, bounds)

	assert.Equal(t, []OpKind{
		OpStrokePath,
		OpStrokePath, OpFillPath,
		OpFillRect, OpFillRect, OpFillRect,
	}, rec.Kinds())

	fillPath := rec.Ops[2].Path.Segments
	_, bottom := snap.Layout.Band()
	assert.Equal(t, SegClose, fillPath[len(fillPath)-1].Op)
	assert.InDelta(t, bottom, fillPath[len(fillPath)-2].Args[0].Y, epsilon)
	assert.Equal(t, blue, rec.Ops[2].Color)
}

func TestSnapshotFocusIndicators(t *testing.T) {
	size := f32.Pt(400, 200)
	snap := BuildSnapshot(drawSource(), DefaultStyle(), size)
	l := snap.Layout

	target := Index{Item: 2}
	offset := l.ScrollOffsetForItem(target)
	bounds := geom.Rect{Max: size}.Add(f32.Pt(offset, 0))

	index, frame, ok := snap.Focus(bounds)
	require.True(t, ok)
	assert.Equal(t, target, index)
	assert.Equal(t, l.ItemFrame(target), frame)

	var rec Recorder
	snap.Draw(&rec, bounds, bounds)
	var ellipse, barFocus *Op
	for i := range rec.Ops {
		switch op := &rec.Ops[i]; op.Kind {
		case OpFillEllipse:
			ellipse = op
		case OpStrokePath:
			if op.Color == l.Style.FocusColor && op.Width == l.Style.FocusStrokeWidth {
				barFocus = op
			}
		}
	}
	require.NotNil(t, ellipse)
	point, _ := snap.Hints[0].(*LineHint).PointAt(target)
	assert.InDelta(t, point.X, ellipse.Rect.MidX(), epsilon)
	assert.InDelta(t, point.Y, ellipse.Rect.MidY(), epsilon)
	assert.InDelta(t, 2*l.Style.FocusIndicatorRadius, ellipse.Rect.Dx(), epsilon)

	require.NotNil(t, barFocus)
	bar, _ := snap.Hints[1].(*BarHint).BarAt(target)
	assert.Equal(t, RectPath(bar), barFocus.Path)
}

func TestSnapshotStickyTitle(t *testing.T) {
	src := &testSource{sizes: []int{40, 40}, titles: map[int]string{0: "first", 1: "second"}}
	st := DefaultStyle()
	snap := BuildSnapshot(src, st, f32.Pt(200, 200))
	frame := snap.Layout.SectionFrames[0]

	titleX := func(rect geom.Rect) float32 {
		var rec Recorder
		snap.Draw(&rec, rect, rect)
		for _, op := range rec.Ops {
			if op.Kind == OpDrawText && op.Text == "first" {
				return op.Rect.Min.X
			}
		}
		t.Fatalf("title not drawn for %v", rect)
		return 0
	}

	assert.InDelta(t, frame.Min.X+st.BackgroundLineWidth+st.SectionTitleInsets.Left, titleX(geom.XYWH(0, 0, 200, 200)), epsilon)
	assert.InDelta(t, 300+st.SectionTitleInsets.Left, titleX(geom.XYWH(300, 0, 200, 200)), epsilon)
	limit := frame.Max.X - snap.Layout.SectionTitleWidths[0] - st.SectionTitleInsets.Left
	assert.InDelta(t, limit, titleX(geom.XYWH(frame.Max.X-5, 0, 200, 200)), epsilon)
}

func TestSnapshotEmpty(t *testing.T) {
	snap := BuildSnapshot(&testSource{}, DefaultStyle(), f32.Pt(100, 100))
	var rec Recorder
	snap.Draw(&rec, geom.Rect{Max: f32.Pt(100, 100)}, geom.Rect{Max: f32.Pt(100, 100)})
	assert.Equal(t, []OpKind{OpStrokePath}, rec.Kinds())
}
