package chart

import (
	"gioui.org/f32"

	"git.sr.ht/~whereswaldon/scrollchart/geom"
)

// runContext is the number of points kept on either side of the visible
// points of a clipped run, so clipped curves keep their true tangents.
const runContext = 2

func spanOrder(minX, maxX float32, rect geom.Rect) geom.Order {
	switch {
	case maxX < rect.Min.X:
		return geom.ContinueRight
	case minX > rect.Max.X:
		return geom.ContinueLeft
	default:
		return geom.Match
	}
}

// VisibleRuns returns the runs of h reaching into the x span of rect. The
// first and last of them are trimmed to their points inside the span plus
// runContext points on each side.
func (h *LineHint) VisibleRuns(rect geom.Rect) []Run {
	lo, hi, ok := geom.IndexRange(h.Runs, func(r Run) geom.Order {
		return spanOrder(r.MinX(), r.MaxX(), rect)
	})
	if !ok {
		return nil
	}
	runs := make([]Run, 0, hi-lo)
	runs = append(runs, h.Runs[lo:hi]...)
	runs[0] = trimRun(runs[0], rect)
	if last := len(runs) - 1; last > 0 {
		runs[last] = trimRun(runs[last], rect)
	}
	return runs
}

func trimRun(r Run, rect geom.Rect) Run {
	n := len(r.Points)
	first, _ := geom.SearchFunc(n, func(i int) geom.Order {
		if r.Points[i].Point.X < rect.Min.X {
			return geom.ContinueRight
		}
		return geom.ContinueLeft
	})
	end, _ := geom.SearchFunc(n, func(i int) geom.Order {
		if r.Points[i].Point.X <= rect.Max.X {
			return geom.ContinueRight
		}
		return geom.ContinueLeft
	})
	first = max(first-runContext, 0)
	end = min(end+runContext, n)
	return Run{Points: r.Points[first:end]}
}

// PointAt returns the point drawn for an item, if it has a value.
func (h *LineHint) PointAt(index Index) (f32.Point, bool) {
	i, ok := geom.BinarySearch(h.Runs, func(r Run) geom.Order {
		return indexSpanOrder(r.Points[0].Index, r.Points[len(r.Points)-1].Index, index)
	})
	if !ok {
		return f32.Point{}, false
	}
	points := h.Runs[i].Points
	j, ok := geom.BinarySearch(points, func(p HintPoint) geom.Order {
		return indexSpanOrder(p.Index, p.Index, index)
	})
	if !ok {
		return f32.Point{}, false
	}
	return points[j].Point, true
}

func indexSpanOrder(first, last, target Index) geom.Order {
	switch {
	case last.Before(target):
		return geom.ContinueRight
	case target.Before(first):
		return geom.ContinueLeft
	default:
		return geom.Match
	}
}

// VisibleBars returns the bar segments reaching into the x span of rect.
func (h *BarHint) VisibleBars(rect geom.Rect) []BarRect {
	lo, hi, ok := geom.IndexRange(h.Rects, func(b BarRect) geom.Order {
		return spanOrder(b.Rect.Min.X, b.Rect.Max.X, rect)
	})
	if !ok {
		return nil
	}
	return h.Rects[lo:hi]
}

// BarAt returns the rectangle covered by all segments of an item's bar.
func (h *BarHint) BarAt(index Index) (geom.Rect, bool) {
	lo, hi, ok := geom.IndexRange(h.Rects, func(b BarRect) geom.Order {
		return indexSpanOrder(b.Index, b.Index, index)
	})
	if !ok {
		return geom.Rect{}, false
	}
	bar := h.Rects[lo].Rect
	for _, b := range h.Rects[lo+1 : hi] {
		bar.Min.Y = min(bar.Min.Y, b.Rect.Min.Y)
		bar.Max.Y = max(bar.Max.Y, b.Rect.Max.Y)
	}
	return bar, true
}
