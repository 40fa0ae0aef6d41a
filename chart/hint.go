package chart

import (
	"image/color"

	"gioui.org/f32"

	"git.sr.ht/~whereswaldon/scrollchart/curve"
	"git.sr.ht/~whereswaldon/scrollchart/geom"
)

// maxRunSectionGap is the largest section distance between two consecutive
// points of a run. A distance of 2 skips exactly one section.
const maxRunSectionGap = 2

// Hint is the precomputed screen geometry of one data set, either a
// *LineHint or a *BarHint.
type Hint interface {
	// FocusShown reports whether the data set draws a focus indicator.
	FocusShown() bool
	hint()
}

// HintPoint is a point of a line run. Unless Control is nil it describes
// the cubic segment arriving at Point from the previous point of the run.
type HintPoint struct {
	Index   Index
	Point   f32.Point
	Control *curve.Control
}

// Run is a maximal sequence of section adjacent points, ordered by x.
type Run struct {
	Points []HintPoint
}

// MinX returns the x of the first point of the run.
func (r Run) MinX() float32 { return r.Points[0].Point.X }

// MaxX returns the x of the last point of the run.
func (r Run) MaxX() float32 { return r.Points[len(r.Points)-1].Point.X }

// LineHint caches the runs of a line data set.
type LineHint struct {
	DataSet *LineDataSet
	Runs    []Run
	// Bottom is the y coordinate fills close down to.
	Bottom float32
}

func (h *LineHint) FocusShown() bool { return h.DataSet.ShowFocus }

func (*LineHint) hint() {}

// BarRect is one filled segment of a stacked bar.
type BarRect struct {
	Index Index
	Rect  geom.Rect
	Color color.NRGBA
}

// BarHint caches the segments of a bar data set in item order.
type BarHint struct {
	DataSet *BarDataSet
	Rects   []BarRect
}

func (h *BarHint) FocusShown() bool { return h.DataSet.ShowFocus }

func (*BarHint) hint() {}

// BuildHint computes the hint of ds for layout l. It returns nil for data
// set types it does not know how to draw.
func BuildHint(ds DataSet, l *Layout) Hint {
	switch ds := ds.(type) {
	case *LineDataSet:
		return buildLineHint(ds, l)
	case *BarDataSet:
		return buildBarHint(ds, l)
	}
	return nil
}

// BuildHints computes one hint per data set, in order.
func BuildHints(sets []DataSet, l *Layout) []Hint {
	hints := make([]Hint, len(sets))
	for i, ds := range sets {
		hints[i] = BuildHint(ds, l)
	}
	return hints
}

func buildLineHint(ds *LineDataSet, l *Layout) *LineHint {
	_, bottom := l.Band()
	h := &LineHint{DataSet: ds, Bottom: bottom}

	var (
		run    []HintPoint
		points []f32.Point
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		if ds.Smoothed && len(run) > 1 {
			points = points[:0]
			for _, p := range run {
				points = append(points, p.Point)
			}
			controls := curve.Hermite(points)
			for i := range controls {
				run[i+1].Control = &controls[i]
			}
		}
		h.Runs = append(h.Runs, Run{Points: run})
		run = nil
	}

	for section := 0; section < l.Sections(); section++ {
		for item := 0; item < l.Items(section); item++ {
			index := Index{Section: section, Item: item}
			ratio, ok := ds.Values.ValueAt(index)
			if !ok {
				continue
			}
			if n := len(run); n > 0 && section-run[n-1].Index.Section > maxRunSectionGap {
				flush()
			}
			frame := l.ItemFrame(index)
			run = append(run, HintPoint{
				Index: index,
				Point: f32.Pt(frame.MidX(), frame.Max.Y-frame.Dy()*ratio),
			})
		}
	}
	flush()
	return h
}

func buildBarHint(ds *BarDataSet, l *Layout) *BarHint {
	h := &BarHint{DataSet: ds}
	for section := 0; section < l.Sections(); section++ {
		for item := 0; item < l.Items(section); item++ {
			index := Index{Section: section, Item: item}
			segments, ok := ds.Values.BarAt(index)
			if !ok {
				continue
			}
			frame := l.ItemFrame(index)
			y := frame.Max.Y
			emitted := false
			for _, seg := range segments {
				height := frame.Dy() * seg.Fraction
				if height <= 0 {
					continue
				}
				h.Rects = append(h.Rects, BarRect{
					Index: index,
					Rect: geom.Rect{
						Min: f32.Pt(frame.Min.X, y-height),
						Max: f32.Pt(frame.Max.X, y),
					},
					Color: seg.Color,
				})
				y -= height
				emitted = true
			}
			// A present item with no visible segment still has an empty bar
			// on its baseline, so it can be focused.
			if !emitted {
				h.Rects = append(h.Rects, BarRect{
					Index: index,
					Rect: geom.Rect{
						Min: f32.Pt(frame.Min.X, frame.Max.Y),
						Max: f32.Pt(frame.Max.X, frame.Max.Y),
					},
				})
			}
		}
	}
	return h
}
