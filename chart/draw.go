package chart

import (
	"gioui.org/f32"

	"git.sr.ht/~whereswaldon/scrollchart/geom"
)

// Snapshot pairs a layout with the hints computed from it. It is never
// modified once built.
type Snapshot struct {
	Source DataSource
	Layout *Layout
	Hints  []Hint
	Axis   Axis
	// HasAxis is false when the source has no axis.
	HasAxis bool
	// Generation numbers the reload that built the snapshot.
	Generation uint64
}

// BuildSnapshot lays out src and computes the hints of all its data sets.
func BuildSnapshot(src DataSource, style Style, viewSize f32.Point) *Snapshot {
	l := NewLayout(src, style, viewSize)
	axis, hasAxis := src.Axis()
	return &Snapshot{
		Source:  src,
		Layout:  l,
		Hints:   BuildHints(src.DataSets(), l),
		Axis:    axis,
		HasAxis: hasAxis,
	}
}

// Focus reports the item under the focus for a view showing bounds, along
// with its frame. Only sections visible within bounds are considered.
func (s *Snapshot) Focus(bounds geom.Rect) (Index, geom.Rect, bool) {
	l := s.Layout
	lo, hi, ok := l.VisibleSections(bounds)
	if !ok {
		return Index{}, geom.Rect{}, false
	}
	return l.ItemForFocus(l.FocusPosition(bounds.Min.X), lo, hi)
}

// Draw paints the part of the chart inside rect, for a view currently
// showing bounds. Both rectangles are in content coordinates.
func (s *Snapshot) Draw(sink Sink, rect, bounds geom.Rect) {
	l := s.Layout
	st := &l.Style
	top, bottom := l.Band()
	showAxis := s.HasAxis && st.ShowAxis

	if showAxis {
		for _, item := range s.Axis.Items {
			y := bottom - (bottom-top)*item.Fraction
			sink.StrokePath(hline(rect.Min.X, rect.Max.X, y), st.AxisLineWidth, st.AxisLineColor)
		}
	}
	sink.StrokePath(hline(rect.Min.X, rect.Max.X, bottom), st.BackgroundLineWidth, st.HorizontalLineColor)

	if lo, hi, ok := l.VisibleSections(rect); ok {
		for section := lo; section < hi; section++ {
			s.drawSeparator(sink, section, bottom)
			s.drawSectionTitle(sink, section, rect)
		}
	}

	var (
		focused  Index
		hasFocus bool
	)
	if st.ShowFocus {
		focused, _, hasFocus = s.Focus(bounds)
	}

	for _, h := range s.Hints {
		switch h := h.(type) {
		case *LineHint:
			s.drawLine(sink, h, rect)
			if hasFocus && h.FocusShown() {
				s.drawLineFocus(sink, h, focused)
			}
		case *BarHint:
			for _, b := range h.VisibleBars(rect) {
				if !b.Rect.Empty() {
					sink.FillRect(b.Rect, b.Color)
				}
			}
			if hasFocus && h.FocusShown() {
				s.drawBarFocus(sink, h, focused)
			}
		}
	}

	if hasFocus {
		if text, ok := s.Source.ItemText(focused); ok {
			s.drawFocusMarker(sink, l.FocusPosition(bounds.Min.X), text, bounds)
		}
	}

	if showAxis {
		s.drawAxisLabels(sink, rect, top, bottom)
	}
}

func hline(x0, x1, y float32) Path {
	var p Path
	p.MoveTo(f32.Pt(x0, y))
	p.LineTo(f32.Pt(x1, y))
	return p
}

func (s *Snapshot) drawSeparator(sink Sink, section int, bottom float32) {
	st := &s.Layout.Style
	if !st.ShowSectionSeparator {
		return
	}
	frame := s.Layout.SectionFrames[section]
	var p Path
	p.MoveTo(frame.Min)
	p.LineTo(f32.Pt(frame.Min.X, bottom))
	sink.StrokePath(p, st.BackgroundLineWidth, st.SectionSeparatorColor)
}

// drawSectionTitle keeps a title in view while its section scrolls past the
// left edge of rect, until it would leave the section.
func (s *Snapshot) drawSectionTitle(sink Sink, section int, rect geom.Rect) {
	l := s.Layout
	st := &l.Style
	title := l.SectionTitle(section)
	if !st.ShowSectionTitles || title == "" {
		return
	}
	frame := l.SectionFrames[section]
	x := frame.Min.X + st.BackgroundLineWidth + st.SectionTitleInsets.Left
	x = max(x, rect.Min.X+st.SectionTitleInsets.Left)
	x = min(x, frame.Max.X-l.SectionTitleWidths[section]-st.SectionTitleInsets.Left)
	y := frame.Min.Y + st.SectionTitleInsets.Top
	sink.DrawText(title, geom.XYWH(x, y, frame.Max.X-x, l.SectionTitleAreaHeight), st.SectionTitleFont, st.SectionTitleColor)
}

func (s *Snapshot) drawLine(sink Sink, h *LineHint, rect geom.Rect) {
	ds := h.DataSet
	for _, run := range h.VisibleRuns(rect) {
		points := run.Points
		if len(points) < 2 {
			continue
		}
		var p Path
		p.MoveTo(points[0].Point)
		for _, pt := range points[1:] {
			if ds.Smoothed && pt.Control != nil {
				p.CubeTo(pt.Control.C1, pt.Control.C2, pt.Point)
			} else {
				p.LineTo(pt.Point)
			}
		}
		sink.StrokePath(p, ds.LineWidth, ds.LineColor)

		if ds.FillColor != nil {
			p.LineTo(f32.Pt(points[len(points)-1].Point.X, h.Bottom))
			p.LineTo(f32.Pt(points[0].Point.X, h.Bottom))
			p.Close()
			sink.FillPath(p, *ds.FillColor)
		}
	}
}

func (s *Snapshot) drawLineFocus(sink Sink, h *LineHint, index Index) bool {
	st := &s.Layout.Style
	pt, ok := h.PointAt(index)
	if !ok {
		return false
	}
	r := st.FocusIndicatorRadius
	sink.FillEllipse(geom.Rect{Min: pt.Sub(f32.Pt(r, r)), Max: pt.Add(f32.Pt(r, r))}, st.FocusColor)
	return true
}

func (s *Snapshot) drawBarFocus(sink Sink, h *BarHint, index Index) bool {
	st := &s.Layout.Style
	bar, ok := h.BarAt(index)
	if !ok {
		return false
	}
	sink.StrokePath(RectPath(bar), st.FocusStrokeWidth, st.FocusColor)
	return true
}

// drawFocusMarker draws the needle under the focus and the text bubble
// below it. The bubble slides from the right of the needle to its left as
// the view scrolls from start to end.
func (s *Snapshot) drawFocusMarker(sink Sink, focus float32, text string, bounds geom.Rect) {
	l := s.Layout
	st := &l.Style
	_, bottom := l.Band()
	needle := f32.Pt(focus, bottom+st.BackgroundLineWidth)
	n := st.FocusNeedleLength

	var tri Path
	tri.MoveTo(needle)
	tri.LineTo(f32.Pt(needle.X-n, needle.Y+n))
	tri.LineTo(f32.Pt(needle.X+n, needle.Y+n))
	tri.Close()
	sink.FillPath(tri, st.FocusColor)

	var progress float32
	if scrollable := l.ContentSize.X - l.ViewSize.X; scrollable > 0 {
		progress = bounds.Min.X / scrollable
	}
	measurer := st.measurer()
	textSize := f32.Pt(
		measurer.TextWidth(text, st.FocusTextFont),
		measurer.LineHeight(st.FocusTextFont)*float32(st.FocusTextLineCount),
	)
	size := textSize.Add(st.FocusTextMargin.Mul(2))
	arm := n + st.FocusBubbleRadius
	x := needle.X - arm - (size.X-2*arm)*progress
	bubble := geom.XYWH(x, needle.Y+n, size.X, size.Y)
	sink.FillPath(RoundedRectPath(bubble, st.FocusBubbleRadius), st.FocusTextBackgroundColor)
	sink.DrawText(text, bubble.Inset(st.FocusTextMargin.X, st.FocusTextMargin.Y), st.FocusTextFont, st.FocusTextColor)
}

// drawAxisLabels pins the labels to the left edge of rect, each sitting on
// its line.
func (s *Snapshot) drawAxisLabels(sink Sink, rect geom.Rect, top, bottom float32) {
	st := &s.Layout.Style
	measurer := st.measurer()
	lineHeight := measurer.LineHeight(st.AxisTextFont)
	for _, item := range s.Axis.Items {
		y := bottom - (bottom-top)*item.Fraction
		size := f32.Pt(measurer.TextWidth(item.Label, st.AxisTextFont), lineHeight).Add(st.AxisTextMargin.Mul(2))
		box := geom.XYWH(rect.Min.X, y-size.Y, size.X, size.Y)
		sink.FillRect(box, st.AxisBackgroundColor)
		sink.DrawText(item.Label, box.Inset(st.AxisTextMargin.X, st.AxisTextMargin.Y), st.AxisTextFont, st.AxisTextColor)
	}
}
