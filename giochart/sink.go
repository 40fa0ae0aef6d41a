// Package giochart renders charts with Gio.
//
// Chart coordinates are in device independent pixels (Dp) and font sizes in
// scaled pixels (Sp). Sink and Measurer convert them using the metric of the
// frame being drawn.
package giochart

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"

	"git.sr.ht/~whereswaldon/scrollchart/chart"
	"git.sr.ht/~whereswaldon/scrollchart/geom"
)

// Sink draws chart operations into the ops of a layout context. Origin is the
// content coordinate painted at the top left corner of the widget.
type Sink struct {
	Gtx    layout.Context
	Theme  *material.Theme
	Origin f32.Point
}

var _ chart.Sink = (*Sink)(nil)

func (s *Sink) scale() float32 {
	if s.Gtx.Metric.PxPerDp == 0 {
		return 1
	}
	return s.Gtx.Metric.PxPerDp
}

// px converts a content point to widget pixels.
func (s *Sink) px(p f32.Point) f32.Point {
	return p.Sub(s.Origin).Mul(s.scale())
}

func (s *Sink) pxRect(r geom.Rect) image.Rectangle {
	min, max := s.px(r.Min), s.px(r.Max)
	return image.Rect(int(floor(min.X)), int(floor(min.Y)), int(ceil(max.X)), int(ceil(max.Y)))
}

// strokePath converts p, closing subpaths explicitly since stroke paths have
// no close segment.
func (s *Sink) strokePath(p chart.Path) stroke.Path {
	var (
		out   stroke.Path
		start f32.Point
	)
	for _, seg := range p.Segments {
		switch seg.Op {
		case chart.SegMoveTo:
			start = s.px(seg.Args[0])
			out.Segments = append(out.Segments, stroke.MoveTo(start))
		case chart.SegLineTo:
			out.Segments = append(out.Segments, stroke.LineTo(s.px(seg.Args[0])))
		case chart.SegCubeTo:
			out.Segments = append(out.Segments, stroke.CubeTo(s.px(seg.Args[0]), s.px(seg.Args[1]), s.px(seg.Args[2])))
		case chart.SegClose:
			out.Segments = append(out.Segments, stroke.LineTo(start))
		}
	}
	return out
}

func (s *Sink) clipPath(p chart.Path) clip.PathSpec {
	var cp clip.Path
	cp.Begin(s.Gtx.Ops)
	for _, seg := range p.Segments {
		switch seg.Op {
		case chart.SegMoveTo:
			cp.MoveTo(s.px(seg.Args[0]))
		case chart.SegLineTo:
			cp.LineTo(s.px(seg.Args[0]))
		case chart.SegCubeTo:
			cp.CubeTo(s.px(seg.Args[0]), s.px(seg.Args[1]), s.px(seg.Args[2]))
		case chart.SegClose:
			cp.Close()
		}
	}
	return cp.End()
}

func (s *Sink) StrokePath(p chart.Path, width float32, c color.NRGBA) {
	if p.Empty() || width <= 0 {
		return
	}
	paint.FillShape(s.Gtx.Ops, c, stroke.Stroke{
		Path:  s.strokePath(p),
		Width: width * s.scale(),
		Cap:   stroke.RoundCap,
		Join:  stroke.RoundJoin,
	}.Op(s.Gtx.Ops))
}

func (s *Sink) FillPath(p chart.Path, c color.NRGBA) {
	if p.Empty() {
		return
	}
	paint.FillShape(s.Gtx.Ops, c, clip.Outline{Path: s.clipPath(p)}.Op())
}

func (s *Sink) FillRect(r geom.Rect, c color.NRGBA) {
	s.FillPath(chart.RectPath(r), c)
}

func (s *Sink) FillEllipse(r geom.Rect, c color.NRGBA) {
	paint.FillShape(s.Gtx.Ops, c, clip.Ellipse(s.pxRect(r)).Op(s.Gtx.Ops))
}

func (s *Sink) DrawText(txt string, r geom.Rect, f chart.Font, c color.NRGBA) {
	area := s.pxRect(r)
	defer op.Offset(area.Min).Push(s.Gtx.Ops).Pop()
	// One extra pixel keeps rounding from truncating text measured to fit.
	size := area.Size().Add(image.Pt(1, 1))
	defer clip.Rect{Max: size}.Push(s.Gtx.Ops).Pop()

	gtx := s.Gtx
	gtx.Constraints = layout.Constraints{Max: size}
	l := material.Label(s.Theme, unit.Sp(f.Size), txt)
	l.Color = c
	l.MaxLines = 1
	l.Font.Weight = font.Weight(f.Weight)
	l.Layout(gtx)
}
