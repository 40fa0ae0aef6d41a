package giochart

import (
	"context"
	"image"
	"time"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"git.sr.ht/~whereswaldon/scrollchart/chart"
	"git.sr.ht/~whereswaldon/scrollchart/geom"
)

// scrollDuration is the length of animated scrolls.
const scrollDuration = 250 * time.Millisecond

type scrollAnimation struct {
	active   bool
	from, to float32
	start    time.Time
}

// Widget is a horizontally scrolling view of a chart, panned by dragging or
// with a scroll wheel.
type Widget struct {
	Chart *chart.Chart

	measurer  *Measurer
	pan       gesture.Scroll
	offset    float32
	anim      scrollAnimation
	scrolling bool
	sink      Sink
}

var _ chart.ScrollHost = (*Widget)(nil)

// NewWidget returns a widget drawing src. Unless style carries a measurer,
// text is measured with the Go fonts at the metric of the frame.
func NewWidget(ctx context.Context, src chart.DataSource, style chart.Style, opts ...chart.Option) *Widget {
	w := &Widget{}
	style = w.withMeasurer(style)
	w.Chart = chart.NewChart(ctx, src, style, append(opts, chart.WithScrollHost(w))...)
	return w
}

func (w *Widget) withMeasurer(style chart.Style) chart.Style {
	if style.Measurer != nil {
		return style
	}
	if w.measurer == nil {
		w.measurer = NewMeasurer(unit.Metric{})
	}
	style.Measurer = w.measurer
	return style
}

// SetStyle replaces the chart style and reloads.
func (w *Widget) SetStyle(style chart.Style) {
	w.Chart.SetStyle(w.withMeasurer(style))
}

// Offset returns the content coordinate shown at the left edge of the view.
func (w *Widget) Offset() float32 { return w.offset }

// SetContentOffset scrolls the view, over a short animation if animated.
func (w *Widget) SetContentOffset(x float32, animated bool) {
	if !animated {
		w.offset = x
		w.anim = scrollAnimation{}
		return
	}
	w.anim = scrollAnimation{active: true, from: w.offset, to: x}
}

// ScrollToFirst scrolls to the first item of the chart.
func (w *Widget) ScrollToFirst() bool {
	return w.scrollTo(func(l *chart.Layout) (chart.Index, bool) { return l.FirstItem() })
}

// ScrollToLast scrolls to the last item of the chart.
func (w *Widget) ScrollToLast() bool {
	return w.scrollTo(func(l *chart.Layout) (chart.Index, bool) { return l.LastItem() })
}

func (w *Widget) scrollTo(pick func(*chart.Layout) (chart.Index, bool)) bool {
	snap := w.Chart.Snapshot()
	if snap == nil {
		return false
	}
	index, ok := pick(snap.Layout)
	if !ok {
		return false
	}
	return w.Chart.ScrollToItem(index, true)
}

// easeOut maps the elapsed share of an animation to the share of the
// distance covered.
func easeOut(elapsed, total time.Duration) float32 {
	if total <= 0 || elapsed >= total {
		return 1
	}
	t := 1 - float32(elapsed)/float32(total)
	return 1 - t*t*t
}

// Update commits finished reloads and applies scrolling input.
func (w *Widget) Update(gtx layout.Context) {
	w.Chart.Update()

	dist := w.pan.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Horizontal, image.Rect(-1e6, 0, 1e6, 0))
	if dist != 0 {
		w.anim = scrollAnimation{}
		w.offset += float32(gtx.Metric.PxToDp(dist))
	}
	if w.anim.active {
		if w.anim.start.IsZero() {
			w.anim.start = gtx.Now
		}
		p := easeOut(gtx.Now.Sub(w.anim.start), scrollDuration)
		w.offset = w.anim.from + (w.anim.to-w.anim.from)*p
		if p >= 1 {
			w.anim.active = false
		} else {
			gtx.Execute(op.InvalidateCmd{})
		}
	}

	snap := w.Chart.Snapshot()
	if snap == nil {
		return
	}
	w.offset = clamp(w.offset, 0, snap.Layout.MaxScrollOffset())

	wasScrolling := w.scrolling
	w.scrolling = w.pan.State() != gesture.StateIdle
	if wasScrolling && !w.scrolling && !w.anim.active {
		if bound, ok := snap.Layout.ScrollBound(); ok && w.offset > bound {
			w.SetContentOffset(bound, true)
			gtx.Execute(op.InvalidateCmd{})
		}
	}
}

// Layout draws the visible part of the chart filling the constraints.
func (w *Widget) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	size := gtx.Constraints.Max
	view := f32.Pt(float32(gtx.Metric.PxToDp(size.X)), float32(gtx.Metric.PxToDp(size.Y)))
	if w.measurer != nil && w.measurer.SetMetric(gtx.Metric) {
		if !w.Chart.Resize(view) {
			w.Chart.Reload()
		}
	}
	w.Update(gtx)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	w.pan.Add(gtx.Ops)
	if bg := w.Chart.Style().BackgroundColor; bg.A != 0 {
		paint.Fill(gtx.Ops, bg)
	}

	bounds := geom.Rect{Min: f32.Pt(w.offset, 0), Max: f32.Pt(w.offset+view.X, view.Y)}
	w.sink = Sink{Gtx: gtx, Theme: th, Origin: bounds.Min}
	w.Chart.Redraw(&w.sink, bounds, bounds)
	return layout.Dimensions{Size: size}
}
