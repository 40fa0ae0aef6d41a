package chart

import (
	"image/color"

	"gioui.org/f32"

	"git.sr.ht/~whereswaldon/scrollchart/geom"
)

// Sink receives the primitive drawing operations of a redraw, in painting
// order. Coordinates are in content space.
type Sink interface {
	StrokePath(p Path, width float32, c color.NRGBA)
	FillPath(p Path, c color.NRGBA)
	FillRect(r geom.Rect, c color.NRGBA)
	FillEllipse(r geom.Rect, c color.NRGBA)
	// DrawText draws text starting at the top left corner of r. Text wider
	// than r may be clipped.
	DrawText(text string, r geom.Rect, font Font, c color.NRGBA)
}

// SegmentOp is the kind of a path segment.
type SegmentOp uint8

const (
	SegMoveTo SegmentOp = iota
	SegLineTo
	SegCubeTo
	SegClose
)

// Segment is one path command. MoveTo and LineTo use Args[0]; CubeTo uses
// the two controls Args[0], Args[1] and the end point Args[2].
type Segment struct {
	Op   SegmentOp
	Args [3]f32.Point
}

// Path is a sequence of segments, built with its methods.
type Path struct {
	Segments []Segment
}

func (p *Path) MoveTo(to f32.Point) {
	p.Segments = append(p.Segments, Segment{Op: SegMoveTo, Args: [3]f32.Point{to}})
}

func (p *Path) LineTo(to f32.Point) {
	p.Segments = append(p.Segments, Segment{Op: SegLineTo, Args: [3]f32.Point{to}})
}

func (p *Path) CubeTo(c1, c2, to f32.Point) {
	p.Segments = append(p.Segments, Segment{Op: SegCubeTo, Args: [3]f32.Point{c1, c2, to}})
}

func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Op: SegClose})
}

// Clone returns a copy of p that does not share its segments.
func (p Path) Clone() Path {
	return Path{Segments: append([]Segment(nil), p.Segments...)}
}

// Empty reports whether p has no segments.
func (p Path) Empty() bool { return len(p.Segments) == 0 }

// RectPath returns the closed outline of r.
func RectPath(r geom.Rect) Path {
	var p Path
	p.MoveTo(r.Min)
	p.LineTo(f32.Pt(r.Max.X, r.Min.Y))
	p.LineTo(r.Max)
	p.LineTo(f32.Pt(r.Min.X, r.Max.Y))
	p.Close()
	return p
}

// arcKappa places cubic control points approximating a quarter circle.
const arcKappa = 0.5522847

// RoundedRectPath returns the closed outline of r with corners of the given
// radius, limited to half the shorter side.
func RoundedRectPath(r geom.Rect, radius float32) Path {
	radius = max(min(radius, r.Dx()/2, r.Dy()/2), 0)
	if radius == 0 {
		return RectPath(r)
	}
	k := radius * arcKappa
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y

	var p Path
	p.MoveTo(f32.Pt(x0+radius, y0))
	p.LineTo(f32.Pt(x1-radius, y0))
	p.CubeTo(f32.Pt(x1-radius+k, y0), f32.Pt(x1, y0+radius-k), f32.Pt(x1, y0+radius))
	p.LineTo(f32.Pt(x1, y1-radius))
	p.CubeTo(f32.Pt(x1, y1-radius+k), f32.Pt(x1-radius+k, y1), f32.Pt(x1-radius, y1))
	p.LineTo(f32.Pt(x0+radius, y1))
	p.CubeTo(f32.Pt(x0+radius-k, y1), f32.Pt(x0, y1-radius+k), f32.Pt(x0, y1-radius))
	p.LineTo(f32.Pt(x0, y0+radius))
	p.CubeTo(f32.Pt(x0, y0+radius-k), f32.Pt(x0+radius-k, y0), f32.Pt(x0+radius, y0))
	p.Close()
	return p
}

// OpKind identifies a recorded Sink call.
type OpKind uint8

const (
	OpStrokePath OpKind = iota
	OpFillPath
	OpFillRect
	OpFillEllipse
	OpDrawText
)

func (k OpKind) String() string {
	switch k {
	case OpStrokePath:
		return "stroke path"
	case OpFillPath:
		return "fill path"
	case OpFillRect:
		return "fill rect"
	case OpFillEllipse:
		return "fill ellipse"
	case OpDrawText:
		return "draw text"
	default:
		return "unknown"
	}
}

// Op is one recorded Sink call. Only the fields relevant to Kind are set.
type Op struct {
	Kind  OpKind
	Path  Path
	Rect  geom.Rect
	Width float32
	Color color.NRGBA
	Text  string
	Font  Font
}

// Recorder is a Sink keeping every call it receives.
type Recorder struct {
	Ops []Op
}

var _ Sink = (*Recorder)(nil)

func (r *Recorder) StrokePath(p Path, width float32, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokePath, Path: p.Clone(), Width: width, Color: c})
}

func (r *Recorder) FillPath(p Path, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillPath, Path: p.Clone(), Color: c})
}

func (r *Recorder) FillRect(rect geom.Rect, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: rect, Color: c})
}

func (r *Recorder) FillEllipse(rect geom.Rect, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillEllipse, Rect: rect, Color: c})
}

func (r *Recorder) DrawText(text string, rect geom.Rect, font Font, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawText, Text: text, Rect: rect, Font: font, Color: c})
}

// Kinds returns the kinds of the recorded calls in order.
func (r *Recorder) Kinds() []OpKind {
	kinds := make([]OpKind, len(r.Ops))
	for i, op := range r.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
