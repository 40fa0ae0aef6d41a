// Package geom holds the float geometry and search helpers shared by the
// chart layout and drawing code.
package geom

import "gioui.org/f32"

// Rect is an axis aligned rectangle in float coordinates. Min is the top-left
// corner and Max the bottom-right one; y grows downward.
type Rect struct {
	Min, Max f32.Point
}

// XYWH builds a rectangle from an origin and a size.
func XYWH(x, y, w, h float32) Rect {
	return Rect{Min: f32.Pt(x, y), Max: f32.Pt(x+w, y+h)}
}

func (r Rect) Dx() float32 { return r.Max.X - r.Min.X }

func (r Rect) Dy() float32 { return r.Max.Y - r.Min.Y }

func (r Rect) Size() f32.Point { return r.Max.Sub(r.Min) }

func (r Rect) MidX() float32 { return (r.Min.X + r.Max.X) / 2 }

func (r Rect) MidY() float32 { return (r.Min.Y + r.Max.Y) / 2 }

// Center returns the midpoint of r.
func (r Rect) Center() f32.Point { return f32.Pt(r.MidX(), r.MidY()) }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Overlaps reports whether r and s share some area.
func (r Rect) Overlaps(s Rect) bool {
	return !r.Empty() && !s.Empty() &&
		r.Min.X < s.Max.X && s.Min.X < r.Max.X &&
		r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

// OverlapsX reports whether the horizontal spans of r and s intersect. The
// spans are treated as closed intervals so that zero width rectangles on an
// edge still count.
func (r Rect) OverlapsX(s Rect) bool {
	return r.Min.X <= s.Max.X && s.Min.X <= r.Max.X
}

// Inset shrinks r by dx on the left and right and by dy on the top and
// bottom. Negative values grow it.
func (r Rect) Inset(dx, dy float32) Rect {
	return Rect{
		Min: f32.Pt(r.Min.X+dx, r.Min.Y+dy),
		Max: f32.Pt(r.Max.X-dx, r.Max.Y-dy),
	}
}

// Add translates r by p.
func (r Rect) Add(p f32.Point) Rect {
	return Rect{Min: r.Min.Add(p), Max: r.Max.Add(p)}
}
