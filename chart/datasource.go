// Package chart lays out and draws horizontally scrolling, sectioned charts
// of line and bar data sets.
//
// A Chart rebuilds its Layout and per data set drawing hints on a background
// worker whenever Reload is called, then publishes both as a single immutable
// snapshot. Redraw only reads the most recent snapshot, resolving the part of
// it that intersects the dirty rectangle and emitting primitive drawing
// operations to a Sink.
package chart

import "image/color"

// Index addresses an item within a section.
type Index struct {
	Section, Item int
}

// Before reports whether i orders before j.
func (i Index) Before(j Index) bool {
	if i.Section != j.Section {
		return i.Section < j.Section
	}
	return i.Item < j.Item
}

// DataSource provides the structure and contents of a chart. Implementations
// must answer consistently for the lifetime of a reload: lookups are only
// made for indices within the declared counts, and results for indices
// outside them are undefined.
type DataSource interface {
	Sections() int
	Items(section int) int
	// SectionTitle returns the title of a section, if any.
	SectionTitle(section int) (string, bool)
	// ItemText returns the text displayed in the focus bubble for an item.
	ItemText(index Index) (string, bool)
	// DataSets are drawn in order, later ones on top.
	DataSets() []DataSet
	// Axis returns the horizontal reference lines, if any.
	Axis() (Axis, bool)
}

// DataSet is either a *LineDataSet or a *BarDataSet.
type DataSet interface {
	// FocusShown reports whether the focused item of this data set gets an
	// indicator.
	FocusShown() bool
	dataSet()
}

// LineValues looks up the value ratio of an item. Ratios in [0,1] map onto
// the chart band from bottom to top; ok is false for holes.
type LineValues interface {
	ValueAt(index Index) (ratio float32, ok bool)
}

// LineValuesFunc adapts a function to LineValues.
type LineValuesFunc func(index Index) (float32, bool)

func (f LineValuesFunc) ValueAt(index Index) (float32, bool) { return f(index) }

// LineDataSet draws one value per item as a (possibly smoothed) polyline.
type LineDataSet struct {
	Values    LineValues
	LineWidth float32
	LineColor color.NRGBA
	// FillColor, when non nil, fills the area between each run and the
	// bottom of the chart band.
	FillColor *color.NRGBA
	Smoothed  bool
	ShowFocus bool
}

// NewLineDataSet returns a smoothed white line of width 1 with focus shown.
func NewLineDataSet(values LineValues) *LineDataSet {
	return &LineDataSet{
		Values:    values,
		LineWidth: 1,
		LineColor: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Smoothed:  true,
		ShowFocus: true,
	}
}

func (l *LineDataSet) FocusShown() bool { return l.ShowFocus }

func (*LineDataSet) dataSet() {}

// BarSegment is one layer of a stacked bar. Fraction is the share of the
// chart band height it covers.
type BarSegment struct {
	Fraction float32
	Color    color.NRGBA
}

// BarValues looks up the stacked segments of an item, bottom first. The sum
// of the fractions is expected to be at most 1. ok is false for holes.
type BarValues interface {
	BarAt(index Index) (segments []BarSegment, ok bool)
}

// BarValuesFunc adapts a function to BarValues.
type BarValuesFunc func(index Index) ([]BarSegment, bool)

func (f BarValuesFunc) BarAt(index Index) ([]BarSegment, bool) { return f(index) }

// BarDataSet draws a stacked bar per item.
type BarDataSet struct {
	Values    BarValues
	ShowFocus bool
}

// NewBarDataSet returns a bar data set with focus shown.
func NewBarDataSet(values BarValues) *BarDataSet {
	return &BarDataSet{Values: values, ShowFocus: true}
}

func (b *BarDataSet) FocusShown() bool { return b.ShowFocus }

func (*BarDataSet) dataSet() {}

// AxisItem is a labelled horizontal line. Fraction is measured from the
// bottom of the chart band upward.
type AxisItem struct {
	Fraction float32
	Label    string
}

// Axis is an ordered set of reference lines.
type Axis struct {
	Items []AxisItem
}

// EvenAxis returns n+1 evenly spaced axis items from 0 to 1 labelled by
// label.
func EvenAxis(n int, label func(fraction float32) string) Axis {
	var a Axis
	for i := 0; i <= n; i++ {
		f := float32(i) / float32(max(n, 1))
		a.Items = append(a.Items, AxisItem{Fraction: f, Label: label(f)})
	}
	return a
}
