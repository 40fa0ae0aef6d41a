package chart

import (
	"image/color"
	"unicode/utf8"

	"gioui.org/f32"
)

// Insets are distances from the four edges of a rectangle.
type Insets struct {
	Top, Left, Bottom, Right float32
}

// Font describes a text style. It is opaque to the layout code, which only
// hands it to a TextMeasurer and to the Sink.
type Font struct {
	Size   float32
	Weight int
}

// TextMeasurer reports text metrics. Implementations must be safe for
// concurrent use because layouts are computed off the interactive thread.
type TextMeasurer interface {
	TextWidth(text string, font Font) float32
	LineHeight(font Font) float32
}

// ApproxMeasurer estimates metrics from the font size alone, assuming every
// rune advances by the same fraction of the size.
type ApproxMeasurer struct {
	// Advance is the per rune width as a fraction of the font size.
	Advance float32
	// Leading is the line height as a multiple of the font size.
	Leading float32
}

func (m ApproxMeasurer) TextWidth(text string, font Font) float32 {
	advance := m.Advance
	if advance == 0 {
		advance = .6
	}
	return float32(utf8.RuneCountInString(text)) * font.Size * advance
}

func (m ApproxMeasurer) LineHeight(font Font) float32 {
	leading := m.Leading
	if leading == 0 {
		leading = 1.2
	}
	return font.Size * leading
}

// InitialPosition selects where a freshly reloaded chart is scrolled to.
type InitialPosition uint8

const (
	LastItem InitialPosition = iota
	FirstItem
)

func (p InitialPosition) String() string {
	switch p {
	case FirstItem:
		return "first"
	case LastItem:
		return "last"
	default:
		return "unknown"
	}
}

// Style is the flat set of options controlling layout and drawing. Negative
// sizes are not meaningful and are not checked.
type Style struct {
	BackgroundColor     color.NRGBA
	ContentMargins      Insets
	BackgroundLineWidth float32
	HorizontalLineColor color.NRGBA

	ShowSectionTitles     bool
	ShowSectionSeparator  bool
	SectionPadding        float32
	SectionTitleFont      Font
	SectionTitleInsets    Insets
	SectionTitleColor     color.NRGBA
	SectionSeparatorColor color.NRGBA
	// TruncateSectionTitles shortens titles wider than their section
	// instead of widening the section.
	TruncateSectionTitles bool

	ItemPadding float32
	ItemWidth   float32

	ShowFocus                bool
	FocusTextFont            Font
	FocusTextColor           color.NRGBA
	FocusTextBackgroundColor color.NRGBA
	FocusTextMargin          f32.Point
	FocusTextLineCount       int
	FocusIndicatorRadius     float32
	FocusColor               color.NRGBA
	FocusStrokeWidth         float32
	FocusNeedleLength        float32
	FocusBubbleRadius        float32

	ShowAxis            bool
	AxisTextFont        Font
	AxisTextColor       color.NRGBA
	AxisBackgroundColor color.NRGBA
	AxisTextMargin      f32.Point
	// AxisAreaMaxWidth and AxisAreaFraction bound the gutter reserved for
	// axis labels: min(AxisAreaMaxWidth, AxisAreaFraction*viewWidth).
	AxisAreaMaxWidth float32
	AxisAreaFraction float32
	// AxisAreaWidthFunc, if set, replaces AxisAreaMaxWidth. Its result is
	// still capped by AxisAreaFraction.
	AxisAreaWidthFunc func(viewWidth float32) float32
	AxisLineColor     color.NRGBA
	AxisLineWidth     float32

	InitialPosition InitialPosition

	// Measurer measures titles and labels. Nil means ApproxMeasurer{}.
	Measurer TextMeasurer
}

func white(a uint8) color.NRGBA {
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: a}
}

func gray(v, a uint8) color.NRGBA {
	return color.NRGBA{R: v, G: v, B: v, A: a}
}

// DefaultStyle returns a light-on-dark style.
func DefaultStyle() Style {
	return Style{
		ContentMargins:      Insets{Top: 0, Left: 15, Bottom: 5, Right: 15},
		BackgroundLineWidth: .5,
		HorizontalLineColor: white(0x1a),

		ShowSectionTitles:     true,
		ShowSectionSeparator:  true,
		SectionPadding:        1,
		SectionTitleFont:      Font{Size: 12},
		SectionTitleInsets:    Insets{Top: 5, Left: 5, Bottom: 10, Right: 5},
		SectionTitleColor:     white(0xff),
		SectionSeparatorColor: white(0x80),

		ItemPadding: 1,
		ItemWidth:   15,

		ShowFocus:                true,
		FocusTextFont:            Font{Size: 12},
		FocusTextColor:           gray(0x33, 0xff),
		FocusTextBackgroundColor: white(0xff),
		FocusTextMargin:          f32.Pt(6, 1),
		FocusTextLineCount:       1,
		FocusIndicatorRadius:     4,
		FocusColor:               white(0xff),
		FocusStrokeWidth:         1,
		FocusNeedleLength:        5,
		FocusBubbleRadius:        2,

		ShowAxis:            true,
		AxisTextFont:        Font{Size: 10},
		AxisTextColor:       white(0xff),
		AxisBackgroundColor: gray(0, 0x33),
		AxisTextMargin:      f32.Pt(5, 2),
		AxisAreaMaxWidth:    50,
		AxisAreaFraction:    .2,
		AxisLineColor:       white(0x0d),
		AxisLineWidth:       1,

		InitialPosition: LastItem,
	}
}

// AxisAreaWidth returns the gutter width for a view of the given width,
// regardless of whether an axis is shown.
func (s *Style) AxisAreaWidth(viewWidth float32) float32 {
	w := s.AxisAreaMaxWidth
	if s.AxisAreaWidthFunc != nil {
		w = s.AxisAreaWidthFunc(viewWidth)
	}
	if s.AxisAreaFraction > 0 {
		w = min(w, s.AxisAreaFraction*viewWidth)
	}
	return max(w, 0)
}

func (s *Style) measurer() TextMeasurer {
	if s.Measurer == nil {
		return ApproxMeasurer{}
	}
	return s.Measurer
}

// sectionSeparatorWidth is the space reserved at the start of each section
// for its separator line.
func (s *Style) sectionSeparatorWidth() float32 {
	if s.ShowSectionSeparator {
		return s.BackgroundLineWidth
	}
	return 0
}
