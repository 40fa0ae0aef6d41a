package chart

import (
	"fmt"
	"image/color"

	"gioui.org/f32"
)

// testSource is a DataSource over fixed section sizes.
type testSource struct {
	sizes  []int
	titles map[int]string
	texts  bool
	sets   []DataSet
	axis   *Axis
}

func (s *testSource) Sections() int { return len(s.sizes) }

func (s *testSource) Items(section int) int { return s.sizes[section] }

func (s *testSource) SectionTitle(section int) (string, bool) {
	t, ok := s.titles[section]
	return t, ok
}

func (s *testSource) ItemText(index Index) (string, bool) {
	if !s.texts {
		return "", false
	}
	return fmt.Sprintf("%d/%d", index.Section, index.Item), true
}

func (s *testSource) DataSets() []DataSet { return s.sets }

func (s *testSource) Axis() (Axis, bool) {
	if s.axis == nil {
		return Axis{}, false
	}
	return *s.axis, true
}

// bareStyle has no margins, decorations or reserved text areas, so that the
// chart band spans the whole view height.
func bareStyle(itemWidth float32) Style {
	st := DefaultStyle()
	st.ContentMargins = Insets{}
	st.BackgroundLineWidth = 0
	st.ShowSectionTitles = false
	st.ShowSectionSeparator = false
	st.SectionPadding = 0
	st.ItemPadding = 0
	st.ItemWidth = itemWidth
	st.ShowFocus = false
	st.ShowAxis = false
	st.AxisTextFont = Font{}
	st.AxisTextMargin = f32.Point{}
	return st
}

// sectionValues returns line values present for the first item of every
// listed section.
func sectionValues(ratio float32, sections ...int) LineValues {
	present := make(map[int]bool)
	for _, s := range sections {
		present[s] = true
	}
	return LineValuesFunc(func(index Index) (float32, bool) {
		return ratio, present[index.Section]
	})
}

var (
	red  = color.NRGBA{R: 0xff, A: 0xff}
	blue = color.NRGBA{B: 0xff, A: 0xff}
)
