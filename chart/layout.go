package chart

import (
	"gioui.org/f32"

	"git.sr.ht/~whereswaldon/scrollchart/geom"
)

// scrollPadThreshold is the content to view width ratio below which an
// extra view width of trailing space is added.
const scrollPadThreshold = 1.2

// Layout is the geometry of a chart for one data source snapshot, style and
// view size. It is immutable once built.
type Layout struct {
	Style    Style
	ViewSize f32.Point

	// SectionFrames holds one rectangle per section, ordered by x.
	SectionFrames      []geom.Rect
	SectionTitleWidths []float32
	sectionTitles      []string
	itemCounts         []int

	ContentSize f32.Point
	// TrailingPad is the extra space added after the right margin so the
	// chart can always scroll past its last item.
	TrailingPad float32
	// AxisAreaWidth is the gutter reserved for axis labels.
	AxisAreaWidth float32

	FocusTextAreaHeight    float32
	SectionTitleAreaHeight float32
	// TitleAreaHeight covers the section titles and the topmost axis label.
	TitleAreaHeight float32

	first, last Index
	hasItems    bool
	scrollBound float32
}

// NewLayout computes the layout of src for a view of the given size.
func NewLayout(src DataSource, style Style, viewSize f32.Point) *Layout {
	l := &Layout{
		Style:    style,
		ViewSize: viewSize,
	}
	st := &l.Style
	measurer := st.measurer()

	if _, ok := src.Axis(); ok && st.ShowAxis {
		l.AxisAreaWidth = st.AxisAreaWidth(viewSize.X)
	}

	sections := src.Sections()
	l.SectionFrames = make([]geom.Rect, 0, sections)
	l.SectionTitleWidths = make([]float32, 0, sections)
	l.sectionTitles = make([]string, 0, sections)
	l.itemCounts = make([]int, 0, sections)

	separator := st.sectionSeparatorWidth()
	titleExtra := st.SectionTitleInsets.Left + st.SectionTitleInsets.Right + st.BackgroundLineWidth
	frameHeight := viewSize.Y - st.ContentMargins.Top - st.ContentMargins.Bottom

	x := st.ContentMargins.Left + l.AxisAreaWidth
	for section := 0; section < sections; section++ {
		items := src.Items(section)
		title, hasTitle := src.SectionTitle(section)
		if !st.ShowSectionTitles {
			title, hasTitle = "", false
		}
		var titleWidth float32
		if hasTitle {
			titleWidth = measurer.TextWidth(title, st.SectionTitleFont)
		}

		width := separator + st.ItemWidth*float32(items) + st.SectionPadding
		if items > 0 {
			width += float32(items-1) * st.ItemPadding
		}
		if st.ShowSectionTitles {
			if st.TruncateSectionTitles {
				titleWidth = max(min(titleWidth, width-titleExtra), 0)
			} else {
				width = max(width, titleWidth+titleExtra)
			}
		}

		l.SectionFrames = append(l.SectionFrames, geom.XYWH(x, st.ContentMargins.Top, width, frameHeight))
		l.SectionTitleWidths = append(l.SectionTitleWidths, titleWidth)
		l.sectionTitles = append(l.sectionTitles, title)
		l.itemCounts = append(l.itemCounts, items)

		if items > 0 {
			if !l.hasItems {
				l.first = Index{Section: section}
				l.hasItems = true
			}
			l.last = Index{Section: section, Item: items - 1}
		}
		x += width
	}
	x += st.ContentMargins.Right

	contentWidth := x
	if contentWidth < viewSize.X*scrollPadThreshold {
		l.TrailingPad = viewSize.X
		contentWidth += l.TrailingPad
	}
	l.ContentSize = f32.Pt(contentWidth, viewSize.Y)

	if st.ShowFocus {
		l.FocusTextAreaHeight = measurer.LineHeight(st.FocusTextFont)*float32(st.FocusTextLineCount) +
			2*st.FocusTextMargin.Y + st.FocusNeedleLength
	}
	if st.ShowSectionTitles {
		l.SectionTitleAreaHeight = measurer.LineHeight(st.SectionTitleFont) +
			st.SectionTitleInsets.Top + st.SectionTitleInsets.Bottom
	}
	// The topmost axis label is reserved for even when no axis is shown so
	// toggling the axis does not move the chart band.
	l.TitleAreaHeight = l.SectionTitleAreaHeight + measurer.LineHeight(st.AxisTextFont) + 2*st.AxisTextMargin.Y

	if l.hasItems {
		l.scrollBound = l.ScrollOffsetForItem(l.last)
	}
	return l
}

// Sections returns the number of sections laid out.
func (l *Layout) Sections() int { return len(l.itemCounts) }

// Items returns the number of items in a section.
func (l *Layout) Items(section int) int { return l.itemCounts[section] }

// SectionTitle returns the title drawn for a section, empty when titles are
// hidden.
func (l *Layout) SectionTitle(section int) string { return l.sectionTitles[section] }

// FirstItem returns the first item of the chart, if there is any.
func (l *Layout) FirstItem() (Index, bool) { return l.first, l.hasItems }

// LastItem returns the last item of the chart, if there is any.
func (l *Layout) LastItem() (Index, bool) { return l.last, l.hasItems }

// BandFor returns the vertical extent of the chart band for a view height.
func (l *Layout) BandFor(viewHeight float32) (top, bottom float32) {
	st := &l.Style
	top = st.ContentMargins.Top + l.TitleAreaHeight + st.BackgroundLineWidth
	bottom = viewHeight - l.FocusTextAreaHeight - st.BackgroundLineWidth - st.ContentMargins.Bottom
	return top, bottom
}

// Band returns the vertical extent of the chart band for the laid out view.
func (l *Layout) Band() (top, bottom float32) {
	return l.BandFor(l.ViewSize.Y)
}

// ItemFrame returns the rectangle of an item, spanning the chart band.
func (l *Layout) ItemFrame(index Index) geom.Rect {
	st := &l.Style
	section := l.SectionFrames[index.Section]
	top, bottom := l.Band()
	x := section.Min.X + st.sectionSeparatorWidth() + (st.ItemWidth+st.ItemPadding)*float32(index.Item)
	return geom.Rect{
		Min: f32.Pt(x, top),
		Max: f32.Pt(x+st.ItemWidth, bottom),
	}
}

// focusParams returns the constants of the focus mapping
//
//	position(x) = x*(1 + c2/c3) + c1
func (l *Layout) focusParams() (c1, c2, c3 float32) {
	st := &l.Style
	viewWidth := l.ViewSize.X
	c1 = l.AxisAreaWidth + st.ContentMargins.Left + st.ItemWidth/2
	c2 = viewWidth - st.ContentMargins.Right - st.ContentMargins.Left - st.ItemWidth - l.AxisAreaWidth
	c3 = l.ContentSize.X - viewWidth
	return c1, c2, c3
}

func (l *Layout) focusGain() float32 {
	_, c2, c3 := l.focusParams()
	if c3 <= 0 {
		// Nothing to scroll; the focus does not travel.
		return 1
	}
	return 1 + c2/c3
}

// FocusPosition maps a horizontal scroll offset onto the content x
// coordinate of the focus. At offset 0 it sits on the center of the first
// item and at the maximum offset on the center of the last one.
func (l *Layout) FocusPosition(offsetX float32) float32 {
	c1, _, _ := l.focusParams()
	return offsetX*l.focusGain() + c1
}

// ScrollOffsetForItem inverts FocusPosition for the center of an item.
func (l *Layout) ScrollOffsetForItem(index Index) float32 {
	c1, _, _ := l.focusParams()
	return (l.ItemFrame(index).MidX() - c1) / l.focusGain()
}

// ScrollBound is the offset at which the last item's center is focused. ok
// is false when the chart has no items.
func (l *Layout) ScrollBound() (offset float32, ok bool) {
	return l.scrollBound, l.hasItems
}

// MaxScrollOffset is the largest offset a host allows.
func (l *Layout) MaxScrollOffset() float32 {
	return max(l.ContentSize.X-l.ViewSize.X, 0)
}

// InitialOffset is the scroll offset applied after a reload.
func (l *Layout) InitialOffset() float32 {
	if l.Style.InitialPosition == FirstItem {
		return 0
	}
	return l.ContentSize.X - l.ViewSize.X
}

// VisibleSections returns the half-open range of sections whose frames
// reach into rect horizontally.
func (l *Layout) VisibleSections(rect geom.Rect) (lo, hi int, ok bool) {
	n := len(l.SectionFrames)
	if n == 0 {
		return 0, 0, false
	}
	first := geom.InsertionIndex(l.SectionFrames, rect, func(a, b geom.Rect) bool {
		return a.Min.X < b.Min.X
	})
	// The section starting before rect may still extend into it.
	lo = max(first-1, 0)
	hi = lo
	for hi < n && l.SectionFrames[hi].Min.X <= rect.Max.X {
		if hi == lo && !l.SectionFrames[hi].OverlapsX(rect) {
			lo++
		}
		hi++
	}
	return lo, hi, lo < hi
}

// ItemForFocus finds the item under the focus position among the sections
// [lo,hi). Each item frame is widened by half the item padding on both
// sides. A focus before the first item of the chart resolves to the first
// item and a focus after the last item resolves to the last one.
func (l *Layout) ItemForFocus(focus float32, lo, hi int) (Index, geom.Rect, bool) {
	halfPad := l.Style.ItemPadding / 2
	for section := lo; section < hi; section++ {
		for item := 0; item < l.itemCounts[section]; item++ {
			index := Index{Section: section, Item: item}
			frame := l.ItemFrame(index)
			if focus >= frame.Min.X-halfPad && focus <= frame.Max.X+halfPad {
				return index, frame, true
			}
			if index == l.first && focus < frame.Min.X {
				return index, frame, true
			}
			if index == l.last && focus > frame.Max.X {
				return index, frame, true
			}
		}
	}
	return Index{}, geom.Rect{}, false
}
