package giochart

import (
	"sync"

	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/unit"
	"golang.org/x/image/math/fixed"

	"git.sr.ht/~whereswaldon/scrollchart/chart"
)

// unbounded is a line width no label reaches.
const unbounded = 1 << 24

// Measurer measures text with a private shaper, reporting results in Dp.
// Layouts are built off the UI goroutine, so access to the shaper is
// serialized.
type Measurer struct {
	mu     sync.Mutex
	shaper *text.Shaper
	metric unit.Metric
}

var _ chart.TextMeasurer = (*Measurer)(nil)

// NewMeasurer returns a measurer using the Go fonts at the given metric.
func NewMeasurer(metric unit.Metric) *Measurer {
	return &Measurer{
		shaper: text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts()),
		metric: normalized(metric),
	}
}

func normalized(m unit.Metric) unit.Metric {
	if m.PxPerDp == 0 {
		m.PxPerDp = 1
	}
	if m.PxPerSp == 0 {
		m.PxPerSp = m.PxPerDp
	}
	return m
}

// SetMetric changes the metric used for later measurements. Layouts computed
// with the old metric must be rebuilt.
func (m *Measurer) SetMetric(metric unit.Metric) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	metric = normalized(metric)
	if metric == m.metric {
		return false
	}
	m.metric = metric
	return true
}

// shape lays out one line of txt and returns its width and height in Dp.
func (m *Measurer) shape(txt string, f chart.Font) (width, height float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shaper.LayoutString(text.Parameters{
		Font:     font.Font{Weight: font.Weight(f.Weight)},
		PxPerEm:  fixed.I(m.metric.Sp(unit.Sp(f.Size))),
		MaxWidth: unbounded,
		MaxLines: 1,
	}, txt)
	var right, ascent, descent fixed.Int26_6
	for {
		g, ok := m.shaper.NextGlyph()
		if !ok {
			break
		}
		right = max(right, g.X+g.Advance)
		ascent = max(ascent, g.Ascent)
		descent = max(descent, g.Descent)
	}
	toDp := func(v fixed.Int26_6) float32 { return float32(v) / 64 / m.metric.PxPerDp }
	return toDp(right), toDp(ascent + descent)
}

func (m *Measurer) TextWidth(txt string, f chart.Font) float32 {
	if txt == "" {
		return 0
	}
	w, _ := m.shape(txt, f)
	return w
}

func (m *Measurer) LineHeight(f chart.Font) float32 {
	// Shaping a space still reports the line metrics of the font.
	_, h := m.shape(" ", f)
	return h
}
