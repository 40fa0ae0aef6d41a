package chart

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"gioui.org/f32"

	"git.sr.ht/~whereswaldon/scrollchart/geom"
)

// ScrollHost is the scrolling view showing a chart.
type ScrollHost interface {
	SetContentOffset(x float32, animated bool)
}

// Option configures a Chart.
type Option func(*Chart)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Chart) { c.log = log }
}

// WithObserver reports reload and redraw activity to o.
func WithObserver(o Observer) Option {
	return func(c *Chart) { c.observer = o }
}

// WithWorker runs reloads on w instead of a private SerialWorker. w must run
// one job at a time in submission order.
func WithWorker(w Worker) Option {
	return func(c *Chart) { c.worker = w }
}

// WithInvalidate calls fn from the worker goroutine whenever a reload has
// finished building and Update needs to be called.
func WithInvalidate(fn func()) Option {
	return func(c *Chart) { c.invalidate = fn }
}

// WithScrollHost sets the view the chart scrolls.
func WithScrollHost(h ScrollHost) Option {
	return func(c *Chart) { c.host = h }
}

// Chart owns the reload pipeline of a chart. All methods except
// IsReloading and Snapshot must be called from the interactive goroutine.
type Chart struct {
	log        *slog.Logger
	observer   Observer
	worker     Worker
	invalidate func()
	host       ScrollHost
	queue      *Queue
	cancel     context.CancelFunc

	source   DataSource
	style    Style
	viewSize f32.Point

	// WillStartReloading and DidFinishReloading bracket every reload.
	WillStartReloading func()
	DidFinishReloading func()
	// WillStartDraw and DidEndDraw bracket every redraw that draws.
	WillStartDraw func()
	DidEndDraw    func()

	snapshot   atomic.Pointer[Snapshot]
	pending    atomic.Int32
	generation atomic.Uint64
}

// NewChart returns a chart drawing src. Nothing is laid out until the first
// Reload or Redraw.
func NewChart(ctx context.Context, src DataSource, style Style, opts ...Option) *Chart {
	c := &Chart{
		log:      slog.Default(),
		observer: NopObserver{},
		source:   src,
		style:    style,
	}
	for _, opt := range opts {
		opt(c)
	}
	ctx, c.cancel = context.WithCancel(ctx)
	if c.worker == nil {
		c.worker = NewSerialWorker(ctx)
	}
	c.queue = NewQueue(c.invalidate)
	return c
}

// Close stops the private worker. Pending reloads never commit.
func (c *Chart) Close() {
	c.cancel()
}

// Source returns the current data source.
func (c *Chart) Source() DataSource { return c.source }

// Style returns the current style.
func (c *Chart) Style() Style { return c.style }

// SetSource replaces the data source and reloads.
func (c *Chart) SetSource(src DataSource) {
	c.source = src
	c.Reload()
}

// SetStyle replaces the style and reloads.
func (c *Chart) SetStyle(style Style) {
	c.style = style
	c.Reload()
}

// SetScrollHost sets the view the chart scrolls.
func (c *Chart) SetScrollHost(h ScrollHost) { c.host = h }

// IsReloading reports whether a reload is queued or building.
func (c *Chart) IsReloading() bool { return c.pending.Load() > 0 }

// Snapshot returns the most recently committed snapshot, or nil.
func (c *Chart) Snapshot() *Snapshot { return c.snapshot.Load() }

// Reload queues a rebuild of the layout and hints for the last known view
// size.
func (c *Chart) Reload() {
	c.reload(c.viewSize)
}

// Resize records a new view size and reloads if it changed.
func (c *Chart) Resize(size f32.Point) bool {
	if size == c.viewSize {
		return false
	}
	c.log.Debug("chart: view resized", "from", c.viewSize, "to", size)
	c.reload(size)
	return true
}

func (c *Chart) reload(size f32.Point) {
	if c.WillStartReloading != nil {
		c.WillStartReloading()
	}
	c.viewSize = size
	src, style := c.source, c.style
	gen := c.generation.Add(1)
	pending := c.pending.Add(1)
	c.log.Debug("chart: reload queued", "generation", gen, "pending", pending)
	c.observer.ReloadQueued(int(pending))

	c.worker.Submit(func() {
		start := time.Now()
		snap := BuildSnapshot(src, style, size)
		snap.Generation = gen
		stats := BuildStats{
			Generation: gen,
			Sections:   snap.Layout.Sections(),
			DataSets:   len(snap.Hints),
			Duration:   time.Since(start),
		}
		for s := 0; s < stats.Sections; s++ {
			stats.Items += snap.Layout.Items(s)
		}
		c.log.Debug("chart: reload built",
			"generation", gen,
			"sections", stats.Sections,
			"items", stats.Items,
			"datasets", stats.DataSets,
			"duration", stats.Duration)
		c.observer.ReloadBuilt(stats)
		c.queue.Post(func() { c.commit(snap) })
	})
}

func (c *Chart) commit(snap *Snapshot) {
	c.snapshot.Store(snap)
	remaining := c.pending.Add(-1)
	c.log.Info("chart: reload committed", "generation", snap.Generation, "pending", remaining)
	if c.host != nil {
		c.host.SetContentOffset(snap.Layout.InitialOffset(), false)
	}
	c.observer.ReloadCommitted(snap.Generation)
	if c.DidFinishReloading != nil {
		c.DidFinishReloading()
	}
}

// Update commits finished reloads. It reports whether anything changed.
func (c *Chart) Update() bool {
	return c.queue.Drain() > 0
}

// Redraw paints the part of the chart inside rect to sink, for a view
// showing bounds (both in content coordinates). It draws nothing and returns
// false while a reload is pending, and when the view size differs from the
// one last laid out, in which case it reloads.
func (c *Chart) Redraw(sink Sink, rect, bounds geom.Rect) bool {
	if c.IsReloading() {
		c.skip(SkipReloading)
		return false
	}
	if c.Resize(bounds.Size()) {
		c.skip(SkipResized)
		return false
	}
	snap := c.snapshot.Load()
	if snap == nil {
		c.skip(SkipNoSnapshot)
		return false
	}

	if c.WillStartDraw != nil {
		c.WillStartDraw()
	}
	start := time.Now()
	snap.Draw(sink, rect, bounds)
	c.observer.RedrawDone(time.Since(start))
	if c.DidEndDraw != nil {
		c.DidEndDraw()
	}
	return true
}

func (c *Chart) skip(reason SkipReason) {
	c.log.Debug("chart: redraw skipped", "reason", reason)
	c.observer.RedrawSkipped(reason)
}

// ScrollToItem scrolls the host so the focus rests on the center of index.
// It reports false when there is no host or no committed layout.
func (c *Chart) ScrollToItem(index Index, animated bool) bool {
	snap := c.snapshot.Load()
	if snap == nil || c.host == nil {
		return false
	}
	c.host.SetContentOffset(snap.Layout.ScrollOffsetForItem(index), animated)
	return true
}
