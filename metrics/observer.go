// Package metrics exports chart reload and redraw activity to prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.sr.ht/~whereswaldon/scrollchart/chart"
)

const namespace = "scrollchart"

// Observer is a chart.Observer recording into its own registry.
type Observer struct {
	registry *prometheus.Registry

	reloadsQueued    prometheus.Counter
	reloadsCommitted prometheus.Counter
	pending          prometheus.Gauge
	buildSeconds     prometheus.Histogram
	items            prometheus.Gauge
	redrawSeconds    prometheus.Histogram
	redrawsSkipped   *prometheus.CounterVec
}

var _ chart.Observer = (*Observer)(nil)

func NewObserver() *Observer {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		reloadsQueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_queued_total",
			Help:      "Reloads submitted to the layout worker.",
		}),
		reloadsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_committed_total",
			Help:      "Snapshots published to the interactive thread.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reloads_pending",
			Help:      "Reloads queued or building at the last submission.",
		}),
		buildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reload_build_seconds",
			Help:      "Time spent building layouts and drawing hints.",
			Buckets:   prometheus.ExponentialBuckets(.0001, 4, 8),
		}),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "items",
			Help:      "Items in the most recently built layout.",
		}),
		redrawSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "redraw_seconds",
			Help:      "Time spent emitting drawing operations for a redraw.",
			Buckets:   prometheus.ExponentialBuckets(.00005, 4, 8),
		}),
		redrawsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redraws_skipped_total",
			Help:      "Redraws that drew nothing, by reason.",
		}, []string{"reason"}),
	}
	o.registry.MustRegister(
		o.reloadsQueued,
		o.reloadsCommitted,
		o.pending,
		o.buildSeconds,
		o.items,
		o.redrawSeconds,
		o.redrawsSkipped,
	)
	return o
}

// Registry returns the registry holding the observer's collectors.
func (o *Observer) Registry() *prometheus.Registry { return o.registry }

// Handler serves the collected metrics in the prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}

func (o *Observer) ReloadQueued(pending int) {
	o.reloadsQueued.Inc()
	o.pending.Set(float64(pending))
}

func (o *Observer) ReloadBuilt(stats chart.BuildStats) {
	o.buildSeconds.Observe(stats.Duration.Seconds())
	o.items.Set(float64(stats.Items))
}

func (o *Observer) ReloadCommitted(uint64) {
	o.reloadsCommitted.Inc()
}

func (o *Observer) RedrawDone(d time.Duration) {
	o.redrawSeconds.Observe(d.Seconds())
}

func (o *Observer) RedrawSkipped(reason chart.SkipReason) {
	o.redrawsSkipped.WithLabelValues(string(reason)).Inc()
}
