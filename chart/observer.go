package chart

import "time"

// SkipReason says why a redraw did not draw.
type SkipReason string

const (
	SkipReloading  SkipReason = "reloading"
	SkipResized    SkipReason = "resized"
	SkipNoSnapshot SkipReason = "no_snapshot"
)

// BuildStats describes a snapshot built by a reload.
type BuildStats struct {
	Generation uint64
	Sections   int
	Items      int
	DataSets   int
	Duration   time.Duration
}

// Observer is notified of reload and redraw activity. ReloadBuilt is called
// on the worker goroutine, the others on the interactive goroutine.
type Observer interface {
	ReloadQueued(pending int)
	ReloadBuilt(stats BuildStats)
	ReloadCommitted(generation uint64)
	RedrawDone(d time.Duration)
	RedrawSkipped(reason SkipReason)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) ReloadQueued(int) {}
func (NopObserver) ReloadBuilt(BuildStats) {}
func (NopObserver) ReloadCommitted(uint64) {}
func (NopObserver) RedrawDone(time.Duration) {}
func (NopObserver) RedrawSkipped(SkipReason) {}
