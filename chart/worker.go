package chart

import (
	"context"
	"sync"
)

// Worker runs submitted jobs one at a time in submission order.
type Worker interface {
	Submit(job func())
}

// SerialWorker is a Worker backed by a single goroutine.
type SerialWorker struct {
	mu   sync.Mutex
	jobs []func()
	wake chan struct{}
	done chan struct{}
}

// NewSerialWorker starts a worker which runs until ctx is cancelled. Jobs
// still queued at that point are dropped.
func NewSerialWorker(ctx context.Context) *SerialWorker {
	w := &SerialWorker{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go w.run(ctx)
	return w
}

func (w *SerialWorker) Submit(job func()) {
	w.mu.Lock()
	w.jobs = append(w.jobs, job)
	w.mu.Unlock()
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Done is closed once the worker goroutine has exited.
func (w *SerialWorker) Done() <-chan struct{} { return w.done }

func (w *SerialWorker) next() (func(), bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.jobs) == 0 {
		return nil, false
	}
	job := w.jobs[0]
	w.jobs[0] = nil
	w.jobs = w.jobs[1:]
	return job, true
}

func (w *SerialWorker) run(ctx context.Context) {
	defer close(w.done)
	for {
		for {
			if ctx.Err() != nil {
				return
			}
			job, ok := w.next()
			if !ok {
				break
			}
			job()
		}
		select {
		case <-ctx.Done():
			return
		case <-w.wake:
		}
	}
}

// Queue collects callbacks posted from any goroutine until the interactive
// goroutine runs them with Drain.
type Queue struct {
	mu     sync.Mutex
	fns    []func()
	notify func()
}

// NewQueue returns a queue calling notify, if non nil, after every Post.
// Hosts typically pass a function invalidating their window.
func NewQueue(notify func()) *Queue {
	return &Queue{notify: notify}
}

func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.fns = append(q.fns, fn)
	q.mu.Unlock()
	if q.notify != nil {
		q.notify()
	}
}

// Drain runs the posted callbacks in order and reports how many ran.
// Callbacks posted while draining run in the same call.
func (q *Queue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		fns := q.fns
		q.fns = nil
		q.mu.Unlock()
		if len(fns) == 0 {
			return ran
		}
		for _, fn := range fns {
			fn()
		}
		ran += len(fns)
	}
}
