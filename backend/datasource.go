package backend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces bursts of writes to the watched file.
const reloadDelay = 100 * time.Millisecond

// Status is the state of the most recently loaded data.
type Status struct {
	// Path is the watched file, empty for data read from a stream.
	Path  string
	Table *Table
	// Err is the error of the last load. Table keeps the last good table of
	// the same file, if any.
	Err    error
	Loaded time.Time
}

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

// Datasource loads tables from files and reloads them when they are written.
type Datasource struct {
	log     *slog.Logger
	opts    TableOptions
	watcher *fsnotify.Watcher
	done    chan struct{}

	path    RWBox[string]
	current RWBox[Status]
	source  *stream.Source[Status, Status]
}

func NewDatasource(appCtx context.Context, log *slog.Logger, opts TableOptions) (*Datasource, error) {
	if log == nil {
		log = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	d := &Datasource{
		log:     log,
		opts:    opts,
		watcher: watcher,
		done:    make(chan struct{}),
		source:  stream.NewSourceCtx(appCtx, sendStatus),
	}
	d.source.Update(func(Status) Status { return Status{} })
	go d.watchLoop(appCtx)
	return d, nil
}

// Close stops watching files.
func (d *Datasource) Close() error {
	err := d.watcher.Close()
	<-d.done
	return err
}

// Path returns the watched file, if any.
func (d *Datasource) Path() string {
	var p string
	d.path.Read(func(path *string) { p = *path })
	return p
}

// Current returns the latest status.
func (d *Datasource) Current() Status {
	var s Status
	d.current.Read(func(cur *Status) { s = *cur })
	return s
}

// Status streams the current status followed by every change until ctx or
// the application context is done. A slow reader only sees the most recent
// status.
func (d *Datasource) Status(ctx context.Context) <-chan Status {
	return d.source.Stream(ctx)
}

func sendStatus(s Status) (Status, bool) { return s, true }

func (d *Datasource) publish(s Status) {
	d.current.Write(func(cur *Status) { *cur = s })
	d.source.Update(func(Status) Status { return s })
}

// Load reads the table at path and watches it for changes.
func (d *Datasource) Load(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	d.watch(path)
	s := d.read(path)
	d.publish(s)
	return s.Err
}

// Reload reads the watched file again. It does nothing if no file is
// watched.
func (d *Datasource) Reload() error {
	path := d.Path()
	if path == "" {
		return nil
	}
	s := d.read(path)
	if s.Err != nil {
		if prev := d.Current(); prev.Path == path {
			s.Table = prev.Table
		}
	}
	d.publish(s)
	return s.Err
}

// LoadFromStream reads a table from r once. Any watched file is forgotten.
func (d *Datasource) LoadFromStream(r io.Reader) error {
	d.watch("")
	s := Status{Loaded: time.Now()}
	s.Table, s.Err = ParseTable(NewFinalLineReader(r), d.opts, d.log)
	d.logLoad(s)
	d.publish(s)
	return s.Err
}

// LoadFromFile asks the user for a file and loads it. Files that have a name
// on disk are watched.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) error {
	file, err := expl.ChooseFile("csv")
	if err != nil {
		return fmt.Errorf("choose file: %w", err)
	}
	defer file.Close()
	if f, ok := file.(interface{ Name() string }); ok {
		return d.Load(f.Name())
	}
	return d.LoadFromStream(file)
}

func (d *Datasource) read(path string) Status {
	s := Status{Path: path, Loaded: time.Now()}
	f, err := os.Open(path)
	if err != nil {
		s.Err = fmt.Errorf("open data file: %w", err)
		d.logLoad(s)
		return s
	}
	defer f.Close()
	s.Table, err = ParseTable(NewFinalLineReader(f), d.opts, d.log)
	if err != nil {
		s.Err = fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	d.logLoad(s)
	return s
}

func (d *Datasource) logLoad(s Status) {
	if s.Err != nil {
		d.log.Warn("backend: load failed", "path", s.Path, "err", s.Err)
		return
	}
	d.log.Info("backend: table loaded",
		"path", s.Path,
		"sections", s.Table.Sections(),
		"rows", s.Table.Rows(),
		"columns", len(s.Table.Columns),
		"skipped", s.Table.Skipped)
}

// watch replaces the watched file. The directory is watched rather than the
// file so that editors replacing the file do not end the watch.
func (d *Datasource) watch(path string) {
	var prev string
	d.path.Write(func(p *string) {
		prev, *p = *p, path
	})
	prevDir, dir := filepath.Dir(prev), filepath.Dir(path)
	if prev != "" && (path == "" || prevDir != dir) {
		if err := d.watcher.Remove(prevDir); err != nil {
			d.log.Debug("backend: unwatch failed", "dir", prevDir, "err", err)
		}
	}
	if path != "" && (prev == "" || prevDir != dir) {
		if err := d.watcher.Add(dir); err != nil {
			d.log.Warn("backend: watch failed", "dir", dir, "err", err)
		}
	}
}

func (d *Datasource) watchLoop(ctx context.Context) {
	defer close(d.done)
	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if path := d.Path(); path == "" || filepath.Clean(ev.Name) != path {
				continue
			}
			timer.Reset(reloadDelay)
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.log.Warn("backend: file watcher failed", "err", err)
		case <-timer.C:
			d.log.Debug("backend: watched file changed", "path", d.Path())
			if err := d.Reload(); err != nil {
				d.log.Warn("backend: reload after change failed", "path", d.Path(), "err", err)
			}
		}
	}
}
