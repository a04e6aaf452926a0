package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gioui.org/x/explorer"
	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
)

// publishEvery is the number of rows read between snapshots while a trace
// is loading.
const publishEvery = 4096

// Status describes the trace currently being read.
type Status struct {
	Name    string
	Loading bool
	// Tailing is set while waiting for more rows to be appended to a file.
	Tailing bool
	Err     error
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

type hubState[T any] struct {
	latest T
	subs   map[chan T]struct{}
}

// hub delivers the latest published value to every subscriber. Slow
// subscribers only ever see the newest value.
type hub[T any] struct {
	box RWBox[hubState[T]]
}

func (h *hub[T]) publish(v T) {
	h.box.Write(func(s *hubState[T]) {
		s.latest = v
		for ch := range s.subs {
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	})
}

func (h *hub[T]) latest() T {
	var v T
	h.box.Read(func(s *hubState[T]) {
		v = s.latest
	})
	return v
}

// subscribe returns a channel primed with the latest value. It is closed
// when ctx is done.
func (h *hub[T]) subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)
	h.box.Write(func(s *hubState[T]) {
		if s.subs == nil {
			s.subs = make(map[chan T]struct{})
		}
		s.subs[ch] = struct{}{}
		ch <- s.latest
	})
	go func() {
		<-ctx.Done()
		h.box.Write(func(s *hubState[T]) {
			delete(s.subs, ch)
			close(ch)
		})
	}()
	return ch
}

// onceCloser closes the wrapped reader at most once.
type onceCloser struct {
	io.ReadCloser
	once sync.Once
	err  error
}

func (o *onceCloser) Close() error {
	o.once.Do(func() {
		o.err = o.ReadCloser.Close()
	})
	return o.err
}

// load is the trace being read. Generations increase with every load.
type load struct {
	gen    uint64
	cancel context.CancelFunc
}

// Source reads trace files and publishes snapshots of their contents.
// Files are tailed: rows appended after loading are picked up when the
// file is written. Each load owns its file watcher, so reloading a file
// never disturbs the watch of the load replacing it.
type Source struct {
	appCtx  context.Context
	log     logr.Logger
	traces  hub[Trace]
	status  hub[Status]
	current RWBox[load]
}

func NewSource(appCtx context.Context, log logr.Logger) *Source {
	return &Source{
		appCtx: appCtx,
		log:    log,
	}
}

// Traces streams trace snapshots.
func (s *Source) Traces(ctx context.Context) <-chan Trace {
	return s.traces.subscribe(ctx)
}

// Status streams the state of the current load.
func (s *Source) Status(ctx context.Context) <-chan Status {
	return s.status.subscribe(ctx)
}

// Latest returns the most recent snapshot.
func (s *Source) Latest() Trace {
	return s.traces.latest()
}

// LoadFromFile asks the user for a trace file and loads it.
func (s *Source) LoadFromFile(expl *explorer.Explorer) error {
	file, err := expl.ChooseFile(".csv")
	if err != nil {
		return fmt.Errorf("failed choosing trace: %w", err)
	}
	name := "trace"
	if f, ok := file.(interface{ Name() string }); ok {
		name = f.Name()
	}
	s.LoadFromStream(name, file)
	return nil
}

// LoadFromPath opens and loads the trace file at path.
func (s *Source) LoadFromPath(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed opening trace: %w", err)
	}
	s.LoadFromStream(path, f)
	return nil
}

// LoadFromStream reads a trace from r, replacing any trace being read. If
// r is a file it is watched for appended rows until another trace is
// loaded.
func (s *Source) LoadFromStream(name string, r io.ReadCloser) {
	ctx, cancel := context.WithCancel(s.appCtx)
	var gen uint64
	s.current.Write(func(cur *load) {
		if cur.cancel != nil {
			cur.cancel()
		}
		cur.gen++
		cur.cancel = cancel
		gen = cur.gen
		s.status.publish(Status{Name: name, Loading: true})
	})
	rc := &onceCloser{ReadCloser: r}
	go func() {
		<-ctx.Done()
		rc.Close()
	}()
	go func() {
		defer cancel()
		err := s.read(ctx, gen, name, rc)
		if ctx.Err() != nil {
			// Replaced by another load or shutting down.
			err = nil
		}
		err = errors.Join(err, rc.Close())
		if errors.Is(err, os.ErrClosed) {
			err = nil
		}
		if err != nil {
			s.log.Error(err, "failed reading trace", "name", name)
		}
		s.setStatus(gen, Status{Name: name, Err: err})
	}()
}

// setStatus publishes st if gen is still the current load.
func (s *Source) setStatus(gen uint64, st Status) {
	s.current.Read(func(cur *load) {
		if cur.gen == gen {
			s.status.publish(st)
		}
	})
}

func (s *Source) setTrace(gen uint64, tr Trace) {
	s.current.Read(func(cur *load) {
		if cur.gen == gen {
			s.traces.publish(tr)
		}
	})
}

// watch starts watching r if it is a regular file. The caller closes the
// returned watcher.
func (s *Source) watch(r io.Reader) (*fsnotify.Watcher, string, bool) {
	oc, ok := r.(*onceCloser)
	if ok {
		r = oc.ReadCloser
	}
	f, ok := r.(*os.File)
	if !ok {
		return nil, "", false
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return nil, "", false
	}
	path := filepath.Clean(f.Name())
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.log.Error(err, "failed creating file watcher", "path", path)
		return nil, "", false
	}
	if err := watcher.Add(path); err != nil {
		s.log.Error(err, "failed watching trace", "path", path)
		watcher.Close()
		return nil, "", false
	}
	return watcher, path, true
}

// waitForWrite blocks until path is written. It returns false when the
// file goes away or ctx is done.
func waitForWrite(ctx context.Context, watcher *fsnotify.Watcher, path string) (bool, error) {
	for {
		select {
		case <-ctx.Done():
			return false, nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return false, nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				return false, nil
			}
			if ev.Has(fsnotify.Write) {
				return true, nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return false, nil
			}
			return false, fmt.Errorf("failed watching %q: %w", path, err)
		}
	}
}

func (s *Source) read(ctx context.Context, gen uint64, name string, r io.Reader) error {
	watcher, path, tail := s.watch(r)
	if tail {
		defer watcher.Close()
	}
	csvReader := csv.NewReader(NewLineReader(r))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	b := newTraceBuilder(name)
	headerRead := false
	sinceSnapshot := 0
	for {
		rec, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			if sinceSnapshot > 0 || b.version == 0 {
				s.setTrace(gen, b.snapshot())
				sinceSnapshot = 0
			}
			if !tail {
				return nil
			}
			s.setStatus(gen, Status{Name: name, Tailing: true})
			more, err := waitForWrite(ctx, watcher, path)
			if err != nil || !more {
				return err
			}
			continue
		} else if err != nil {
			return fmt.Errorf("failed reading trace %q: %w", name, err)
		}
		if !headerRead {
			if err := checkHeader(rec); err != nil {
				return fmt.Errorf("failed reading trace %q: %w: %q", name, err, rec)
			}
			headerRead = true
			continue
		}
		if err := b.add(rec); err != nil {
			line, _ := csvReader.FieldPos(0)
			s.log.Info("skipping malformed row", "name", name, "line", line, "err", err.Error())
			continue
		}
		sinceSnapshot++
		if sinceSnapshot >= publishEvery {
			s.setTrace(gen, b.snapshot())
			sinceSnapshot = 0
		}
	}
}

// Close stops reading the current trace.
func (s *Source) Close() {
	s.current.Read(func(cur *load) {
		if cur.cancel != nil {
			cur.cancel()
		}
	})
}
