package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadKind says which part of the runtime a file change invalidates.
type ReloadKind int

const (
	// ReloadConfig means the yaml document changed and the derived state
	// (regions, sheet, mode) should be rebuilt.
	ReloadConfig ReloadKind = iota
	// ReloadScript means a hook script changed and only the script
	// runtime needs recompiling.
	ReloadScript
)

// ReloadEvent is one debounced, classified file change.
type ReloadEvent struct {
	Kind ReloadKind
	Path string
}

// Watcher turns raw filesystem events into ReloadEvents so consumers
// never inspect file extensions themselves.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan ReloadEvent
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan ReloadEvent, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close is safe to call more than once. The run goroutine owns the
// outgoing channels and closes them on its way out.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- ReloadEvent{Kind: kind, Path: event.Name}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

func classify(path string) (ReloadKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReloadConfig, true
	case ".tengo":
		return ReloadScript, true
	}
	return 0, false
}
