package vault

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher emits a signal when note files in the vault change. Rapid event
// bursts (editor save dances, syncs) are collapsed by a debounce window.
type Watcher struct {
	fsw      *fsnotify.Watcher
	ext      string
	debounce time.Duration
	events   chan struct{}
	stop     chan struct{}
	done     chan struct{}
}

// Watch starts watching the vault tree. Close the watcher to release it.
func (v *Vault) Watch() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(v.Root)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}

	// fsnotify does not recurse; register every subdirectory.
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		ext:      v.Ext,
		debounce: 500 * time.Millisecond,
		events:   make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events delivers at most one pending change signal; coalesced, never blocking.
func (w *Watcher) Events() <-chan struct{} { return w.events }

func (w *Watcher) Close() error {
	close(w.stop)
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			// New directories need a watch of their own
			if ev.Op&fsnotify.Create != 0 && filepath.Ext(ev.Name) == "" {
				_ = w.fsw.Add(ev.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case w.events <- struct{}{}:
			default:
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	ext := filepath.Ext(ev.Name)
	return ext == "" || strings.EqualFold(ext, w.ext)
}
