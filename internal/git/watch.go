package git

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thiagokokada/gitweb-go/internal/debounce"
)

const rescanDebounceDelay = 350 * time.Millisecond

// watchState is shared between the watch goroutine and Watch/Close; mu
// guards every field.
type watchState struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	debounce *debounce.Debouncer
}

// Watch re-scans the registry whenever directories under the scan root
// appear or disappear. Events are debounced so a burst (e.g. a clone in
// progress) triggers a single rescan. Safe because Scan rebuilds the index
// idempotently.
func (g *Registry) Watch() error {
	g.watch.mu.Lock()
	defer g.watch.mu.Unlock()
	if g.watch.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	if err := watcher.Add(g.root); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", g.root, err)
	}
	g.watch.watcher = watcher
	debounce.Ensure(&g.watch.debounce, rescanDebounceDelay, func() {
		if err := g.Scan(); err != nil {
			slog.Error("registry rescan", slog.Any("error", err))
		}
	})
	go g.watchLoop(watcher)
	return nil
}

func (g *Registry) watchLoop(w *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("fsnotify event", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			g.scheduleRescan()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Error("fsnotify error", slog.Any("error", err))
		}
	}
}

// scheduleRescan triggers the debouncer under the watch lock. The nil
// check covers the window where Close tears the debouncer down while an
// event is still in flight on the watch goroutine.
func (g *Registry) scheduleRescan() {
	g.watch.mu.Lock()
	deb := g.watch.debounce
	g.watch.mu.Unlock()
	if deb == nil {
		return
	}
	deb.Trigger()
}

// Close stops the root watch if one is running.
func (g *Registry) Close() error {
	g.watch.mu.Lock()
	defer g.watch.mu.Unlock()
	if g.watch.debounce != nil {
		g.watch.debounce.Stop()
		g.watch.debounce = nil
	}
	if g.watch.watcher == nil {
		return nil
	}
	err := g.watch.watcher.Close()
	g.watch.watcher = nil
	return err
}
