package git

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newWatchedRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := newScannedRegistry(t, "alpha")
	if err := reg.Watch(); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	t.Cleanup(func() { reg.Close() })
	return reg
}

func TestWatch_RescanPicksUpNewRepository(t *testing.T) {
	t.Parallel()
	reg := newWatchedRegistry(t)

	if err := os.Mkdir(filepath.Join(reg.root, "beta"), 0o755); err != nil {
		t.Fatalf("mkdir beta: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := reg.Find("beta"); err == nil {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("new repository was not picked up by the watch rescan")
}

func TestWatch_IsIdempotent(t *testing.T) {
	t.Parallel()
	reg := newWatchedRegistry(t)

	if err := reg.Watch(); err != nil {
		t.Fatalf("second Watch() error = %v", err)
	}
}

func TestClose_ConcurrentWithEvents(t *testing.T) {
	t.Parallel()
	reg := newScannedRegistry(t, "alpha")
	if err := reg.Watch(); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Generate a stream of events while Close tears the watch down; an
	// in-flight event must not dereference the cleared debouncer.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 20 {
			dir := filepath.Join(reg.root, "repo-"+string(rune('a'+i)))
			os.Mkdir(dir, 0o755)
			time.Sleep(time.Millisecond)
		}
	}()
	time.Sleep(5 * time.Millisecond)
	if err := reg.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	wg.Wait()

	// Late events after Close are a no-op, not a panic.
	reg.scheduleRescan()
	if err := reg.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
