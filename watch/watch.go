// Package watch detects filesystem changes by polling: it fingerprints a
// directory tree at a fixed interval and bumps a shared counter whenever
// two consecutive fingerprints differ. Polling keeps the behavior
// identical across platforms at the cost of a short detection delay.
package watch

import (
	"context"
	"log/slog"
	"time"
)

// Watcher re-scans a directory tree forever and bumps the shared state
// once per poll cycle in which anything changed.
type Watcher struct {
	log      *slog.Logger
	root     string
	interval time.Duration
	exclude  Exclude
	state    *State

	// Optional observation hooks, safe to leave nil.
	OnScan   func()
	OnChange func()
}

func New(log *slog.Logger, root string, interval time.Duration, exclude Exclude, state *State) *Watcher {
	if interval <= 0 {
		interval = 400 * time.Millisecond
	}
	return &Watcher{
		log:      log,
		root:     root,
		interval: interval,
		exclude:  exclude,
		state:    state,
	}
}

// Watch polls until ctx is done. However many files changed within one
// poll cycle, the state is bumped exactly once for that cycle; browsers
// reload the whole page, so coalescing loses nothing. Per-file stat
// failures never stop the watcher.
func (w *Watcher) Watch(ctx context.Context) error {
	prev := Scan(w.root, w.exclude)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			cur := Scan(w.root, w.exclude)
			if w.OnScan != nil {
				w.OnScan()
			}
			if cur.Equal(prev) {
				continue
			}
			prev = cur
			id := w.state.Bump()
			if w.OnChange != nil {
				w.OnChange()
			}
			w.log.Debug("watch: tree changed", "id", id, "files", len(cur))
		}
	}
}
