package watch

import (
	"context"
	"sync"
	"time"
)

// State is the shared change counter that connects the watcher to every
// open live-reload stream. The watcher is the only writer; each stream
// waits on it independently.
type State struct {
	mu       sync.Mutex
	changeID int
	changed  chan struct{} // closed and replaced on every bump
}

func NewState() *State {
	return &State{changed: make(chan struct{})}
}

// Bump advances the change id and wakes every waiter. It returns the new
// id.
func (s *State) Bump() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changeID++
	close(s.changed)
	s.changed = make(chan struct{})
	return s.changeID
}

// ChangeID returns the latest change id.
func (s *State) ChangeID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changeID
}

// WaitForChange blocks until the change id differs from lastSeen, the
// timeout elapses, or ctx is done. It returns the latest id and whether a
// change occurred. A bump that lands before the call starts waiting is
// still observed, so waiters never miss a wakeup.
func (s *State) WaitForChange(ctx context.Context, lastSeen int, timeout time.Duration) (int, bool) {
	s.mu.Lock()
	if s.changeID != lastSeen {
		id := s.changeID
		s.mu.Unlock()
		return id, true
	}
	changed := s.changed
	s.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-changed:
		return s.ChangeID(), true
	case <-timer.C:
		return lastSeen, false
	case <-ctx.Done():
		return lastSeen, false
	}
}
