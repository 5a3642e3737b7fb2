package sim

import (
	"sync"

	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/track"
)

// Session serializes access to a World shared between goroutines, such as
// a ticker goroutine and input handlers. Every call holds the lock for the
// whole tick or handler.
type Session struct {
	mu    sync.Mutex
	world *World
}

// NewSession wraps w.
func NewSession(w *World) *Session {
	return &Session{world: w}
}

// Do runs fn with exclusive access to the world.
func (s *Session) Do(fn func(w *World)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.world)
}

// Tick advances the world by dt seconds.
func (s *Session) Tick(dt float64) {
	s.Do(func(w *World) { w.Tick(dt) })
}

// PrimaryClick forwards a placement click.
func (s *Session) PrimaryClick(p track.Point) {
	s.Do(func(w *World) { w.HandlePrimaryClick(p) })
}

// SecondaryClick forwards a removal click.
func (s *Session) SecondaryClick(p track.Point) {
	s.Do(func(w *World) { w.HandleSecondaryClick(p) })
}

// Snapshot copies the renderable state under the lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Snapshot()
}

// DrainEvents empties the event queue under the lock.
func (s *Session) DrainEvents() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.DrainEvents()
}
