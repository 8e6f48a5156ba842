package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/feed/internal/message"
	"github.com/five82/feed/internal/tailer"
)

// Snapshot represents the latest tail window available to the UI.
type Snapshot struct {
	Frame               []string
	Visible             []message.Message // newest first
	Seen                int
	HistoryRevision     uint64 // bumped whenever the run history changes
	Skipped             int
	Version             uint64 // bumped whenever Frame is redrawn
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsFailing returns true when the log has been unreadable for multiple polls.
func (s Snapshot) IsFailing() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a poll along with the history size and revision after it.
// When err is non-nil the previous frame is kept but the error is recorded
// for visibility.
func (s *Store) Update(cycle tailer.Cycle, seen int, revision uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if cycle.Redraw {
		s.snapshot.Frame = slices.Clone(cycle.Frame)
		s.snapshot.Visible = slices.Clone(cycle.Visible)
		s.snapshot.Version++
	}
	s.snapshot.Seen = seen
	s.snapshot.HistoryRevision = revision
	s.snapshot.Skipped = cycle.Skipped
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Frame = slices.Clone(s.snapshot.Frame)
	snap.Visible = slices.Clone(s.snapshot.Visible)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
